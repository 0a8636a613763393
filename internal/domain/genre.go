package domain

// Genre is a flat category shared by many movies.
type Genre struct {
	Record
	Name string `json:"name"` // Display name: "New Wave"
	Slug string `json:"slug"` // Identity: "new-wave"
}

// MovieGenre is one row of the movie/genre junction. It has no identity of
// its own; the pair is the key.
type MovieGenre struct {
	MovieID string `json:"movie_id"`
	GenreID string `json:"genre_id"`
}
