package domain

// Movie is a single short film in the catalog.
type Movie struct {
	Record
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"video_url"`
	Thumbnail   string `json:"thumbnail,omitempty"` // public path, e.g. /thumbnails/my-film.jpg
	Year        int    `json:"year,omitempty"`      // 0 when unknown
	CreatorID   string `json:"creator_id,omitempty"`
}

// HasCreator reports whether the movie references a creator row.
func (m *Movie) HasCreator() bool {
	return m.CreatorID != ""
}
