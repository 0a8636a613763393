package domain

// Series is an ordered collection of episodes.
type Series struct {
	Record
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Year        int    `json:"year,omitempty"`
	CreatorID   string `json:"creator_id,omitempty"`
}

// Episode belongs to exactly one series. Its slug is unique within that
// series only, and EpisodeNumber (starting at 1) orders the series.
type Episode struct {
	Record
	SeriesID      string `json:"series_id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`
	VideoURL      string `json:"video_url"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	Year          int    `json:"year,omitempty"`
	EpisodeNumber int    `json:"episode_number"`
}
