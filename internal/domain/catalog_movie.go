package domain

// CatalogMovie is the single display shape every read path produces,
// whichever shape the record was stored in.
type CatalogMovie struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	VideoURL    string   `json:"videoUrl"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Year        int      `json:"year,omitempty"`
	CreatorID   string   `json:"creator_id,omitempty"`
	Creator     string   `json:"creator"` // display string, "Ana, Bo" for several names
	Genre       []string `json:"genre"`   // never nil
}

// Raw converts a normalized movie back into the raw shape, so it can be fed
// through normalization again.
func (m CatalogMovie) Raw() RawMovie {
	raw := RawMovie{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		Thumbnail:   m.Thumbnail,
		Year:        m.Year,
		CreatorID:   m.CreatorID,
		Genre:       GenreList(append([]string(nil), m.Genre...)...),
	}
	if m.Creator != "" {
		raw.Creator = SingleCreator(m.Creator)
	}
	if m.VideoURL != "" {
		v := m.VideoURL
		raw.VideoURL = &v
	}
	return raw
}
