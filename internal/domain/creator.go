package domain

// Creator is the person or studio credited for movies and series.
// Identity is the slug: every name that slugs the same resolves to one row.
type Creator struct {
	Record
	Name string `json:"name"`
	Slug string `json:"slug"`
	CreatorProfile
}

// CreatorProfile holds the optional biography and social links of a creator.
type CreatorProfile struct {
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}
