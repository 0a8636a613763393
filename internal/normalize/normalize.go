// Package normalize turns raw catalog input into the canonical shapes the
// rest of the server works with.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/reelhouse/catalog-server/internal/domain"
)

// creatorSeparator joins several credited names into one display string.
const creatorSeparator = ", "

// Movie reshapes a raw record into the display shape.
//
//   - creator: a list is joined with ", "; a single name passes through;
//     an absent creator becomes "".
//   - videoUrl: "videoUrl" wins when non-empty, otherwise "video_url".
//   - genre: a list passes through; anything else becomes an empty list.
//
// Movie is idempotent: Movie(Movie(x).Raw()) == Movie(x).
func Movie(raw domain.RawMovie) domain.CatalogMovie {
	return domain.CatalogMovie{
		ID:          raw.ID,
		Title:       raw.Title,
		Slug:        raw.Slug,
		Description: raw.Description,
		VideoURL:    videoURL(raw),
		Thumbnail:   raw.Thumbnail,
		Year:        raw.Year,
		CreatorID:   raw.CreatorID,
		Creator:     creatorDisplay(raw.Creator),
		Genre:       genres(raw.Genre),
	}
}

// Movies normalizes every record, preserving order.
func Movies(raws []domain.RawMovie) []domain.CatalogMovie {
	out := make([]domain.CatalogMovie, len(raws))
	for i, raw := range raws {
		out[i] = Movie(raw)
	}
	return out
}

// Name cleans a human-entered display name: surrounding whitespace is
// removed, inner whitespace runs become one space, and the text is put in
// Unicode NFC so that precomposed and decomposed spellings of the same name
// store, and slug, identically.
func Name(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func creatorDisplay(c domain.CreatorValue) string {
	switch c.Form {
	case domain.CreatorList:
		return strings.Join(c.Names, creatorSeparator)
	case domain.CreatorSingle:
		return c.Name
	default:
		return ""
	}
}

func videoURL(raw domain.RawMovie) string {
	if raw.VideoURL != nil && *raw.VideoURL != "" {
		return *raw.VideoURL
	}
	if raw.VideoURLCol != nil {
		return *raw.VideoURLCol
	}
	return ""
}

func genres(g domain.GenreValue) []string {
	if !g.Present {
		return []string{}
	}
	return append(make([]string, 0, len(g.Names)), g.Names...)
}

// Relational builds the display shape of a movie stored in relational form:
// the creator comes from the creators row (nil when the movie has none) and
// the genres from the junction.
func Relational(m *domain.Movie, creator *domain.Creator, genres []*domain.Genre) domain.CatalogMovie {
	videoURL := m.VideoURL
	raw := domain.RawMovie{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		Thumbnail:   m.Thumbnail,
		Year:        m.Year,
		CreatorID:   m.CreatorID,
		VideoURLCol: &videoURL,
	}
	if creator != nil {
		raw.Creator = domain.SingleCreator(creator.Name)
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	raw.Genre = domain.GenreList(names...)
	return Movie(raw)
}
