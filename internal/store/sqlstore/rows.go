package sqlstore

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/reelhouse/catalog-server/internal/domain"
)

// timeLayout is a fixed-width UTC layout, so text comparison orders rows
// chronologically on both engines.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// timestamp is a time column stored as text.
type timestamp time.Time

func newTimestamp(t time.Time) timestamp {
	if t.IsZero() {
		t = time.Now()
	}
	return timestamp(t.UTC())
}

// Value implements driver.Valuer.
func (t timestamp) Value() (driver.Value, error) {
	return time.Time(t).UTC().Format(timeLayout), nil
}

// Scan implements sql.Scanner.
func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t = timestamp(time.Time{})
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *timestamp) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	*t = timestamp(parsed.UTC())
	return nil
}

func (t timestamp) Time() time.Time { return time.Time(t) }

// nullString converts empty strings to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullInt converts zero to SQL NULL.
func nullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}

type creatorRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Slug      string         `db:"slug"`
	Bio       sql.NullString `db:"bio"`
	Avatar    sql.NullString `db:"avatar"`
	Twitter   sql.NullString `db:"twitter"`
	Instagram sql.NullString `db:"instagram"`
	Website   sql.NullString `db:"website"`
	YouTube   sql.NullString `db:"youtube"`
	CreatedAt timestamp      `db:"created_at"`
	UpdatedAt timestamp      `db:"updated_at"`
}

func (r creatorRow) domain() *domain.Creator {
	return &domain.Creator{
		Record: domain.Record{ID: r.ID, CreatedAt: r.CreatedAt.Time(), UpdatedAt: r.UpdatedAt.Time()},
		Name:   r.Name,
		Slug:   r.Slug,
		CreatorProfile: domain.CreatorProfile{
			Bio:       r.Bio.String,
			Avatar:    r.Avatar.String,
			Twitter:   r.Twitter.String,
			Instagram: r.Instagram.String,
			Website:   r.Website.String,
			YouTube:   r.YouTube.String,
		},
	}
}

func creatorColumns(c *domain.Creator) []column {
	return []column{
		{"id", c.ID},
		{"name", c.Name},
		{"slug", c.Slug},
		{"bio", nullString(c.Bio)},
		{"avatar", nullString(c.Avatar)},
		{"twitter", nullString(c.Twitter)},
		{"instagram", nullString(c.Instagram)},
		{"website", nullString(c.Website)},
		{"youtube", nullString(c.YouTube)},
		{"created_at", newTimestamp(c.CreatedAt)},
		{"updated_at", newTimestamp(c.UpdatedAt)},
	}
}

type genreRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt timestamp `db:"created_at"`
	UpdatedAt timestamp `db:"updated_at"`
}

func (r genreRow) domain() *domain.Genre {
	return &domain.Genre{
		Record: domain.Record{ID: r.ID, CreatedAt: r.CreatedAt.Time(), UpdatedAt: r.UpdatedAt.Time()},
		Name:   r.Name,
		Slug:   r.Slug,
	}
}

type movieRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
	VideoURL    string         `db:"video_url"`
	Thumbnail   sql.NullString `db:"thumbnail"`
	Year        sql.NullInt64  `db:"year"`
	CreatorID   sql.NullString `db:"creator_id"`
	CreatedAt   timestamp      `db:"created_at"`
	UpdatedAt   timestamp      `db:"updated_at"`
}

func (r movieRow) domain() *domain.Movie {
	return &domain.Movie{
		Record:      domain.Record{ID: r.ID, CreatedAt: r.CreatedAt.Time(), UpdatedAt: r.UpdatedAt.Time()},
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description.String,
		VideoURL:    r.VideoURL,
		Thumbnail:   r.Thumbnail.String,
		Year:        int(r.Year.Int64),
		CreatorID:   r.CreatorID.String,
	}
}

func movieColumns(m *domain.Movie) []column {
	return []column{
		{"id", m.ID},
		{"title", m.Title},
		{"slug", m.Slug},
		{"description", nullString(m.Description)},
		{"video_url", m.VideoURL},
		{"thumbnail", nullString(m.Thumbnail)},
		{"year", nullInt(m.Year)},
		{"creator_id", nullString(m.CreatorID)},
		{"created_at", newTimestamp(m.CreatedAt)},
		{"updated_at", newTimestamp(m.UpdatedAt)},
	}
}

type seriesRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
	Thumbnail   sql.NullString `db:"thumbnail"`
	Year        sql.NullInt64  `db:"year"`
	CreatorID   sql.NullString `db:"creator_id"`
	CreatedAt   timestamp      `db:"created_at"`
	UpdatedAt   timestamp      `db:"updated_at"`
}

func (r seriesRow) domain() *domain.Series {
	return &domain.Series{
		Record:      domain.Record{ID: r.ID, CreatedAt: r.CreatedAt.Time(), UpdatedAt: r.UpdatedAt.Time()},
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description.String,
		Thumbnail:   r.Thumbnail.String,
		Year:        int(r.Year.Int64),
		CreatorID:   r.CreatorID.String,
	}
}

func seriesColumns(s *domain.Series) []column {
	return []column{
		{"id", s.ID},
		{"title", s.Title},
		{"slug", s.Slug},
		{"description", nullString(s.Description)},
		{"thumbnail", nullString(s.Thumbnail)},
		{"year", nullInt(s.Year)},
		{"creator_id", nullString(s.CreatorID)},
		{"created_at", newTimestamp(s.CreatedAt)},
		{"updated_at", newTimestamp(s.UpdatedAt)},
	}
}

type episodeRow struct {
	ID            string         `db:"id"`
	SeriesID      string         `db:"series_id"`
	Title         string         `db:"title"`
	Slug          string         `db:"slug"`
	Description   sql.NullString `db:"description"`
	VideoURL      string         `db:"video_url"`
	Thumbnail     sql.NullString `db:"thumbnail"`
	Year          sql.NullInt64  `db:"year"`
	EpisodeNumber int            `db:"episode_number"`
	CreatedAt     timestamp      `db:"created_at"`
	UpdatedAt     timestamp      `db:"updated_at"`
}

func (r episodeRow) domain() *domain.Episode {
	return &domain.Episode{
		Record:        domain.Record{ID: r.ID, CreatedAt: r.CreatedAt.Time(), UpdatedAt: r.UpdatedAt.Time()},
		SeriesID:      r.SeriesID,
		Title:         r.Title,
		Slug:          r.Slug,
		Description:   r.Description.String,
		VideoURL:      r.VideoURL,
		Thumbnail:     r.Thumbnail.String,
		Year:          int(r.Year.Int64),
		EpisodeNumber: r.EpisodeNumber,
	}
}

func episodeColumns(e *domain.Episode) []column {
	return []column{
		{"id", e.ID},
		{"series_id", e.SeriesID},
		{"title", e.Title},
		{"slug", e.Slug},
		{"description", nullString(e.Description)},
		{"video_url", e.VideoURL},
		{"thumbnail", nullString(e.Thumbnail)},
		{"year", nullInt(e.Year)},
		{"episode_number", e.EpisodeNumber},
		{"created_at", newTimestamp(e.CreatedAt)},
		{"updated_at", newTimestamp(e.UpdatedAt)},
	}
}

type ratingRow struct {
	MovieSlug string    `db:"movie_slug"`
	UserID    string    `db:"user_id"`
	Rating    int       `db:"rating"`
	CreatedAt timestamp `db:"created_at"`
	UpdatedAt timestamp `db:"updated_at"`
}

func (r ratingRow) domain() *domain.Rating {
	return &domain.Rating{
		MovieSlug: r.MovieSlug,
		UserID:    r.UserID,
		Value:     r.Rating,
		CreatedAt: r.CreatedAt.Time(),
		UpdatedAt: r.UpdatedAt.Time(),
	}
}

// movieGenreRow is the named-parameter shape of a junction insert.
type movieGenreRow struct {
	MovieID string `db:"movie_id"`
	GenreID string `db:"genre_id"`
}
