// Package importer loads legacy catalog exports, where every movie embeds
// its creator name and genre list, into the relational catalog.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/reelhouse/catalog-server/internal/domain"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/normalize"
	"github.com/reelhouse/catalog-server/internal/service"
	"github.com/reelhouse/catalog-server/internal/slug"
	"github.com/reelhouse/catalog-server/internal/store"
	"github.com/reelhouse/catalog-server/internal/validation"
)

// Options control an import run.
type Options struct {
	// DryRun classifies every record without writing anything.
	DryRun bool
}

// Summary counts what an import did with each record.
type Summary struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Skipped int           `json:"skipped"`
	Errors  []RecordError `json:"errors,omitempty"`
}

// RecordError explains why one record was skipped.
type RecordError struct {
	Index int    `json:"index"`
	Slug  string `json:"slug,omitempty"`
	Error string `json:"error"`
}

// Importer submits legacy records through the movie service, so imported
// movies get the same validation and creator/genre resolution as the admin form.
type Importer struct {
	store     store.Store
	movies    *service.MovieService
	validator *validation.Validator
	logger    *slog.Logger
}

// New creates an importer.
func New(st store.Store, movies *service.MovieService, logger *slog.Logger) *Importer {
	return &Importer{
		store:     st,
		movies:    movies,
		validator: validation.New(),
		logger:    logger,
	}
}

// Import reads a JSON array of legacy movies from r. Each record is
// normalized, then created, or updated when a movie with its slug exists.
// Running the same import twice leaves the catalog unchanged.
//
// Records that fail to decode or validate are skipped and counted. Any other
// error stops the import.
func (imp *Importer) Import(ctx context.Context, r io.Reader, opts Options) (*Summary, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.New("import file must contain a JSON array of movies")
	}

	summary := &Summary{}
	for i := 0; dec.More(); i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		var raw domain.RawMovie
		if err := dec.Decode(&raw); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
				return summary, fmt.Errorf("read record %d: %w", i, err)
			}
			imp.skip(summary, i, "", err)
			continue
		}

		if err := imp.importRecord(ctx, summary, i, raw, opts); err != nil {
			return summary, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return summary, fmt.Errorf("read import file: %w", err)
	}

	imp.logger.Info("import finished",
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"dry_run", opts.DryRun,
	)
	return summary, nil
}

func (imp *Importer) importRecord(ctx context.Context, summary *Summary, index int, raw domain.RawMovie, opts Options) error {
	fields := Fields(normalize.Movie(raw), raw.Creator)
	switch {
	case fields.Slug == "":
		fields.Slug = slug.Make(normalize.Name(fields.Title))
	case !slug.Valid(fields.Slug):
		// Older exports stored hand-typed slugs.
		fields.Slug = slug.Make(fields.Slug)
	}

	if err := imp.validator.Validate(service.SubmitMovieRequest{MovieFields: fields}); err != nil {
		imp.skip(summary, index, fields.Slug, err)
		return nil
	}
	if fields.Slug == "" {
		imp.skip(summary, index, "", domainerrors.Validationf("title %q does not produce a usable slug", fields.Title))
		return nil
	}

	existing, err := imp.store.GetMovieBySlug(ctx, fields.Slug)
	switch {
	case errors.Is(err, store.ErrNotFound):
		existing = nil
	case err != nil:
		return fmt.Errorf("look up movie %q: %w", fields.Slug, err)
	}

	if opts.DryRun {
		if existing != nil {
			summary.Updated++
		} else {
			summary.Created++
		}
		return nil
	}

	if existing != nil {
		_, err = imp.movies.Update(ctx, existing.ID, service.UpdateMovieRequest{MovieFields: fields})
	} else {
		_, err = imp.movies.Submit(ctx, service.SubmitMovieRequest{MovieFields: fields})
	}
	if err != nil {
		// A record naming a missing creator id is as unusable as an invalid one.
		if errors.Is(err, domainerrors.ErrValidation) || errors.Is(err, domainerrors.ErrNotFound) {
			imp.skip(summary, index, fields.Slug, err)
			return nil
		}
		return fmt.Errorf("import movie %q: %w", fields.Slug, err)
	}

	if existing != nil {
		summary.Updated++
	} else {
		summary.Created++
	}
	return nil
}

func (imp *Importer) skip(summary *Summary, index int, movieSlug string, err error) {
	summary.Skipped++
	summary.Errors = append(summary.Errors, RecordError{Index: index, Slug: movieSlug, Error: err.Error()})
	imp.logger.Warn("import record skipped", "index", index, "slug", movieSlug, "error", err)
}

// Fields maps a normalized legacy record onto the admin form. Only the
// first credited creator is kept; the relational catalog has one creator
// per movie.
func Fields(m domain.CatalogMovie, creator domain.CreatorValue) service.MovieFields {
	fields := service.MovieFields{
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		VideoURL:    m.VideoURL,
		Thumbnail:   m.Thumbnail,
		Year:        m.Year,
		Genres:      m.Genre,
	}
	for _, name := range creator.All() {
		if name = strings.TrimSpace(name); name != "" {
			fields.CreatorName = name
			break
		}
	}
	if fields.CreatorName == "" {
		fields.CreatorID = m.CreatorID
	}
	return fields
}
