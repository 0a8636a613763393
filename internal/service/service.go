// Package service implements the catalog's use cases on top of the store and
// the catalog rules: admin submissions and edits, browse read models and
// viewer ratings.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelhouse/catalog-server/internal/catalog"
	"github.com/reelhouse/catalog-server/internal/domain"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/normalize"
	"github.com/reelhouse/catalog-server/internal/store"
)

// Catalog bundles the stateless catalog rules shared by the services.
type Catalog struct {
	Resolver     *catalog.Resolver
	Synchronizer *catalog.Synchronizer
	Aggregator   *catalog.Aggregator
}

// NewCatalog wires the catalog rules for the given commit mode.
func NewCatalog(mode catalog.Mode, logger *slog.Logger) *Catalog {
	resolver := catalog.NewResolver(logger)
	return &Catalog{
		Resolver:     resolver,
		Synchronizer: catalog.NewSynchronizer(resolver, mode, logger),
		Aggregator:   catalog.NewAggregator(logger),
	}
}

// Atomic reports whether multi-step writes share one transaction.
func (c *Catalog) Atomic() bool {
	return c.Synchronizer.Mode() == catalog.ModeAtomic
}

// run executes a multi-step write: in one transaction in atomic mode, step by
// step on the plain store otherwise.
func (c *Catalog) run(ctx context.Context, st store.Store, fn func(st store.Store) error) error {
	if c.Atomic() {
		return st.WithTx(ctx, fn)
	}
	return fn(st)
}

// CreatorSelection picks the creator of a movie or series the way the admin
// form does: an existing creator by id, or one found or created by name.
type CreatorSelection struct {
	CreatorID   string `json:"creator_id,omitempty" doc:"Existing creator id; takes precedence over creator_name"`
	CreatorName string `json:"creator_name,omitempty" validate:"max=200" doc:"Creator to find or create by name"`
	CreatorSlug string `json:"creator_slug,omitempty" validate:"slug" doc:"Overrides the slug derived from creator_name"`
	// CreatorProfile is stored only when the creator is created.
	CreatorProfile CreatorProfileFields `json:"creator_profile,omitempty"`
}

// byName reports whether the creator is found or created by name or slug
// rather than picked by id.
func (sel CreatorSelection) byName() bool {
	if strings.TrimSpace(sel.CreatorID) != "" {
		return false
	}
	return strings.TrimSpace(sel.CreatorName) != "" || strings.TrimSpace(sel.CreatorSlug) != ""
}

func (sel CreatorSelection) resolveRequest() catalog.ResolveRequest {
	return catalog.ResolveRequest{
		Name:    sel.CreatorName,
		Slug:    sel.CreatorSlug,
		Profile: sel.CreatorProfile.profile(),
	}
}

// checkWrite rejects a creator selection or genre list that can never
// resolve. It runs before the first store call of a write, so a rejected
// request leaves nothing behind in either commit mode.
func (c *Catalog) checkWrite(sel CreatorSelection, genres []string) error {
	if sel.byName() {
		if err := c.Resolver.Check(domain.KindCreator, sel.resolveRequest()); err != nil {
			return err
		}
	}
	_, err := catalog.GenreNames(genres)
	return err
}

// resolveCreator returns the selected creator's id, or "" when none was
// selected.
func (c *Catalog) resolveCreator(ctx context.Context, st store.Store, sel CreatorSelection) (string, error) {
	if id := strings.TrimSpace(sel.CreatorID); id != "" {
		if _, err := st.GetCreator(ctx, id); err != nil {
			return "", notFound(err, "creator %s", id)
		}
		return id, nil
	}
	if !sel.byName() {
		return "", nil
	}
	return c.Resolver.Resolve(ctx, st, domain.KindCreator, sel.resolveRequest())
}

// notFound converts store.ErrNotFound into a NOT_FOUND domain error naming the
// missing thing. Other errors are wrapped unchanged.
func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFoundf("%s not found", what)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

// writeError converts store write errors into domain errors.
func writeError(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExistsf("%s already exists", what).WithCause(err)
	case errors.Is(err, store.ErrForeignKey):
		return domainerrors.Conflictf("%s references a missing record", what).WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validationf("%s is invalid", what).WithCause(err)
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFoundf("%s not found", what)
	default:
		return fmt.Errorf("write %s: %w", what, err)
	}
}

// catalogMovies builds display records for a page of movies, loading genres
// in one query and each distinct creator once.
func catalogMovies(ctx context.Context, st store.Store, movies []*domain.Movie) ([]domain.CatalogMovie, error) {
	ids := make([]string, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	genres, err := st.ListGenresForMovies(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	creators := make(map[string]*domain.Creator)
	out := make([]domain.CatalogMovie, len(movies))
	for i, m := range movies {
		var creator *domain.Creator
		if m.HasCreator() {
			c, ok := creators[m.CreatorID]
			if !ok {
				c, err = st.GetCreator(ctx, m.CreatorID)
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return nil, fmt.Errorf("load creator %s: %w", m.CreatorID, err)
				}
				creators[m.CreatorID] = c
			}
			creator = c
		}
		out[i] = normalize.Relational(m, creator, genres[m.ID])
	}
	return out, nil
}
