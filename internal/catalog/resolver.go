// Package catalog holds the rules that keep the catalog consistent: creators
// and genres are found or created by slug, movie genre sets are replaced as a
// whole, and ratings are aggregated per movie.
//
// Every operation takes the store as an explicit argument. Nothing here
// caches or holds catalog state between calls, so the same value can serve a
// plain store and a transaction-bound one.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelhouse/catalog-server/internal/domain"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/normalize"
	"github.com/reelhouse/catalog-server/internal/slug"
	"github.com/reelhouse/catalog-server/internal/store"
)

// ResolveRequest names the entity to find or create.
type ResolveRequest struct {
	Name string
	// Slug overrides the slug derived from Name.
	Slug string
	// Profile is stored when a creator is created. Ignored for genres and
	// for creators that already exist.
	Profile *domain.CreatorProfile
}

// Resolver finds or creates creators and genres by slug.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{logger: logger}
}

// Resolve returns the id of the entity whose slug matches the request,
// creating it when none exists. An existing row is returned as is: its name
// and profile are never updated here.
//
// If the insert loses a race against a concurrent request creating the same
// slug, the winner's row is looked up and returned.
func (r *Resolver) Resolve(ctx context.Context, st store.Store, kind domain.EntityKind, req ResolveRequest) (string, error) {
	name, s, err := r.identity(kind, req)
	if err != nil {
		return "", err
	}

	existingID, err := r.lookup(ctx, st, kind, s)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("look up %s %q: %w", kind, s, err)
	}

	if name == "" {
		return "", domainerrors.Validationf("%s %q does not exist and no name was given to create it", kind, s)
	}

	newID, err := r.create(ctx, st, kind, name, s, req.Profile)
	if err == nil {
		r.logger.Debug("entity created", "kind", kind.String(), "id", newID, "slug", s)
		return newID, nil
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		return "", fmt.Errorf("create %s %q: %w", kind, s, err)
	}

	r.logger.Warn("concurrent create detected, resolving to existing row", "kind", kind.String(), "slug", s)
	existingID, err = r.lookup(ctx, st, kind, s)
	if err != nil {
		return "", fmt.Errorf("look up %s %q after conflict: %w", kind, s, err)
	}
	return existingID, nil
}

// Check reports whether req could be resolved, without touching the store.
func (r *Resolver) Check(kind domain.EntityKind, req ResolveRequest) error {
	_, _, err := r.identity(kind, req)
	return err
}

// identity cleans the name and settles the slug. It touches no store, so an
// invalid request is rejected before anything is read or written.
func (r *Resolver) identity(kind domain.EntityKind, req ResolveRequest) (name, s string, err error) {
	if kind != domain.KindCreator && kind != domain.KindGenre {
		return "", "", domainerrors.Validationf("cannot resolve entity kind %d", int(kind))
	}

	name = normalize.Name(req.Name)
	if explicit := strings.TrimSpace(req.Slug); explicit != "" {
		if !slug.Valid(explicit) {
			return "", "", domainerrors.Validationf("invalid %s slug %q", kind, explicit)
		}
		return name, explicit, nil
	}

	s = slug.Make(name)
	if s == "" {
		return "", "", domainerrors.Validationf("%s name %q does not produce a usable slug", kind, req.Name)
	}
	return name, s, nil
}

func (r *Resolver) lookup(ctx context.Context, st store.Store, kind domain.EntityKind, s string) (string, error) {
	switch kind {
	case domain.KindCreator:
		c, err := st.GetCreatorBySlug(ctx, s)
		if err != nil {
			return "", err
		}
		return c.ID, nil
	default:
		g, err := st.GetGenreBySlug(ctx, s)
		if err != nil {
			return "", err
		}
		return g.ID, nil
	}
}

func (r *Resolver) create(ctx context.Context, st store.Store, kind domain.EntityKind, name, s string, profile *domain.CreatorProfile) (string, error) {
	switch kind {
	case domain.KindCreator:
		c := &domain.Creator{Name: name, Slug: s}
		if profile != nil {
			c.CreatorProfile = *profile
		}
		if err := st.CreateCreator(ctx, c); err != nil {
			return "", err
		}
		return c.ID, nil
	default:
		g := &domain.Genre{Name: name, Slug: s}
		if err := st.CreateGenre(ctx, g); err != nil {
			return "", err
		}
		return g.ID, nil
	}
}
