package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelhouse/catalog-server/internal/catalog"
	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/normalize"
	"github.com/reelhouse/catalog-server/internal/store"
	"github.com/reelhouse/catalog-server/internal/validation"
)

// CreatorService manages creators.
type CreatorService struct {
	store     store.Store
	catalog   *Catalog
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCreatorService creates a new creator service.
func NewCreatorService(st store.Store, cat *Catalog, logger *slog.Logger) *CreatorService {
	return &CreatorService{
		store:     st,
		catalog:   cat,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreatorProfileFields are the optional profile fields of a creator.
type CreatorProfileFields struct {
	Bio       string `json:"bio,omitempty" validate:"max=5000"`
	Avatar    string `json:"avatar,omitempty" validate:"omitempty,max=2000"`
	Twitter   string `json:"twitter,omitempty" validate:"max=200"`
	Instagram string `json:"instagram,omitempty" validate:"max=200"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
	YouTube   string `json:"youtube,omitempty" validate:"max=200"`
}

func (f CreatorProfileFields) profile() *domain.CreatorProfile {
	return &domain.CreatorProfile{
		Bio:       strings.TrimSpace(f.Bio),
		Avatar:    strings.TrimSpace(f.Avatar),
		Twitter:   strings.TrimSpace(f.Twitter),
		Instagram: strings.TrimSpace(f.Instagram),
		Website:   strings.TrimSpace(f.Website),
		YouTube:   strings.TrimSpace(f.YouTube),
	}
}

// CreateCreatorRequest contains fields for creating a creator.
type CreateCreatorRequest struct {
	Name string `json:"name" validate:"notblank,max=200"`
	Slug string `json:"slug,omitempty" validate:"slug" doc:"Overrides the slug derived from the name"`
	CreatorProfileFields
}

// UpdateCreatorRequest changes the given fields; nil fields are left alone.
// The slug never changes.
type UpdateCreatorRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Avatar    *string `json:"avatar,omitempty" validate:"omitempty,max=2000"`
	Twitter   *string `json:"twitter,omitempty" validate:"omitempty,max=200"`
	Instagram *string `json:"instagram,omitempty" validate:"omitempty,max=200"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url"`
	YouTube   *string `json:"youtube,omitempty" validate:"omitempty,max=200"`
}

// CreatorDetail is a creator with the movies credited to them.
type CreatorDetail struct {
	Creator *domain.Creator       `json:"creator"`
	Movies  []domain.CatalogMovie `json:"movies"`
}

// Create finds the creator by slug or creates it with the given profile. An
// existing creator is returned unchanged.
func (s *CreatorService) Create(ctx context.Context, req CreateCreatorRequest) (*domain.Creator, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	creatorID, err := s.catalog.Resolver.Resolve(ctx, s.store, domain.KindCreator, catalog.ResolveRequest{
		Name:    req.Name,
		Slug:    req.Slug,
		Profile: req.profile(),
	})
	if err != nil {
		return nil, err
	}

	c, err := s.store.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, notFound(err, "creator %s", creatorID)
	}
	s.logger.Info("creator resolved", "id", c.ID, "slug", c.Slug)
	return c, nil
}

// UpdateBySlug applies a partial update to the creator.
func (s *CreatorService) UpdateBySlug(ctx context.Context, creatorSlug string, req UpdateCreatorRequest) (*domain.Creator, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c, err := s.store.GetCreatorBySlug(ctx, creatorSlug)
	if err != nil {
		return nil, notFound(err, "creator %q", creatorSlug)
	}

	if req.Name != nil {
		c.Name = normalize.Name(*req.Name)
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&c.Bio, req.Bio)
	set(&c.Avatar, req.Avatar)
	set(&c.Twitter, req.Twitter)
	set(&c.Instagram, req.Instagram)
	set(&c.Website, req.Website)
	set(&c.YouTube, req.YouTube)

	if err := s.store.UpdateCreator(ctx, c); err != nil {
		return nil, writeError(err, "creator %q", c.Slug)
	}

	s.logger.Info("creator updated", "id", c.ID, "slug", c.Slug)
	return c, nil
}

// GetBySlug returns the creator and their movies.
func (s *CreatorService) GetBySlug(ctx context.Context, creatorSlug string) (*CreatorDetail, error) {
	c, err := s.store.GetCreatorBySlug(ctx, creatorSlug)
	if err != nil {
		return nil, notFound(err, "creator %q", creatorSlug)
	}

	movies, err := s.store.ListMoviesByCreator(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list movies of creator %s: %w", c.ID, err)
	}
	display, err := catalogMovies(ctx, s.store, movies)
	if err != nil {
		return nil, err
	}
	return &CreatorDetail{Creator: c, Movies: display}, nil
}

// List returns all creators ordered by name.
func (s *CreatorService) List(ctx context.Context) ([]*domain.Creator, error) {
	return s.store.ListCreators(ctx)
}
