package service

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
	"github.com/reelhouse/catalog-server/internal/validation"
)

const defaultRelatedLimit = 6

// MovieService handles admin submissions and movie read paths.
type MovieService struct {
	store     store.Store
	catalog   *Catalog
	logger    *slog.Logger
	validator *validation.Validator
	pageSize  int
}

// NewMovieService creates a new movie service.
func NewMovieService(st store.Store, cat *Catalog, pageSize int, logger *slog.Logger) *MovieService {
	return &MovieService{
		store:     st,
		catalog:   cat,
		logger:    logger,
		validator: validation.New(),
		pageSize:  pageSize,
	}
}

// MovieFields are the editable fields of a movie.
type MovieFields struct {
	Title       string `json:"title" validate:"notblank,max=200" doc:"Movie title"`
	Slug        string `json:"slug,omitempty" validate:"slug" doc:"Overrides the slug derived from the title"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	VideoURL    string `json:"video_url" validate:"notblank,max=2000" doc:"Playback URL"`
	Thumbnail   string `json:"thumbnail,omitempty" validate:"max=2000" doc:"Public thumbnail path"`
	Year        int    `json:"year,omitempty" validate:"omitempty,gte=1878,lte=2200"`
	CreatorSelection
	// Genres are names of existing genres; NewGenres are typed in by the
	// admin. Both are resolved the same way and merged.
	Genres    []string `json:"genres,omitempty" validate:"max=50"`
	NewGenres []string `json:"new_genres,omitempty" validate:"max=50"`
}

// SubmitMovieRequest creates a movie.
type SubmitMovieRequest struct {
	MovieFields
}

// UpdateMovieRequest replaces every editable field of a movie and its genres.
// Without a slug override the slug is derived from the new title again.
type UpdateMovieRequest struct {
	MovieFields
}

// MovieDetail is a movie with its creator and genres.
type MovieDetail struct {
	Movie   domain.CatalogMovie `json:"movie"`
	Creator *domain.Creator     `json:"creator,omitempty"`
	Genres  []*domain.Genre     `json:"genres"`
}

func (f MovieFields) allGenres() []string {
	return append(append(make([]string, 0, len(f.Genres)+len(f.NewGenres)), f.Genres...), f.NewGenres...)
}

// deriveSlug returns the explicit slug, or one derived from the title.
func deriveSlug(explicit, title string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	s := slug.Make(normalize.Name(title))
	if s == "" {
		return "", domainerrors.Validationf("title %q does not produce a usable slug", title)
	}
	return s, nil
}

// Submit creates a movie the way the admin form does: resolve the creator,
// insert the movie, then replace its genres. In atomic mode the three steps
// share one transaction.
func (s *MovieService) Submit(ctx context.Context, req SubmitMovieRequest) (*MovieDetail, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	movieSlug, err := deriveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.checkWrite(req.CreatorSelection, req.allGenres()); err != nil {
		return nil, err
	}

	m := &domain.Movie{
		Title:       normalize.Name(req.Title),
		Slug:        movieSlug,
		Description: strings.TrimSpace(req.Description),
		VideoURL:    strings.TrimSpace(req.VideoURL),
		Thumbnail:   strings.TrimSpace(req.Thumbnail),
		Year:        req.Year,
	}

	err = s.catalog.run(ctx, s.store, func(st store.Store) error {
		creatorID, err := s.catalog.resolveCreator(ctx, st, req.CreatorSelection)
		if err != nil {
			return err
		}
		m.CreatorID = creatorID

		if err := st.CreateMovie(ctx, m); err != nil {
			return writeError(err, "movie %q", m.Slug)
		}
		return s.catalog.Synchronizer.SetGenres(ctx, st, m.ID, req.allGenres())
	})
	if err != nil {
		s.logMultiStepFailure("movie submission failed", m, err)
		return nil, err
	}

	s.logger.Info("movie created", "id", m.ID, "slug", m.Slug, "creator_id", m.CreatorID)
	return s.detail(ctx, s.store, m)
}

// Update overwrites the movie's fields and replaces its genres.
func (s *MovieService) Update(ctx context.Context, movieID string, req UpdateMovieRequest) (*MovieDetail, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	movieSlug, err := deriveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.checkWrite(req.CreatorSelection, req.allGenres()); err != nil {
		return nil, err
	}

	var m *domain.Movie
	err = s.catalog.run(ctx, s.store, func(st store.Store) error {
		var err error
		m, err = st.GetMovie(ctx, movieID)
		if err != nil {
			return notFound(err, "movie %s", movieID)
		}

		creatorID, err := s.catalog.resolveCreator(ctx, st, req.CreatorSelection)
		if err != nil {
			return err
		}

		m.Title = normalize.Name(req.Title)
		m.Slug = movieSlug
		m.Description = strings.TrimSpace(req.Description)
		m.VideoURL = strings.TrimSpace(req.VideoURL)
		m.Thumbnail = strings.TrimSpace(req.Thumbnail)
		m.Year = req.Year
		m.CreatorID = creatorID

		if err := st.UpdateMovie(ctx, m); err != nil {
			return writeError(err, "movie %q", m.Slug)
		}
		return s.catalog.Synchronizer.SetGenres(ctx, st, m.ID, req.allGenres())
	})
	if err != nil {
		if m != nil {
			s.logMultiStepFailure("movie update failed", m, err)
		}
		return nil, err
	}

	s.logger.Info("movie updated", "id", m.ID, "slug", m.Slug)
	return s.detail(ctx, s.store, m)
}

// Get returns a movie by id.
func (s *MovieService) Get(ctx context.Context, movieID string) (*MovieDetail, error) {
	m, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, notFound(err, "movie %s", movieID)
	}
	return s.detail(ctx, s.store, m)
}

// GetBySlug returns a movie by slug.
func (s *MovieService) GetBySlug(ctx context.Context, movieSlug string) (*MovieDetail, error) {
	m, err := s.store.GetMovieBySlug(ctx, movieSlug)
	if err != nil {
		return nil, notFound(err, "movie %q", movieSlug)
	}
	return s.detail(ctx, s.store, m)
}

// List returns one page of movies, newest first.
func (s *MovieService) List(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.CatalogMovie], error) {
	params.Normalize(s.pageSize)
	page, err := s.store.ListMovies(ctx, params)
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			return nil, domainerrors.Validation("invalid cursor")
		}
		return nil, fmt.Errorf("list movies: %w", err)
	}

	items, err := catalogMovies(ctx, s.store, page.Items)
	if err != nil {
		return nil, err
	}
	return &store.PaginatedResult[domain.CatalogMovie]{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
		Total:      page.Total,
	}, nil
}

// Related returns other movies sharing genres with the movie, most shared
// genres first.
func (s *MovieService) Related(ctx context.Context, movieSlug string, limit int) ([]domain.CatalogMovie, error) {
	m, err := s.store.GetMovieBySlug(ctx, movieSlug)
	if err != nil {
		return nil, notFound(err, "movie %q", movieSlug)
	}
	if limit <= 0 || limit > store.MaxPageSize {
		limit = defaultRelatedLimit
	}

	related, err := s.store.ListRelatedMovies(ctx, m.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list related movies: %w", err)
	}
	return catalogMovies(ctx, s.store, related)
}

func (s *MovieService) detail(ctx context.Context, st store.Store, m *domain.Movie) (*MovieDetail, error) {
	genres, err := s.catalog.Synchronizer.Genres(ctx, st, m.ID)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	var creator *domain.Creator
	if m.HasCreator() {
		creator, err = st.GetCreator(ctx, m.CreatorID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load creator: %w", err)
		}
	}

	return &MovieDetail{
		Movie:   normalize.Relational(m, creator, genres),
		Creator: creator,
		Genres:  genres,
	}, nil
}

// logMultiStepFailure records what a failed legacy write may have left
// behind. Atomic failures leave nothing behind and are logged by the caller.
func (s *MovieService) logMultiStepFailure(msg string, m *domain.Movie, err error) {
	if s.catalog.Atomic() {
		return
	}
	if errors.Is(err, domainerrors.ErrPartialFailure) {
		s.logger.Error(msg, "movie_id", m.ID, "slug", m.Slug, "junction_state", "empty", "error", err)
		return
	}
	if m.ID != "" {
		s.logger.Warn(msg+", earlier steps were kept", "movie_id", m.ID, "slug", m.Slug, "error", err)
	}
}
