package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/store"
)

// BrowseService builds the read models of the public pages.
type BrowseService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBrowseService creates a new browse service.
func NewBrowseService(st store.Store, logger *slog.Logger) *BrowseService {
	return &BrowseService{store: st, logger: logger}
}

// GenreShelf is one row of the home page: a genre and its movies.
type GenreShelf struct {
	Genre  *domain.Genre         `json:"genre"`
	Movies []domain.CatalogMovie `json:"movies"`
}

// EpisodeSlug addresses one episode.
type EpisodeSlug struct {
	Series  string `json:"series"`
	Episode string `json:"episode"`
}

// SlugIndex lists every public slug, for sitemaps and static page generation.
type SlugIndex struct {
	Movies   []string      `json:"movies"`
	Creators []string      `json:"creators"`
	Genres   []string      `json:"genres"`
	Series   []string      `json:"series"`
	Episodes []EpisodeSlug `json:"episodes"`
}

// Home returns every genre that has movies, ordered by genre name.
func (s *BrowseService) Home(ctx context.Context) ([]GenreShelf, error) {
	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	shelves := make([]GenreShelf, 0, len(genres))
	for _, g := range genres {
		movies, err := s.store.ListMoviesByGenre(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list movies of genre %s: %w", g.Slug, err)
		}
		if len(movies) == 0 {
			continue
		}
		display, err := catalogMovies(ctx, s.store, movies)
		if err != nil {
			return nil, err
		}
		shelves = append(shelves, GenreShelf{Genre: g, Movies: display})
	}
	return shelves, nil
}

// Slugs returns every public slug.
func (s *BrowseService) Slugs(ctx context.Context) (*SlugIndex, error) {
	idx := &SlugIndex{
		Movies:   []string{},
		Creators: []string{},
		Genres:   []string{},
		Series:   []string{},
		Episodes: []EpisodeSlug{},
	}

	params := store.PaginationParams{Limit: store.MaxPageSize}
	for {
		page, err := s.store.ListMovies(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("list movies: %w", err)
		}
		for _, m := range page.Items {
			idx.Movies = append(idx.Movies, m.Slug)
		}
		if !page.HasMore {
			break
		}
		params.Cursor = page.NextCursor
	}

	creators, err := s.store.ListCreators(ctx)
	if err != nil {
		return nil, fmt.Errorf("list creators: %w", err)
	}
	for _, c := range creators {
		idx.Creators = append(idx.Creators, c.Slug)
	}

	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	for _, g := range genres {
		idx.Genres = append(idx.Genres, g.Slug)
	}

	series, err := s.store.ListSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	for _, sr := range series {
		idx.Series = append(idx.Series, sr.Slug)
		episodes, err := s.store.ListEpisodes(ctx, sr.ID)
		if err != nil {
			return nil, fmt.Errorf("list episodes of %s: %w", sr.Slug, err)
		}
		for _, e := range episodes {
			idx.Episodes = append(idx.Episodes, EpisodeSlug{Series: sr.Slug, Episode: e.Slug})
		}
	}

	s.logger.Debug("slug index built", "movies", len(idx.Movies), "series", len(idx.Series))
	return idx, nil
}
