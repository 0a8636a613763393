package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reelhouse/catalog-server/internal/catalog"
	"github.com/reelhouse/catalog-server/internal/store/sqlstore"
)

type testServices struct {
	store    *sqlstore.Store
	movies   *MovieService
	creators *CreatorService
	genres   *GenreService
	series   *SeriesService
	episodes *EpisodeService
	browse   *BrowseService
	ratings  *RatingService
}

// setupTestServices wires every service to a fresh SQLite database.
func setupTestServices(t *testing.T, mode catalog.Mode) *testServices {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	st, err := sqlstore.Open(context.Background(), sqlstore.Config{
		Driver:      sqlstore.EngineSQLite,
		DSN:         filepath.Join(t.TempDir(), "catalog.db"),
		AutoMigrate: true,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cat := NewCatalog(mode, logger)
	return &testServices{
		store:    st,
		movies:   NewMovieService(st, cat, 24, logger),
		creators: NewCreatorService(st, cat, logger),
		genres:   NewGenreService(st, cat, logger),
		series:   NewSeriesService(st, cat, logger),
		episodes: NewEpisodeService(st, logger),
		browse:   NewBrowseService(st, logger),
		ratings:  NewRatingService(st, cat, logger),
	}
}

func movieRequest(title string, genres ...string) SubmitMovieRequest {
	return SubmitMovieRequest{MovieFields: MovieFields{
		Title:    title,
		VideoURL: "https://cdn.example/video.mp4",
		Genres:   genres,
	}}
}
