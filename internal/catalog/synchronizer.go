package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reelhouse/catalog-server/internal/domain"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/normalize"
	"github.com/reelhouse/catalog-server/internal/slug"
	"github.com/reelhouse/catalog-server/internal/store"
)

// Mode selects how multi-step writes commit.
type Mode int

const (
	// ModeAtomic runs each multi-step write in one transaction. A failure
	// leaves every row as it was before the call.
	ModeAtomic Mode = iota
	// ModeLegacy commits every step on its own. A failure after the junction
	// delete leaves the movie with no genres and is reported as a partial
	// failure.
	ModeLegacy
)

func (m Mode) String() string {
	if m == ModeLegacy {
		return "legacy"
	}
	return "atomic"
}

// ModeFor maps the AtomicWrites setting to a Mode.
func ModeFor(atomicWrites bool) Mode {
	if atomicWrites {
		return ModeAtomic
	}
	return ModeLegacy
}

// JunctionEmpty is the junction_state reported when a legacy write failed
// after the delete.
const JunctionEmpty = "empty"

// PartialFailureDetails describes what a failed legacy write left behind.
type PartialFailureDetails struct {
	MovieID       string `json:"movie_id"`
	JunctionState string `json:"junction_state"`
}

// Synchronizer replaces a movie's genre set.
type Synchronizer struct {
	resolver *Resolver
	mode     Mode
	logger   *slog.Logger
}

// NewSynchronizer creates a synchronizer that resolves genres with resolver.
func NewSynchronizer(resolver *Resolver, mode Mode, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Synchronizer{resolver: resolver, mode: mode, logger: logger}
}

// Mode reports the commit mode.
func (s *Synchronizer) Mode() Mode {
	return s.mode
}

// SetGenres makes the movie's genres exactly the given names. Names are
// trimmed, blanks are skipped and names with the same slug count once, the
// first spelling winning. Genres that do not exist yet are created.
//
// Existing junction rows are deleted first and the new set is inserted in a
// single statement. Genre rows that lose their last movie are kept.
func (s *Synchronizer) SetGenres(ctx context.Context, st store.Store, movieID string, names []string) error {
	wanted, err := GenreNames(names)
	if err != nil {
		return err
	}

	if s.mode == ModeLegacy && !st.InTx() {
		return s.replaceLegacy(ctx, st, movieID, wanted)
	}
	return st.WithTx(ctx, func(tx store.Store) error {
		return s.replace(ctx, tx, movieID, wanted)
	})
}

// Genres returns the movie's current genres ordered by name.
func (s *Synchronizer) Genres(ctx context.Context, st store.Store, movieID string) ([]*domain.Genre, error) {
	return st.ListMovieGenres(ctx, movieID)
}

// GenreNames cleans and deduplicates the requested names. Every name must
// produce a slug; the whole request is rejected otherwise. It reads no store,
// so callers can reject a bad genre list before their first write.
func GenreNames(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := normalize.Name(raw)
		if name == "" {
			continue
		}
		key := slug.Make(name)
		if key == "" {
			return nil, domainerrors.Validationf("genre name %q does not produce a usable slug", raw)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out, nil
}

func (s *Synchronizer) replace(ctx context.Context, st store.Store, movieID string, names []string) error {
	if err := s.requireMovie(ctx, st, movieID); err != nil {
		return err
	}
	if err := st.DeleteMovieGenres(ctx, movieID); err != nil {
		return fmt.Errorf("clear genres of movie %s: %w", movieID, err)
	}
	return s.link(ctx, st, movieID, names)
}

func (s *Synchronizer) replaceLegacy(ctx context.Context, st store.Store, movieID string, names []string) error {
	if err := s.requireMovie(ctx, st, movieID); err != nil {
		return err
	}
	if err := st.DeleteMovieGenres(ctx, movieID); err != nil {
		return fmt.Errorf("clear genres of movie %s: %w", movieID, err)
	}

	if err := s.link(ctx, st, movieID, names); err != nil {
		s.logger.Error("genre replacement failed after delete, movie left without genres",
			"movie_id", movieID, "error", err)
		return domainerrors.PartialFailure("genres were cleared but could not be replaced", err,
			PartialFailureDetails{MovieID: movieID, JunctionState: JunctionEmpty})
	}
	return nil
}

// link resolves every name and inserts the junction rows in one batch.
func (s *Synchronizer) link(ctx context.Context, st store.Store, movieID string, names []string) error {
	ids := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		genreID, err := s.resolver.Resolve(ctx, st, domain.KindGenre, ResolveRequest{Name: name})
		if err != nil {
			return err
		}
		if seen[genreID] {
			continue
		}
		seen[genreID] = true
		ids = append(ids, genreID)
	}

	if err := st.InsertMovieGenres(ctx, movieID, ids); err != nil {
		return fmt.Errorf("link genres to movie %s: %w", movieID, err)
	}

	s.logger.Debug("movie genres replaced", "movie_id", movieID, "count", len(ids), "mode", s.mode.String())
	return nil
}

func (s *Synchronizer) requireMovie(ctx context.Context, st store.Store, movieID string) error {
	if _, err := st.GetMovie(ctx, movieID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("movie %s not found", movieID)
		}
		return fmt.Errorf("get movie %s: %w", movieID, err)
	}
	return nil
}
