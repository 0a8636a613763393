package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reelhouse/catalog-server/internal/store"
)

func TestInsertAndListMovieGenres(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := createTestMovie(t, s, "Neon Dreams", "neon-dreams", time.Now())
	scifi := createTestGenre(t, s, "Sci-Fi", "sci-fi")
	noir := createTestGenre(t, s, "Noir", "noir")

	if err := s.InsertMovieGenres(ctx, m.ID, []string{scifi.ID, noir.ID}); err != nil {
		t.Fatalf("InsertMovieGenres: %v", err)
	}

	genres, err := s.ListMovieGenres(ctx, m.ID)
	if err != nil {
		t.Fatalf("ListMovieGenres: %v", err)
	}
	if len(genres) != 2 || genres[0].Slug != "noir" || genres[1].Slug != "sci-fi" {
		t.Errorf("expected [noir sci-fi] ordered by name, got %+v", genres)
	}

	if err := s.DeleteMovieGenres(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMovieGenres: %v", err)
	}
	genres, err = s.ListMovieGenres(ctx, m.ID)
	if err != nil {
		t.Fatalf("ListMovieGenres: %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("expected no genres after delete, got %d", len(genres))
	}
}

func TestInsertMovieGenres_AllOrNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := createTestMovie(t, s, "Neon Dreams", "neon-dreams", time.Now())
	noir := createTestGenre(t, s, "Noir", "noir")

	err := s.InsertMovieGenres(ctx, m.ID, []string{noir.ID, "gnr-missing"})
	if !errors.Is(err, store.ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}

	genres, err := s.ListMovieGenres(ctx, m.ID)
	if err != nil {
		t.Fatalf("ListMovieGenres: %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("batch insert must not leave partial rows, got %d", len(genres))
	}

	err = s.InsertMovieGenres(ctx, m.ID, []string{noir.ID, noir.ID})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for duplicate pair, got %v", err)
	}
}

func TestInsertMovieGenres_Empty(t *testing.T) {
	s := newTestStore(t)
	if err := s.InsertMovieGenres(context.Background(), "mov-any", nil); err != nil {
		t.Errorf("empty insert should be a no-op, got %v", err)
	}
}

func TestListGenresForMovies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := createTestMovie(t, s, "A", "a", time.Now())
	b := createTestMovie(t, s, "B", "b", time.Now())
	c := createTestMovie(t, s, "C", "c", time.Now())
	drama := createTestGenre(t, s, "Drama", "drama")
	action := createTestGenre(t, s, "Action", "action")

	if err := s.InsertMovieGenres(ctx, a.ID, []string{drama.ID, action.ID}); err != nil {
		t.Fatalf("InsertMovieGenres: %v", err)
	}
	if err := s.InsertMovieGenres(ctx, b.ID, []string{drama.ID}); err != nil {
		t.Fatalf("InsertMovieGenres: %v", err)
	}

	byMovie, err := s.ListGenresForMovies(ctx, []string{a.ID, b.ID, c.ID})
	if err != nil {
		t.Fatalf("ListGenresForMovies: %v", err)
	}
	if got := byMovie[a.ID]; len(got) != 2 || got[0].Slug != "action" {
		t.Errorf("unexpected genres for a: %+v", got)
	}
	if got := byMovie[b.ID]; len(got) != 1 || got[0].Slug != "drama" {
		t.Errorf("unexpected genres for b: %+v", got)
	}
	if _, ok := byMovie[c.ID]; ok {
		t.Errorf("movie without genres should be absent")
	}
}
