package sqlstore

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/store"
)

func TestUpsertRating_ReplacesValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertRating(ctx, &domain.Rating{MovieSlug: "neon-dreams", UserID: "u1", Value: 2}); err != nil {
		t.Fatalf("UpsertRating: %v", err)
	}
	first, err := s.GetRating(ctx, "neon-dreams", "u1")
	if err != nil {
		t.Fatalf("GetRating: %v", err)
	}

	if err := s.UpsertRating(ctx, &domain.Rating{MovieSlug: "neon-dreams", UserID: "u1", Value: 5}); err != nil {
		t.Fatalf("UpsertRating again: %v", err)
	}
	got, err := s.GetRating(ctx, "neon-dreams", "u1")
	if err != nil {
		t.Fatalf("GetRating: %v", err)
	}
	if got.Value != 5 {
		t.Errorf("expected rating 5, got %d", got.Value)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at should survive an upsert")
	}

	values, err := s.ListRatingValues(ctx, "neon-dreams")
	if err != nil {
		t.Fatalf("ListRatingValues: %v", err)
	}
	if len(values) != 1 {
		t.Errorf("expected one row per viewer, got %d", len(values))
	}
}

func TestListRatingValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for user, v := range map[string]int{"u1": 4, "u2": 5, "u3": 3} {
		if err := s.UpsertRating(ctx, &domain.Rating{MovieSlug: "m", UserID: user, Value: v}); err != nil {
			t.Fatalf("UpsertRating: %v", err)
		}
	}
	if err := s.UpsertRating(ctx, &domain.Rating{MovieSlug: "other", UserID: "u1", Value: 1}); err != nil {
		t.Fatalf("UpsertRating: %v", err)
	}

	values, err := s.ListRatingValues(ctx, "m")
	if err != nil {
		t.Fatalf("ListRatingValues: %v", err)
	}
	sort.Ints(values)
	if len(values) != 3 || values[0] != 3 || values[2] != 5 {
		t.Errorf("unexpected values: %v", values)
	}

	empty, err := s.ListRatingValues(ctx, "nobody-rated")
	if err != nil {
		t.Fatalf("ListRatingValues: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no values, got %v", empty)
	}
}

func TestRating_OutOfRangeAndMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.UpsertRating(ctx, &domain.Rating{MovieSlug: "m", UserID: "u1", Value: 6})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	if _, err := s.GetRating(ctx, "m", "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
