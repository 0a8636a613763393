package sqlstore

import (
	"context"
	"fmt"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/id"
)

const tableCreators = "creators"

// CreateCreator inserts a creator, assigning an id when c has none.
func (s *Store) CreateCreator(ctx context.Context, c *domain.Creator) error {
	if c.ID == "" {
		newID, err := id.Generate(id.PrefixCreator)
		if err != nil {
			return fmt.Errorf("create creator: %w", err)
		}
		c.ID = newID
	}
	if c.CreatedAt.IsZero() {
		c.InitTimestamps()
	}
	return s.insert(ctx, tableCreators, creatorColumns(c))
}

// GetCreator retrieves a creator by id.
func (s *Store) GetCreator(ctx context.Context, creatorID string) (*domain.Creator, error) {
	var row creatorRow
	if err := s.selectOne(ctx, &row, tableCreators, where{"id", creatorID}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// GetCreatorBySlug retrieves a creator by slug.
func (s *Store) GetCreatorBySlug(ctx context.Context, slug string) (*domain.Creator, error) {
	var row creatorRow
	if err := s.selectOne(ctx, &row, tableCreators, where{"slug", slug}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// UpdateCreator overwrites every mutable column of the creator.
func (s *Store) UpdateCreator(ctx context.Context, c *domain.Creator) error {
	c.Touch()
	return s.update(ctx, tableCreators, mutable(creatorColumns(c)), where{"id", c.ID})
}

// ListCreators returns all creators ordered by name.
func (s *Store) ListCreators(ctx context.Context) ([]*domain.Creator, error) {
	var rows []creatorRow
	if err := s.selectMany(ctx, &rows, tableCreators, "name, id"); err != nil {
		return nil, err
	}
	out := make([]*domain.Creator, len(rows))
	for i, r := range rows {
		out[i] = r.domain()
	}
	return out, nil
}
