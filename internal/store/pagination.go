package store

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// Page size bounds for incremental reveal lists.
const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

// PaginationParams contains pagination request parameters.
type PaginationParams struct {
	Limit  int    // Items per page
	Cursor string // Opaque cursor for the next page (empty for the first page)
}

// PaginatedResult contains one page of items and the cursor for the next.
type PaginatedResult[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"` // Empty if no more pages
	HasMore    bool   `json:"has_more"`
	Total      int    `json:"total"`
}

// Normalize applies defaults and bounds to the limit.
func (p *PaginationParams) Normalize(defaultLimit int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

// Offset decodes the cursor into a row offset.
func (p PaginationParams) Offset() (int, error) {
	if p.Cursor == "" {
		return 0, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(p.Cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor: %w", err)
	}
	offset, err := strconv.Atoi(string(decoded))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor %q", p.Cursor)
	}
	return offset, nil
}

// EncodeCursor creates an opaque cursor from a row offset.
func EncodeCursor(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}
