// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/media-ranker/models"
)

// ErrInvalidCategory is shared with validation so callers can match either.
var ErrInvalidCategory = models.ErrInvalidCategory

// DefaultTopN is the size of a category's "top ten" list.
const DefaultTopN = 10

// TallySource supplies works with their current vote counts. An empty
// category means every category.
type TallySource interface {
	WorkTallies(ctx context.Context, category string) ([]models.WorkTally, error)
}

// Engine answers ranking queries. It holds no state between calls; every
// query recomputes counts from the vote table.
type Engine struct {
	source TallySource
}

func NewEngine(source TallySource) *Engine {
	return &Engine{source: source}
}

// Spotlight returns the most-voted work across all categories, or nil when
// the catalog is empty.
func (e *Engine) Spotlight(ctx context.Context) (*models.RankedWork, error) {
	tallies, err := e.source.WorkTallies(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load tallies: %w", err)
	}

	ranked := Rank(tallies)
	if len(ranked) == 0 {
		return nil, nil
	}
	return &ranked[0], nil
}

// TopN returns at most n works of category, most votes first. n <= 0 yields
// an empty list.
func (e *Engine) TopN(ctx context.Context, category string, n int) ([]models.RankedWork, error) {
	if !models.IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if n <= 0 {
		return []models.RankedWork{}, nil
	}

	ranked, err := e.rankCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func (e *Engine) TopTen(ctx context.Context, category string) ([]models.RankedWork, error) {
	return e.TopN(ctx, category, DefaultTopN)
}

// OrderedFilter returns every work of category in ranked order.
func (e *Engine) OrderedFilter(ctx context.Context, category string) ([]models.RankedWork, error) {
	if !models.IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return e.rankCategory(ctx, category)
}

// Leaderboard returns TopN for each category, keyed by category.
func (e *Engine) Leaderboard(ctx context.Context, n int) (map[string][]models.RankedWork, error) {
	board := make(map[string][]models.RankedWork, len(models.Categories))
	for _, category := range models.Categories {
		ranked, err := e.TopN(ctx, category, n)
		if err != nil {
			return nil, err
		}
		board[category] = ranked
	}
	return board, nil
}

func (e *Engine) rankCategory(ctx context.Context, category string) ([]models.RankedWork, error) {
	tallies, err := e.source.WorkTallies(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s tallies: %w", category, err)
	}
	return Rank(tallies), nil
}

// Rank orders tallies by vote count (descending), then creation time, then
// ID, and assigns 1-indexed ranks. The input is not modified.
func Rank(tallies []models.WorkTally) []models.RankedWork {
	sorted := make([]models.WorkTally, len(tallies))
	copy(sorted, tallies)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		// 1. More votes wins
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}

		// 2. Earliest created wins
		if !a.Work.CreatedAt.Equal(b.Work.CreatedAt) {
			return a.Work.CreatedAt.Before(b.Work.CreatedAt)
		}

		// 3. Stable tie-breaking by ID (ascending)
		return a.Work.ID < b.Work.ID
	})

	ranked := make([]models.RankedWork, len(sorted))
	for i, t := range sorted {
		ranked[i] = models.RankedWork{
			Work:      t.Work,
			VoteCount: t.VoteCount,
			Rank:      i + 1, // 1-indexed ranking
			Place:     humanize.Ordinal(i + 1),
		}
	}
	return ranked
}
