// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ranking orders works by upvote count.

# Queries

	engine := ranking.NewEngine(store)

	spot, err := engine.Spotlight(ctx)              // nil on an empty catalog
	top, err := engine.TopTen(ctx, "book")          // at most 10
	top, err := engine.TopN(ctx, "album", 3)        // at most 3, n <= 0 is empty
	all, err := engine.OrderedFilter(ctx, "movie")  // every movie
	board, err := engine.Leaderboard(ctx, 10)       // category → top 10

Unknown categories return ErrInvalidCategory, which is the same value as
models.ErrInvalidCategory.

# Ordering

Rank sorts with a total comparator:

 1. Higher vote count wins
 2. Earlier CreatedAt wins
 3. Lower ID wins (IDs are UUIDv7, so this is also creation order)

Each result carries a 1-indexed Rank and a humanized Place ("1st", "2nd").

# Freshness

Nothing is cached. Every query reads current tallies through TallySource,
so a vote is reflected by the next query.
*/
package ranking
