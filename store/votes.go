// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/media-ranker/models"
)

// CastVote records one upvote of workID by userID. The existence checks and
// the insert share a transaction; UNIQUE(user_id, work_id) catches concurrent
// duplicates that slip past the check.
func (s *Store) CastVote(ctx context.Context, workID, userID string) (models.Vote, error) {
	if userID == "" {
		return models.Vote{}, ErrInvalidUser
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
	`, userID).Scan(&userExists)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to check user: %w", err)
	}
	if !userExists {
		return models.Vote{}, ErrInvalidUser
	}

	var workExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM works WHERE id = $1)
	`, workID).Scan(&workExists)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to check work: %w", err)
	}
	if !workExists {
		return models.Vote{}, ErrWorkNotFound
	}

	var voted bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM votes WHERE user_id = $1 AND work_id = $2)
	`, userID, workID).Scan(&voted)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted {
		return models.Vote{}, ErrDuplicateVote
	}

	id, err := newID()
	if err != nil {
		return models.Vote{}, err
	}
	vote := models.Vote{
		ID:         id,
		UserID:     userID,
		WorkID:     workID,
		SubmitDate: s.now(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (id, user_id, work_id, submit_date)
		VALUES ($1, $2, $3, $4)
	`, vote.ID, vote.UserID, vote.WorkID, vote.SubmitDate)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrDuplicateVote
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrDuplicateVote
		}
		return models.Vote{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return vote, nil
}

// VotesForWork lists a work's votes oldest first.
func (s *Store) VotesForWork(ctx context.Context, workID string) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT id, user_id, work_id, submit_date FROM votes
		WHERE work_id = $1
		ORDER BY submit_date, id
	`, workID)
}

// VotesByUser lists the votes a user has cast, oldest first.
func (s *Store) VotesByUser(ctx context.Context, userID string) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT id, user_id, work_id, submit_date FROM votes
		WHERE user_id = $1
		ORDER BY submit_date, id
	`, userID)
}

func (s *Store) CountVotesForWork(ctx context.Context, workID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM votes WHERE work_id = $1
	`, workID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// VoteCountsByUser maps user ID to votes cast. Users with no votes are absent.
func (s *Store) VoteCountsByUser(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, COUNT(*) FROM votes GROUP BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes by user: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[userID] = count
	}
	return counts, rows.Err()
}

func (s *Store) queryVotes(ctx context.Context, query string, arg string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.WorkID, &v.SubmitDate); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
