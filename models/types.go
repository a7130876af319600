// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"time"
)

// Work category constants
const (
	CategoryAlbum = "album"
	CategoryBook  = "book"
	CategoryMovie = "movie"
)

// Categories lists every valid category in display order.
var Categories = []string{CategoryAlbum, CategoryBook, CategoryMovie}

var ErrInvalidCategory = errors.New("invalid category")

func IsValidCategory(category string) bool {
	switch category {
	case CategoryAlbum, CategoryBook, CategoryMovie:
		return true
	}
	return false
}

// DateLayout is the wire format for join dates and publication years.
const DateLayout = "2006-01-02"

// Request types

type CreateUserRequest struct {
	Name     string `json:"name"`
	JoinDate string `json:"join_date,omitempty"`
}

// LoginRequest accepts either "name" or "username".
type LoginRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

func (r LoginRequest) LoginName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Username
}

type WorkRequest struct {
	Category        string `json:"category"`
	Title           string `json:"title"`
	Creator         string `json:"creator"`
	PublicationYear string `json:"publication_year"`
	Description     string `json:"description"`
}

// UpdateWorkRequest leaves nil fields unchanged.
type UpdateWorkRequest struct {
	Category        *string `json:"category"`
	Title           *string `json:"title"`
	Creator         *string `json:"creator"`
	PublicationYear *string `json:"publication_year"`
	Description     *string `json:"description"`
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	JoinDate  time.Time `json:"join_date"`
	CreatedAt time.Time `json:"created_at"`
}

type Work struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	Title           string    `json:"title"`
	Creator         string    `json:"creator"`
	PublicationYear time.Time `json:"publication_year"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

type Vote struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	WorkID     string    `json:"work_id"`
	SubmitDate time.Time `json:"submit_date"`
}

type Session struct {
	Token     string    `json:"-"` // Never expose in JSON
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WorkTally is a work with its vote count as read from the ledger.
type WorkTally struct {
	Work      Work
	VoteCount int
}

// Ranking types

type RankedWork struct {
	Work
	VoteCount int    `json:"vote_count"`
	Rank      int    `json:"rank"` // 1-indexed ranking
	Place     string `json:"place,omitempty"`
}

// Response types

type UserResponse struct {
	User
	Joined    string `json:"joined"`
	VoteCount int    `json:"vote_count"`
}

type UserDetailResponse struct {
	User  UserResponse `json:"user"`
	Votes []Vote       `json:"votes"`
}

type WorkDetailResponse struct {
	Work      Work   `json:"work"`
	VoteCount int    `json:"vote_count"`
	Votes     []Vote `json:"votes"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
	IsNew        bool   `json:"is_new"`
	Message      string `json:"message"`
}

type VoteResponse struct {
	Vote      Vote   `json:"vote"`
	VoteCount int    `json:"vote_count"`
	Message   string `json:"message"`
}

type HomeResponse struct {
	Spotlight *RankedWork             `json:"spotlight"`
	TopTen    map[string][]RankedWork `json:"top_ten"`
}

type RankingResponse struct {
	Category string       `json:"category"`
	Works    []RankedWork `json:"works"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}
