// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/cliparse"
	"github.com/danielhkuo/media-ranker/db"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/store"
)

// Now is the fixed wall-clock time tests start from.
var Now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a store over a fresh database and the fixed clock
// it reads.
func SetupTestStore(t *testing.T) (*store.Store, *clock.Fixed) {
	t.Helper()

	clk := clock.NewFixed(Now)
	return store.New(SetupTestDB(t), clk), clk
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		SessionTTL:   time.Hour,
	}
}

// CreateTestUser inserts a user who joined on the clock's current date.
func CreateTestUser(t *testing.T, s *store.Store, clk clock.Clock, name string) models.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), models.User{
		Name:     name,
		JoinDate: clock.Today(clk),
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestWork inserts a work and advances clk by one second so works
// created in sequence have distinct creation times.
func CreateTestWork(t *testing.T, s *store.Store, clk *clock.Fixed, category, title string) models.Work {
	t.Helper()

	work, err := s.CreateWork(context.Background(), models.Work{
		Category:        category,
		Title:           title,
		Creator:         "Test Creator",
		PublicationYear: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Description:     "A test work",
	})
	if err != nil {
		t.Fatalf("Failed to create test work: %v", err)
	}
	clk.Advance(time.Second)

	return work
}

// CastTestVotes has n fresh users upvote the work.
func CastTestVotes(t *testing.T, s *store.Store, clk clock.Clock, workID string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		user := CreateTestUser(t, s, clk, "voter")
		if _, err := s.CastVote(context.Background(), workID, user.ID); err != nil {
			t.Fatalf("Failed to cast test vote: %v", err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
