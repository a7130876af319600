// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/media-ranker/metrics"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/testutil"
)

func TestCreateWork(t *testing.T) {
	env := setupEnv(t, testutil.GetTestConfig())

	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedFields []string
	}{
		{
			name: "valid work",
			body: models.WorkRequest{
				Category:        "book",
				Title:           "Test book",
				Creator:         "Some author",
				PublicationYear: "2000-01-01",
				Description:     "This is the story of a girl",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid category",
			body: models.WorkRequest{
				Category:        "podcast",
				Title:           "Test",
				Creator:         "Someone",
				PublicationYear: "2000",
			},
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"category"},
		},
		{
			name: "future publication year",
			body: models.WorkRequest{
				Category:        "album",
				Title:           "Test",
				Creator:         "Someone",
				PublicationYear: "2025-06-15",
			},
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"publication_year"},
		},
		{
			name:           "everything missing",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"category", "title", "creator", "publication_year"},
		},
		{
			name:           "invalid JSON",
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/works", tc.body, nil)
			w := httptest.NewRecorder()

			env.works.Create(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusCreated {
				var work models.Work
				testutil.AssertJSON(t, w, &work)
				if work.ID == "" {
					t.Error("Expected work ID")
				}
				if w.Header().Get("Location") != "/works/"+work.ID {
					t.Errorf("Expected Location header, got %q", w.Header().Get("Location"))
				}
				return
			}

			if tc.expectedFields != nil {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if len(resp.Errors) != len(tc.expectedFields) {
					t.Fatalf("Expected %d field errors, got %v", len(tc.expectedFields), resp.Errors)
				}
				for i, field := range tc.expectedFields {
					if resp.Errors[i].Field != field {
						t.Errorf("Expected error %d on %s, got %s", i, field, resp.Errors[i].Field)
					}
				}
			}
		})
	}

	// Only the valid work was stored
	works, err := env.store.ListWorks(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(works) != 1 {
		t.Errorf("Expected 1 stored work, got %d", len(works))
	}
}

func TestListWorks(t *testing.T) {
	env := setupEnv(t, testutil.GetTestConfig())
	testutil.CreateTestWork(t, env.store, env.clock, models.CategoryBook, "Book")
	testutil.CreateTestWork(t, env.store, env.clock, models.CategoryMovie, "Movie")

	testCases := []struct {
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{"", http.StatusOK, 2},
		{"?category=book", http.StatusOK, 1},
		{"?category=album", http.StatusOK, 0},
		{"?category=Book", http.StatusBadRequest, 0},
		{"?category=podcast", http.StatusBadRequest, 0},
	}

	for _, tc := range testCases {
		t.Run("works"+tc.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.works.List(w, testutil.MakeRequest("GET", "/works"+tc.query, nil, nil))

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedStatus != http.StatusOK {
				return
			}

			var works []models.Work
			testutil.AssertJSON(t, w, &works)
			if len(works) != tc.expectedCount {
				t.Errorf("Expected %d works, got %d", tc.expectedCount, len(works))
			}
		})
	}
}

func TestShowWork(t *testing.T) {
	env := setupEnv(t, testutil.GetTestConfig())
	work := testutil.CreateTestWork(t, env.store, env.clock, models.CategoryAlbum, "Blue")
	testutil.CastTestVotes(t, env.store, env.clock, work.ID, 2)

	t.Run("existing work", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/works/"+work.ID, nil, nil)
		req.SetPathValue("id", work.ID)
		w := httptest.NewRecorder()

		env.works.Show(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.WorkDetailResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Work.Title != "Blue" {
			t.Errorf("Expected title Blue, got %s", resp.Work.Title)
		}
		if resp.VoteCount != 2 || len(resp.Votes) != 2 {
			t.Errorf("Expected 2 votes, got %d (%d listed)", resp.VoteCount, len(resp.Votes))
		}
	})

	t.Run("missing work", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/works/missing", nil, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		env.works.Show(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestUpdateWork(t *testing.T) {
	env := setupEnv(t, testutil.GetTestConfig())
	work := testutil.CreateTestWork(t, env.store, env.clock, models.CategoryBook, "Old title")

	update := func(id string, body interface{}) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PATCH", "/works/"+id, body, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		env.works.Update(w, req)
		return w
	}

	t.Run("partial update", func(t *testing.T) {
		w := update(work.ID, map[string]string{"title": "New title"})
		testutil.AssertStatus(t, w, http.StatusOK)

		var updated models.Work
		testutil.AssertJSON(t, w, &updated)
		if updated.Title != "New title" {
			t.Errorf("Expected new title, got %s", updated.Title)
		}
		if updated.Creator != work.Creator {
			t.Errorf("Expected creator unchanged, got %s", updated.Creator)
		}
	})

	t.Run("invalid merged work", func(t *testing.T) {
		w := update(work.ID, map[string]string{"category": "podcast", "title": ""})
		testutil.AssertStatus(t, w, http.StatusBadRequest)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Errors) != 2 {
			t.Errorf("Expected 2 field errors, got %v", resp.Errors)
		}

		stored, _ := env.store.GetWork(context.Background(), work.ID)
		if stored.Category != models.CategoryBook {
			t.Error("Rejected update must not change the work")
		}
	})

	t.Run("missing work", func(t *testing.T) {
		w := update("missing", map[string]string{"title": "x"})
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteWork(t *testing.T) {
	env := setupEnv(t, testutil.GetTestConfig())
	work := testutil.CreateTestWork(t, env.store, env.clock, models.CategoryMovie, "Doomed")
	testutil.CastTestVotes(t, env.store, env.clock, work.ID, 3)

	req := testutil.MakeRequest("DELETE", "/works/"+work.ID, nil, nil)
	req.SetPathValue("id", work.ID)
	w := httptest.NewRecorder()

	env.works.Delete(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.MessageResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Movie (ID "+work.ID+") successfully deleted." {
		t.Errorf("Unexpected message %q", resp.Message)
	}

	votes, _ := env.store.VotesForWork(context.Background(), work.ID)
	if len(votes) != 0 {
		t.Errorf("Expected votes to be deleted, got %d", len(votes))
	}

	// Second delete finds nothing
	w = httptest.NewRecorder()
	env.works.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpvote(t *testing.T) {
	env := setupEnv(t, testutil.GetTestConfig())
	work := testutil.CreateTestWork(t, env.store, env.clock, models.CategoryBook, "Dune")
	headers := env.login(t, "alice")

	upvote := func(id string, headers map[string]string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/works/"+id+"/upvote", nil, headers)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		env.works.Upvote(w, req)
		return w
	}

	t.Run("not logged in", func(t *testing.T) {
		w := upvote(work.ID, nil)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("first vote", func(t *testing.T) {
		w := upvote(work.ID, headers)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.VoteResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.VoteCount != 1 {
			t.Errorf("Expected vote count 1, got %d", resp.VoteCount)
		}
		if resp.Message != "Successfully upvoted!" {
			t.Errorf("Unexpected message %q", resp.Message)
		}
	})

	t.Run("duplicate vote", func(t *testing.T) {
		w := upvote(work.ID, headers)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("missing work", func(t *testing.T) {
		w := upvote("missing", headers)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	if got := promtest.ToFloat64(env.metrics.VotesTotal.WithLabelValues(models.CategoryBook)); got != 1 {
		t.Errorf("Expected 1 recorded vote, got %v", got)
	}
	for reason, want := range map[string]float64{
		metrics.ReasonNotAuthenticated: 1,
		metrics.ReasonDuplicate:        1,
		metrics.ReasonWorkNotFound:     1,
	} {
		if got := promtest.ToFloat64(env.metrics.VoteRejections.WithLabelValues(reason)); got != want {
			t.Errorf("Expected %v rejections for %s, got %v", want, reason, got)
		}
	}
}

func TestWritePolicy(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.RequireLoginForWrites = true
	env := setupEnv(t, cfg)

	body := models.WorkRequest{
		Category:        "movie",
		Title:           "Alien",
		Creator:         "Ridley Scott",
		PublicationYear: "1979",
	}

	w := httptest.NewRecorder()
	env.works.Create(w, testutil.MakeRequest("POST", "/works", body, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	env.works.Create(w, testutil.MakeRequest("POST", "/works", body, env.login(t, "editor")))
	testutil.AssertStatus(t, w, http.StatusCreated)
}
