// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/cinevault/internal/models"
)

func TestWatchlist(t *testing.T) {
	env := newTestEnv(t)
	first := env.createMovie(t, "Zodiac", "2007-03-02")
	second := env.createMovie(t, "Alien", "1979-05-25")

	list := func(t *testing.T, token string) []models.Movie {
		t.Helper()
		w := env.do(t, http.MethodGet, "/api/watchlist", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("list status = %d", w.Code)
		}
		var data moviesData
		decodeData(t, w, &data)
		return data.Movies
	}

	if got := list(t, env.userToken); len(got) != 0 {
		t.Fatalf("new watchlist = %+v, want empty", got)
	}

	for _, id := range []string{first.ID, second.ID} {
		if w := env.do(t, http.MethodPost, "/api/watchlist/"+id, env.userToken, nil); w.Code != http.StatusCreated {
			t.Fatalf("add %s status = %d (body %s)", id, w.Code, w.Body.String())
		}
	}

	t.Run("ordered by add time", func(t *testing.T) {
		got := list(t, env.userToken)
		if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
			t.Errorf("watchlist = %+v", got)
		}
	})

	t.Run("scoped to the caller", func(t *testing.T) {
		if got := list(t, env.adminToken); len(got) != 0 {
			t.Errorf("admin watchlist = %+v, want empty", got)
		}
	})

	t.Run("errors", func(t *testing.T) {
		expectError(t, env.do(t, http.MethodPost, "/api/watchlist/"+first.ID, env.userToken, nil), http.StatusConflict, CodeConflict)
		expectError(t, env.do(t, http.MethodPost, "/api/watchlist/missing", env.userToken, nil), http.StatusNotFound, CodeNotFound)
		expectError(t, env.do(t, http.MethodGet, "/api/watchlist", "", nil), http.StatusUnauthorized, CodeUnauthorized)
	})

	t.Run("remove", func(t *testing.T) {
		if w := env.do(t, http.MethodDelete, "/api/watchlist/"+first.ID, env.userToken, nil); w.Code != http.StatusOK {
			t.Fatalf("remove status = %d", w.Code)
		}
		expectError(t, env.do(t, http.MethodDelete, "/api/watchlist/"+first.ID, env.userToken, nil), http.StatusNotFound, CodeNotFound)

		got := list(t, env.userToken)
		if len(got) != 1 || got[0].ID != second.ID {
			t.Errorf("after remove = %+v", got)
		}
	})

	t.Run("deleting a movie drops it from watchlists", func(t *testing.T) {
		if w := env.do(t, http.MethodDelete, "/api/movies/"+second.ID, env.adminToken, nil); w.Code != http.StatusOK {
			t.Fatalf("delete movie status = %d", w.Code)
		}
		if got := list(t, env.userToken); len(got) != 0 {
			t.Errorf("watchlist = %+v, want empty", got)
		}
	})
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)

	expectError(t, env.do(t, http.MethodGet, "/api/admin/users", env.userToken, nil), http.StatusForbidden, CodeForbidden)

	w := env.do(t, http.MethodGet, "/api/admin/users", env.adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var data struct {
		Users []map[string]interface{} `json:"users"`
	}
	decodeData(t, w, &data)
	if len(data.Users) != 2 {
		t.Fatalf("users = %d, want 2", len(data.Users))
	}
	for _, u := range data.Users {
		if _, ok := u["passwordHash"]; ok {
			t.Errorf("password hash leaked for %v", u["username"])
		}
	}
}
