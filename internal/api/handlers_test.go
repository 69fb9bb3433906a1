// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/database"
	"github.com/tomtom215/kinograph/internal/importer"
	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
)

// envelope mirrors models.APIResponse with raw data for per-test
// decoding.
type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func testAPIConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			DefaultTopN:     5,
			MaxTopN:         20,
		},
	}
}

// seedCatalog loads a small trainable catalog: users 1-3 with rating
// history, user 4 registered but silent. Movies 20 and 30 are
// perfectly negatively correlated; movie 10 has zero rating variance.
func seedCatalog(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	for _, id := range []int{1, 2, 3, 4} {
		if err := db.CreateUser(ctx, id); err != nil {
			t.Fatalf("CreateUser(%d): %v", id, err)
		}
	}

	movies := []models.MovieImport{
		{ID: 10, Title: "The Matrix", Genres: []string{"Action", "Sci-Fi"}},
		{ID: 20, Title: "Blade Runner", Genres: []string{"Sci-Fi", "Thriller"}},
		{ID: 30, Title: "Notting Hill", Genres: []string{"Comedy", "Romance"}},
		{ID: 40, Title: "Heat", Genres: []string{"Action", "Crime"}},
	}
	if err := db.ImportMovies(ctx, movies); err != nil {
		t.Fatalf("ImportMovies: %v", err)
	}

	ratings := []models.Rating{
		{UserID: 1, MovieID: 10, Value: 5.0},
		{UserID: 1, MovieID: 20, Value: 5.0},
		{UserID: 1, MovieID: 30, Value: 1.0},
		{UserID: 2, MovieID: 10, Value: 5.0},
		{UserID: 2, MovieID: 20, Value: 1.0},
		{UserID: 2, MovieID: 30, Value: 5.0},
		{UserID: 3, MovieID: 20, Value: 4.0},
		{UserID: 3, MovieID: 40, Value: 3.0},
	}
	for _, r := range ratings {
		if err := db.UpsertRating(ctx, r); err != nil {
			t.Fatalf("UpsertRating(%+v): %v", r, err)
		}
	}
}

// newTestRouter builds the full route tree over an in-memory catalog
// with a freshly trained model.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.New(database.Config{Path: ":memory:", Threads: 2})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	seedCatalog(t, db)

	rcfg := recommend.DefaultConfig()
	rcfg.MinCommonRaters = 2
	rcfg.MinK = 1
	rcfg.NumWorkers = 2
	rcfg.ModelPath = filepath.Join(t.TempDir(), "model.json")

	engine, err := recommend.NewEngine(rcfg, db, recommend.NewFileStore(rcfg.ModelPath), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := engine.Load(context.Background()); err != nil {
		t.Fatalf("engine Load: %v", err)
	}

	cfg := testAPIConfig()
	cfg.Recommend = rcfg
	handler := NewHandler(db, engine, importer.New(db, cfg.Import), cfg)
	return NewRouter(handler, cfg).Setup()
}

// doJSON runs one request through the router and decodes the envelope.
func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}
}

func TestUserEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("create user", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodPost, "/api/v1/users", models.User{ID: 9})
		if code != http.StatusCreated {
			t.Fatalf("status = %d, body = %+v", code, env)
		}
	})

	t.Run("create user invalid payload", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodPost, "/api/v1/users", map[string]int{"id": 0})
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d", code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("error = %+v", env.Error)
		}
	})

	t.Run("list users", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/users", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var users []models.User
		decodeData(t, env, &users)
		if len(users) != 5 { // 4 seeded + 1 created above
			t.Errorf("users = %v, want 5", users)
		}
	})

	t.Run("next id", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/users/next-id", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var data map[string]int
		decodeData(t, env, &data)
		if data["next_id"] != 5 {
			t.Errorf("next_id = %d, want 5", data["next_id"])
		}
	})

	t.Run("user ratings history", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/users/1/ratings", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var history []models.RatingDetail
		decodeData(t, env, &history)
		if len(history) != 3 {
			t.Fatalf("history = %v, want 3 entries", history)
		}
		if history[0].Title != "The Matrix" {
			t.Errorf("title = %q", history[0].Title)
		}
	})

	t.Run("delete user", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodDelete, "/api/v1/users/9", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		code, env := doJSON(t, router, http.MethodDelete, "/api/v1/users/9", nil)
		if code != http.StatusNotFound {
			t.Errorf("second delete status = %d, error = %+v", code, env.Error)
		}
	})

	t.Run("invalid user id in path", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodGet, "/api/v1/users/abc/ratings", nil)
		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})
}

func TestMovieEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("create movie", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodPost, "/api/v1/movies",
			models.Movie{ID: 50, Title: "Alien"})
		if code != http.StatusCreated {
			t.Fatalf("status = %d", code)
		}
	})

	t.Run("create movie missing title", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodPost, "/api/v1/movies",
			map[string]interface{}{"id": 51})
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d", code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("error = %+v", env.Error)
		}
	})

	t.Run("get movie with genres", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/movies/10", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var detail struct {
			models.Movie
			Genres []string `json:"genres"`
		}
		decodeData(t, env, &detail)
		if detail.Title != "The Matrix" {
			t.Errorf("title = %q", detail.Title)
		}
		if len(detail.Genres) != 2 || detail.Genres[0] != "Action" {
			t.Errorf("genres = %v", detail.Genres)
		}
	})

	t.Run("get unknown movie", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/movies/999", nil)
		if code != http.StatusNotFound {
			t.Fatalf("status = %d", code)
		}
		if env.Error == nil || env.Error.Code != "NOT_FOUND" {
			t.Errorf("error = %+v", env.Error)
		}
	})

	t.Run("paginated list", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/movies?page=1&page_size=2", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var list movieListResponse
		decodeData(t, env, &list)
		if len(list.Movies) != 2 {
			t.Errorf("page = %v, want 2 movies", list.Movies)
		}
		if list.Pagination.TotalCount != 5 {
			t.Errorf("total = %d, want 5", list.Pagination.TotalCount)
		}
		if !list.Pagination.HasMore {
			t.Error("HasMore = false, want true")
		}
	})

	t.Run("rename movie", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodPut, "/api/v1/movies/50",
			map[string]string{"title": "Alien (1979)"})
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		_, env := doJSON(t, router, http.MethodGet, "/api/v1/movies/50", nil)
		var detail models.Movie
		decodeData(t, env, &detail)
		if detail.Title != "Alien (1979)" {
			t.Errorf("title = %q", detail.Title)
		}
	})

	t.Run("delete movie", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodDelete, "/api/v1/movies/50", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		code, _ = doJSON(t, router, http.MethodGet, "/api/v1/movies/50", nil)
		if code != http.StatusNotFound {
			t.Errorf("status after delete = %d", code)
		}
	})
}

func TestGenreEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("create and list", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodPost, "/api/v1/genres",
			map[string]string{"name": "Film-Noir"})
		if code != http.StatusCreated {
			t.Fatalf("status = %d", code)
		}

		_, env := doJSON(t, router, http.MethodGet, "/api/v1/genres", nil)
		var genres []models.Genre
		decodeData(t, env, &genres)
		found := false
		for _, g := range genres {
			if g.Name == "Film-Noir" {
				found = true
			}
		}
		if !found {
			t.Errorf("genres = %v, missing Film-Noir", genres)
		}
	})

	t.Run("link and unlink movie genre", func(t *testing.T) {
		link := models.MovieGenre{MovieID: 10, GenreName: "Film-Noir"}

		code, _ := doJSON(t, router, http.MethodPost, "/api/v1/movie-genres", link)
		if code != http.StatusCreated {
			t.Fatalf("link status = %d", code)
		}

		_, env := doJSON(t, router, http.MethodGet, "/api/v1/movie-genres", nil)
		var links []models.MovieGenre
		decodeData(t, env, &links)
		found := false
		for _, l := range links {
			if l == link {
				found = true
			}
		}
		if !found {
			t.Errorf("links = %v, missing %v", links, link)
		}

		code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/movie-genres", link)
		if code != http.StatusOK {
			t.Fatalf("unlink status = %d", code)
		}
		code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/movie-genres", link)
		if code != http.StatusNotFound {
			t.Errorf("second unlink status = %d", code)
		}
	})

	t.Run("link unknown genre", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodPost, "/api/v1/movie-genres",
			models.MovieGenre{MovieID: 10, GenreName: "Mockumentary"})
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", code)
		}
	})

	t.Run("delete genre cascades links", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodDelete, "/api/v1/genres/Film-Noir", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/genres/Film-Noir", nil)
		if code != http.StatusNotFound {
			t.Errorf("second delete status = %d", code)
		}
	})
}

func TestRatingEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("upsert rating", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodPut, "/api/v1/ratings",
			models.Rating{UserID: 4, MovieID: 10, Value: 4.5})
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}

		_, env := doJSON(t, router, http.MethodGet, "/api/v1/users/4/ratings", nil)
		var history []models.RatingDetail
		decodeData(t, env, &history)
		if len(history) != 1 || history[0].Value != 4.5 {
			t.Errorf("history = %v", history)
		}
	})

	t.Run("off-scale value rejected", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodPost, "/api/v1/ratings",
			models.Rating{UserID: 4, MovieID: 10, Value: 4.2})
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d", code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("error = %+v", env.Error)
		}
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodPost, "/api/v1/ratings",
			models.Rating{UserID: 99, MovieID: 10, Value: 3.0})
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", code)
		}
	})

	t.Run("list ratings", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/ratings", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var ratings []models.Rating
		decodeData(t, env, &ratings)
		if len(ratings) != 9 { // 8 seeded + 1 upserted above
			t.Errorf("ratings = %d entries, want 9", len(ratings))
		}
	})

	t.Run("delete rating", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodDelete, "/api/v1/ratings",
			map[string]int{"user_id": 4, "movie_id": 10})
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/ratings",
			map[string]int{"user_id": 4, "movie_id": 10})
		if code != http.StatusNotFound {
			t.Errorf("second delete status = %d", code)
		}
	})
}

func TestFeedEndpoint(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodGet, "/api/v1/feed", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var data struct {
		Rows  []recommend.RatingRow `json:"rows"`
		Count int                   `json:"count"`
	}
	decodeData(t, env, &data)
	if data.Count != 8 || len(data.Rows) != 8 {
		t.Errorf("count = %d, rows = %d, want 8", data.Count, len(data.Rows))
	}
	if data.Rows[0].Genres != "Action|Sci-Fi" {
		t.Errorf("genres = %q", data.Rows[0].Genres)
	}
}

func TestImportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("no path configured", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodPost, "/api/v1/import", nil)
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d", code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("error = %+v", env.Error)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		csv := "userId,movieId,rating,title,genres\n7,70,4.0,Se7en (1995),Crime|Thriller\n"
		path := filepath.Join(t.TempDir(), "data.csv")
		if err := writeTestFile(path, csv); err != nil {
			t.Fatalf("write csv: %v", err)
		}

		code, env := doJSON(t, router, http.MethodPost, "/api/v1/import",
			map[string]string{"path": path})
		if code != http.StatusOK {
			t.Fatalf("status = %d, error = %+v", code, env.Error)
		}

		var stats importer.Stats
		decodeData(t, env, &stats)
		if stats.RowsProcessed != 1 {
			t.Errorf("rows = %d, want 1", stats.RowsProcessed)
		}

		code, _ = doJSON(t, router, http.MethodGet, "/api/v1/movies/70", nil)
		if code != http.StatusOK {
			t.Errorf("imported movie lookup status = %d", code)
		}
	})
}
