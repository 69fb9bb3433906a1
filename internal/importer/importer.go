// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package importer bulk-loads a merged MovieLens-style CSV export into
// the catalog. Rows are "userId,movieId,rating,title,genres" with pipe
// separated genre lists; the "(no genres listed)" sentinel is dropped.
//
// Imports are first-wins: rows whose key already exists in the catalog
// are left untouched, so re-running an import never clobbers ratings
// submitted through the API after the first load.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/database"
	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/metrics"
	"github.com/tomtom215/kinograph/internal/models"
)

// noGenres is the sentinel MovieLens uses for movies without genre tags.
const noGenres = "(no genres listed)"

var (
	// ErrImportInProgress is returned when Run is called while a
	// previous run is still loading.
	ErrImportInProgress = errors.New("import already in progress")

	// ErrNoFileConfigured is returned when neither the call nor the
	// configuration names a CSV to load.
	ErrNoFileConfigured = errors.New("no import file configured")
)

// Stats holds counters for one import run.
type Stats struct {
	RowsProcessed int64 `json:"rows_processed"`
	RowsSkipped   int64 `json:"rows_skipped"`

	// Distinct entities seen in the file, not rows inserted: existing
	// catalog entries are left untouched.
	Users   int `json:"users"`
	Movies  int `json:"movies"`
	Genres  int `json:"genres"`
	Ratings int `json:"ratings"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns how long the run took, or how long it has been
// running if it has not finished.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// row is one parsed CSV data row.
type row struct {
	rating models.Rating
	title  string
	genres []string
}

// Importer loads CSV catalogs into the database in batches.
type Importer struct {
	db  *database.DB
	cfg config.ImportConfig

	mu      sync.RWMutex
	running bool
	stats   *Stats
}

// New creates an importer. The default path and batch size come from
// the import section of the service configuration.
func New(db *database.DB, cfg config.ImportConfig) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	return &Importer{db: db, cfg: cfg}
}

// IsRunning reports whether an import is currently in progress.
func (i *Importer) IsRunning() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.running
}

// LastStats returns a copy of the most recent run's counters, or nil
// if no import has run yet.
func (i *Importer) LastStats() *Stats {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.stats == nil {
		return nil
	}
	stats := *i.stats
	return &stats
}

// Run imports a merged CSV. An empty path falls back to the configured
// one. Movies and their genres land before ratings so rating rows can
// attach to catalog entries. Only one run may be active at a time.
func (i *Importer) Run(ctx context.Context, path string) (*Stats, error) {
	if path == "" {
		path = i.cfg.CSVPath
	}
	if path == "" {
		return nil, ErrNoFileConfigured
	}

	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, ErrImportInProgress
	}
	i.running = true
	i.stats = &Stats{StartTime: time.Now()}
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.running = false
		i.stats.EndTime = time.Now()
		i.mu.Unlock()
	}()

	started := time.Now()
	stats, err := i.load(ctx, path)
	metrics.RecordImport(path, time.Since(started), int(stats.RowsProcessed), int(stats.RowsSkipped))

	i.mu.Lock()
	startTime := i.stats.StartTime
	*i.stats = stats
	i.stats.StartTime = startTime
	i.mu.Unlock()

	if err != nil {
		return i.LastStats(), err
	}

	logging.Info().
		Str("path", path).
		Int64("rows", stats.RowsProcessed).
		Int64("skipped", stats.RowsSkipped).
		Int("users", stats.Users).
		Int("movies", stats.Movies).
		Int("genres", stats.Genres).
		Dur("duration", time.Since(started)).
		Msg("Import completed")

	return i.LastStats(), nil
}

// load streams the CSV into the database in batches.
func (i *Importer) load(ctx context.Context, path string) (Stats, error) {
	var stats Stats

	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("path", path).Msg("Error closing import file")
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	seenUsers := make(map[int]struct{})
	seenMovies := make(map[int]struct{})
	seenGenres := make(map[string]struct{})

	var movieBatch []models.MovieImport
	var ratingBatch []models.Rating

	flush := func() error {
		if len(movieBatch) > 0 {
			if err := i.db.ImportMovies(ctx, movieBatch); err != nil {
				return fmt.Errorf("import movies: %w", err)
			}
			movieBatch = movieBatch[:0]
		}
		if len(ratingBatch) > 0 {
			if err := i.db.ImportRatings(ctx, ratingBatch); err != nil {
				return fmt.Errorf("import ratings: %w", err)
			}
			ratingBatch = ratingBatch[:0]
		}
		return nil
	}

	header := true
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}

		parsed, ok := parseRow(record)
		if !ok {
			stats.RowsSkipped++
			continue
		}
		stats.RowsProcessed++

		seenUsers[parsed.rating.UserID] = struct{}{}
		for _, g := range parsed.genres {
			seenGenres[g] = struct{}{}
		}

		// One MovieImport per distinct movie; repeated rows for the
		// same movie carry identical title and genres.
		if _, seen := seenMovies[parsed.rating.MovieID]; !seen {
			seenMovies[parsed.rating.MovieID] = struct{}{}
			movieBatch = append(movieBatch, models.MovieImport{
				ID:     parsed.rating.MovieID,
				Title:  parsed.title,
				Genres: parsed.genres,
			})
		}
		ratingBatch = append(ratingBatch, parsed.rating)

		if len(ratingBatch) >= i.cfg.BatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}

	stats.Users = len(seenUsers)
	stats.Movies = len(seenMovies)
	stats.Genres = len(seenGenres)
	stats.Ratings = int(stats.RowsProcessed)
	return stats, nil
}

// parseRow converts one "userId,movieId,rating,title,genres" data row.
// Rows with malformed IDs, out-of-scale ratings, or empty titles are
// skipped rather than aborting the file.
func parseRow(record []string) (row, bool) {
	if len(record) < 4 {
		return row{}, false
	}

	userID, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil || userID < 1 {
		return row{}, false
	}
	movieID, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil || movieID < 1 {
		return row{}, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil || !validRating(value) {
		return row{}, false
	}
	title := strings.TrimSpace(record[3])
	if title == "" {
		return row{}, false
	}

	parsed := row{
		rating: models.Rating{UserID: userID, MovieID: movieID, Value: value},
		title:  title,
	}
	if len(record) >= 5 {
		parsed.genres = parseGenres(record[4])
	}
	return parsed, true
}

// parseGenres splits a pipe separated genre list, dropping the
// "(no genres listed)" sentinel and empty entries.
func parseGenres(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" || field == noGenres {
		return nil
	}

	parts := strings.Split(field, "|")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == noGenres {
			continue
		}
		genres = append(genres, p)
	}
	if len(genres) == 0 {
		return nil
	}
	return genres
}

// validRating checks the explicit rating scale: 0.5 to 5.0 in half
// point steps.
func validRating(v float64) bool {
	if v < 0.5 || v > 5.0 {
		return false
	}
	scaled := v * 2
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
