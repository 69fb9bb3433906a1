// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// ModelStore persists trained models across restarts.
type ModelStore interface {
	Persist(model *TrainedModel) error
	Restore() (*TrainedModel, error)
}

// FileStore keeps the model as a single JSON artifact on disk. Writes
// go to a temp file in the same directory followed by a rename, so a
// crash mid-write leaves the previous artifact intact.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path. Parent directories are
// created on first persist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Persist atomically replaces the artifact with the given model.
func (s *FileStore) Persist(model *TrainedModel) error {
	if model == nil {
		return fmt.Errorf("cannot persist nil model")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}

	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp model file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing model file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing model file: %w", err)
	}
	return nil
}

// Restore loads the persisted model. Returns ErrModelNotFound when no
// artifact exists and ErrModelCorrupt when one exists but cannot be
// decoded; both cases the caller handles by retraining.
func (s *FileStore) Restore() (*TrainedModel, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	var model TrainedModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCorrupt, err)
	}
	if len(model.Matrix) == 0 || len(model.Movies) == 0 {
		return nil, fmt.Errorf("%w: empty rating matrix or movie index", ErrModelCorrupt)
	}

	model.finalize()
	return &model, nil
}
