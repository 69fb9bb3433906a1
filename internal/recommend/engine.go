// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FeedProvider supplies the denormalized rating feed used for training.
// The storage layer implements it.
type FeedProvider interface {
	FetchRatingFeed(ctx context.Context) ([]RatingRow, error)
}

// Engine owns the model lifecycle: restore at startup, serve reads,
// retrain on demand or on a timer. Reads load the current model from
// an atomic pointer and never block on training; retrains are
// serialized and publish a complete replacement model in one swap, so
// a failed retrain leaves the previous model serving.
type Engine struct {
	cfg    Config
	feed   FeedProvider
	store  ModelStore
	logger zerolog.Logger

	recommender *Recommender
	predictor   *Predictor

	model atomic.Pointer[TrainedModel]

	// trainMu serializes retrains and guards version.
	trainMu sync.Mutex
	version int

	statusMu     sync.RWMutex
	state        EngineState
	lastErr      string
	lastDuration time.Duration
}

// NewEngine validates the configuration and wires the collaborators.
func NewEngine(cfg Config, feed FeedProvider, store ModelStore, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if feed == nil {
		return nil, fmt.Errorf("feed provider is required")
	}
	if store == nil {
		return nil, fmt.Errorf("model store is required")
	}

	return &Engine{
		cfg:         cfg,
		feed:        feed,
		store:       store,
		logger:      logger.With().Str("component", "recommend_engine").Logger(),
		recommender: NewRecommender(cfg, logger),
		predictor:   NewPredictor(cfg),
		state:       StateUninitialized,
	}, nil
}

// Load brings the engine to a ready state at startup: restore the
// persisted model if one exists, otherwise train synchronously from
// the rating feed. A corrupt or unreadable artifact degrades to a
// fresh train rather than failing startup.
func (e *Engine) Load(ctx context.Context) error {
	e.setState(StateLoading, "")

	model, err := e.store.Restore()
	if err == nil {
		e.trainMu.Lock()
		e.version = model.Version
		e.model.Store(model)
		e.trainMu.Unlock()
		e.setState(StateReady, "")
		e.logger.Info().
			Int("model_version", model.Version).
			Time("trained_at", model.TrainedAt).
			Int("users", model.UserCount).
			Int("movies", model.MovieCount).
			Msg("restored persisted model")
		return nil
	}

	if errors.Is(err, ErrModelNotFound) {
		e.logger.Info().Msg("no persisted model, training from rating feed")
	} else {
		e.logger.Warn().Err(err).Msg("could not restore persisted model, training from rating feed")
	}
	return e.Retrain(ctx)
}

// Retrain rebuilds the model from a fresh feed snapshot and publishes
// it. Returns ErrTrainingInProgress if another retrain holds the lock.
// On failure the previously published model, if any, keeps serving.
func (e *Engine) Retrain(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	e.setState(StateTraining, "")
	start := time.Now()

	model, err := e.train(ctx)
	duration := time.Since(start)

	e.statusMu.Lock()
	e.lastDuration = duration
	e.statusMu.Unlock()

	if err != nil {
		if e.model.Load() != nil {
			e.setState(StateReady, err.Error())
		} else {
			e.setState(StateUninitialized, err.Error())
		}
		e.logger.Error().Err(err).Dur("duration", duration).Msg("training failed")
		return err
	}

	e.version = model.Version
	e.model.Store(model)
	e.setState(StateReady, "")
	e.logger.Info().
		Int("model_version", model.Version).
		Int("users", model.UserCount).
		Int("movies", model.MovieCount).
		Int("ratings", model.RatingCount).
		Dur("duration", duration).
		Msg("model trained and published")
	return nil
}

// train fetches, builds, trains and persists. Caller holds trainMu.
func (e *Engine) train(ctx context.Context) (*TrainedModel, error) {
	rows, err := e.feed.FetchRatingFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	ds, err := BuildDataset(rows)
	if err != nil {
		return nil, err
	}

	model, err := Train(ctx, ds, e.cfg)
	if err != nil {
		return nil, err
	}
	model.Version = e.version + 1

	// A persist failure degrades durability, not serving: the fresh
	// model is still published and the next retrain tries again.
	if err := e.store.Persist(model); err != nil {
		e.logger.Error().Err(err).Msg("could not persist trained model")
	}

	return model, nil
}

// Current returns the published model or ErrModelNotReady.
func (e *Engine) Current() (*TrainedModel, error) {
	model := e.model.Load()
	if model == nil {
		return nil, ErrModelNotReady
	}
	return model, nil
}

// Recommend ranks unrated movies for the user against the current model.
func (e *Engine) Recommend(userID, topN int) ([]Recommendation, error) {
	model, err := e.Current()
	if err != nil {
		return nil, err
	}
	return e.recommender.Recommend(model, userID, topN)
}

// Predict estimates a single rating against the current model.
func (e *Engine) Predict(userID, movieID int) (Prediction, error) {
	model, err := e.Current()
	if err != nil {
		return Prediction{}, err
	}
	return e.predictor.Predict(model, userID, movieID)
}

// Status reports the lifecycle state and current model dimensions.
func (e *Engine) Status() TrainingStatus {
	e.statusMu.RLock()
	status := TrainingStatus{
		State:     e.state,
		LastError: e.lastErr,
	}
	if e.lastDuration > 0 {
		status.LastDuration = e.lastDuration.String()
	}
	e.statusMu.RUnlock()

	if model := e.model.Load(); model != nil {
		status.ModelVersion = model.Version
		status.TrainedAt = model.TrainedAt
		status.UserCount = model.UserCount
		status.MovieCount = model.MovieCount
		status.RatingCount = model.RatingCount
	}
	return status
}

// StartPeriodicRetrain launches background retraining on the
// configured interval. No-op when the interval is zero. Stops when
// ctx is cancelled.
func (e *Engine) StartPeriodicRetrain(ctx context.Context) {
	if e.cfg.RetrainInterval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(e.cfg.RetrainInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := e.Retrain(ctx); err != nil {
					if errors.Is(err, ErrTrainingInProgress) {
						e.logger.Debug().Msg("skipping scheduled retrain, one already running")
						continue
					}
					e.logger.Error().Err(err).Msg("scheduled retrain failed")
				}
			}
		}
	}()
}

func (e *Engine) setState(state EngineState, lastErr string) {
	e.statusMu.Lock()
	e.state = state
	e.lastErr = lastErr
	e.statusMu.Unlock()
}
