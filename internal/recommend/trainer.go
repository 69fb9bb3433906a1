// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"
)

// Train builds a complete TrainedModel from a dataset snapshot. It is
// pure with respect to the dataset: the caller owns serialization of
// concurrent retrains.
//
// Similarity is Pearson correlation over co-rated users, computed once
// per unordered pair and stored in both directions. Pairs with fewer
// than MinCommonRaters co-raters, or with zero rating variance on
// either side, get no entry at all: absence is "undefined", which is
// distinct from a genuine zero correlation.
func Train(ctx context.Context, ds *Dataset, cfg Config) (*TrainedModel, error) {
	if ds == nil || len(ds.Matrix) == 0 {
		return nil, ErrInsufficientData
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Transpose to item vectors: movieID -> userID -> rating.
	itemVectors := make(map[int]map[int]float64, len(ds.Movies))
	var ratingSum float64
	var ratingCount int
	for userID, row := range ds.Matrix {
		for movieID, rating := range row {
			vec, ok := itemVectors[movieID]
			if !ok {
				vec = make(map[int]float64)
				itemVectors[movieID] = vec
			}
			vec[userID] = rating
			ratingSum += rating
			ratingCount++
		}
	}
	if ratingCount == 0 {
		return nil, ErrInsufficientData
	}

	itemMeans := make(map[int]float64, len(itemVectors))
	for movieID, vec := range itemVectors {
		var sum float64
		for _, r := range vec {
			sum += r
		}
		itemMeans[movieID] = sum / float64(len(vec))
	}

	itemIDs := make([]int, 0, len(itemVectors))
	for id := range itemVectors {
		itemIDs = append(itemIDs, id)
	}
	sort.Ints(itemIDs)

	similarity := make(map[int]map[int]float64, len(itemIDs))

	workers := cfg.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(itemIDs) {
		workers = len(itemIDs)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	chunkSize := (len(itemIDs) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			// Each worker owns rows [lo, hi) and computes each
			// unordered pair exactly once against later items.
			local := make(map[int]map[int]float64)
			for idx := lo; idx < hi; idx++ {
				if ctx.Err() != nil {
					return
				}
				a := itemIDs[idx]
				vecA := itemVectors[a]
				for jdx := idx + 1; jdx < len(itemIDs); jdx++ {
					b := itemIDs[jdx]
					sim, ok := pearsonSim(vecA, itemVectors[b], cfg.MinCommonRaters)
					if !ok {
						continue
					}
					if local[a] == nil {
						local[a] = make(map[int]float64)
					}
					if local[b] == nil {
						local[b] = make(map[int]float64)
					}
					local[a][b] = sim
					local[b][a] = sim
				}
			}

			mu.Lock()
			for id, row := range local {
				dst, ok := similarity[id]
				if !ok {
					similarity[id] = row
					continue
				}
				for other, sim := range row {
					dst[other] = sim
				}
			}
			mu.Unlock()
		}(start, end)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := &TrainedModel{
		Matrix:      ds.Matrix,
		Similarity:  similarity,
		ItemMeans:   itemMeans,
		GlobalMean:  ratingSum / float64(ratingCount),
		Movies:      ds.Movies,
		TrainedAt:   time.Now().UTC(),
		UserCount:   len(ds.Matrix),
		MovieCount:  len(ds.Movies),
		RatingCount: ratingCount,
	}
	model.finalize()
	return model, nil
}

// pearsonSim computes the Pearson correlation between two item rating
// vectors restricted to users present in both. The second return is
// false when the correlation is undefined.
func pearsonSim(a, b map[int]float64, minCommon int) (float64, bool) {
	// Iterate the smaller vector when finding co-raters.
	if len(b) < len(a) {
		a, b = b, a
	}

	common := make([]int, 0, len(a))
	for user := range a {
		if _, ok := b[user]; ok {
			common = append(common, user)
		}
	}
	if len(common) < minCommon {
		return 0, false
	}

	var sumA, sumB float64
	for _, user := range common {
		sumA += a[user]
		sumB += b[user]
	}
	n := float64(len(common))
	meanA := sumA / n
	meanB := sumB / n

	var num, denA, denB float64
	for _, user := range common {
		diffA := a[user] - meanA
		diffB := b[user] - meanB
		num += diffA * diffB
		denA += diffA * diffA
		denB += diffB * diffB
	}
	if denA == 0 || denB == 0 {
		return 0, false
	}

	return num / (math.Sqrt(denA) * math.Sqrt(denB)), true
}
