package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// ErrEmptyInput is returned when there are no candidates to minimize over.
var ErrEmptyInput = errors.New("no candidates")

// Minimize returns the candidate with the lowest score and that score.
// Ties go to the first candidate in order. Scoring errors abort the search.
func Minimize[T any](candidates []T, score func(T) (float64, error)) (T, float64, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, 0, fmt.Errorf("minimize: %w", ErrEmptyInput)
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		y, err := score(c)
		if err != nil {
			return zero, 0, fmt.Errorf("minimize: candidate %d: %w", i, err)
		}
		scores[i] = y
	}

	idx, err := argmin(scores)
	if err != nil {
		return zero, 0, err
	}
	return candidates[idx], scores[idx], nil
}

// MinimizeParallel is Minimize with scoring spread over up to workers
// goroutines. The chosen candidate is the same as Minimize would choose.
func MinimizeParallel[T any](ctx context.Context, candidates []T, workers int, score func(T) (float64, error)) (T, float64, []float64, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, 0, nil, fmt.Errorf("minimize: %w", ErrEmptyInput)
	}
	if workers < 1 {
		workers = 1
	}

	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y, err := score(c)
			if err != nil {
				return fmt.Errorf("minimize: candidate %d: %w", i, err)
			}
			scores[i] = y
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return zero, 0, nil, err
	}
	if err := ctx.Err(); err != nil {
		return zero, 0, nil, err
	}

	idx, err := argmin(scores)
	if err != nil {
		return zero, 0, nil, err
	}
	return candidates[idx], scores[idx], scores, nil
}

// argmin keeps an explicit "found" flag so a best score of zero is kept.
func argmin(scores []float64) (int, error) {
	best := 0
	found := false
	for i, y := range scores {
		if math.IsNaN(y) {
			return 0, fmt.Errorf("minimize: candidate %d: score is NaN", i)
		}
		if !found || y < scores[best] {
			best = i
			found = true
		}
	}
	return best, nil
}
