package sweep

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/decision/strategy"
	"github.com/haskel/gemmpick/internal/loss"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMinimize(t *testing.T) {
	best, score, err := Minimize([]int{5, 1, 3}, func(x int) (float64, error) {
		return math.Abs(float64(x - 1)), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, best)
	assert.Equal(t, 0.0, score)
}

func TestMinimize_Singleton(t *testing.T) {
	type cand struct{ S int }

	best, score, err := Minimize([]cand{{S: 0}}, func(c cand) (float64, error) {
		return float64(c.S), nil
	})
	require.NoError(t, err)
	assert.Equal(t, cand{S: 0}, best)
	assert.Equal(t, 0.0, score)
}

func TestMinimize_ZeroScoreIsKept(t *testing.T) {
	// A falsy-zero check would let the later candidate replace the true minimum.
	best, score, err := Minimize([]string{"a", "b", "c"}, func(s string) (float64, error) {
		return map[string]float64{"a": 0, "b": 0.5, "c": 0.1}[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a", best)
	assert.Equal(t, 0.0, score)
}

func TestMinimize_FirstTieWins(t *testing.T) {
	best, _, err := Minimize([]int{4, 2, 7, 9}, func(x int) (float64, error) {
		return float64(x % 2), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, best)
}

func TestMinimize_Empty(t *testing.T) {
	_, _, err := Minimize([]int{}, func(int) (float64, error) { return 0, nil })
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestMinimize_ScoreError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := Minimize([]int{1, 2}, func(x int) (float64, error) {
		if x == 2 {
			return 0, boom
		}
		return 1, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestMinimize_NaN(t *testing.T) {
	_, _, err := Minimize([]int{1}, func(int) (float64, error) { return math.NaN(), nil })
	assert.Error(t, err)
}

func TestMinimizeParallel_MatchesSequential(t *testing.T) {
	candidates := make([]int, 500)
	for i := range candidates {
		candidates[i] = i
	}
	score := func(x int) (float64, error) {
		// Several exact ties at 0 so ordering matters.
		return float64((x - 250) * (x - 250) % 97), nil
	}

	seqBest, seqScore, err := Minimize(candidates, score)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 4, 32} {
		best, got, scores, err := MinimizeParallel(context.Background(), candidates, workers, score)
		require.NoError(t, err)
		assert.Equal(t, seqBest, best, "workers=%d", workers)
		assert.Equal(t, seqScore, got, "workers=%d", workers)
		assert.Len(t, scores, len(candidates))
	}
}

func TestMinimizeParallel_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := MinimizeParallel(ctx, []int{1, 2, 3}, 2, func(x int) (float64, error) {
		return float64(x), nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRange_Values(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, Range{Start: 0, End: 4}.Values())
	assert.Equal(t, []int{1, 3, 5}, Range{Start: 1, End: 6, Step: 2}.Values())
	assert.Empty(t, Range{Start: 3, End: 3}.Values())

	assert.NoError(t, Range{Start: 1, End: 2048, Step: 1}.Validate())
	assert.Error(t, Range{Start: 5, End: 5}.Validate())
	assert.Error(t, Range{Start: 0, End: 5, Step: -1}.Validate())
}

// records with a clean boundary: ratio > 10 means ck is faster.
func boundaryRecords() []dataset.Record {
	var records []dataset.Record
	for m := 1; m <= 20; m++ {
		delta := 0.1
		if m > 10 {
			delta = -0.1
		}
		// ratio = 62/62 * m * 1 / 1 = m
		records = append(records, dataset.Record{G: 62, M: m, N: 1, K: 1, Delta1: delta})
	}
	return records
}

func TestSweeper_Thresholds(t *testing.T) {
	s := New(4, quietLogger())

	out, err := s.Thresholds(context.Background(), boundaryRecords(), Range{Start: 0, End: 30, Step: 1}, 62)
	require.NoError(t, err)

	assert.Equal(t, 10.0, out.Best.Threshold)
	assert.Equal(t, 62.0, out.Best.BatchFactor)
	assert.Equal(t, 0.0, out.Best.MeanLoss)
	assert.Equal(t, 30, out.Evaluated)
	require.Len(t, out.Points, 30)
	assert.Equal(t, 0.0, out.Points[0].Threshold)
	assert.Equal(t, 29.0, out.Points[29].Threshold)
}

func TestSweeper_Grid(t *testing.T) {
	s := New(2, quietLogger())
	records := boundaryRecords()

	out, err := s.Grid(context.Background(), records, Range{Start: 1, End: 12}, Range{Start: 1, End: 5})
	require.NoError(t, err)
	assert.Equal(t, 44, out.Evaluated)
	assert.Nil(t, out.Points)

	type pair struct{ th, bf int }
	var pairs []pair
	for _, th := range (Range{Start: 1, End: 12}).Values() {
		for _, bf := range (Range{Start: 1, End: 5}).Values() {
			pairs = append(pairs, pair{th, bf})
		}
	}
	want, wantScore, err := Minimize(pairs, func(p pair) (float64, error) {
		return loss.MeanLoss(strategy.NewLargeKRatio(float64(p.th), float64(p.bf)), records)
	})
	require.NoError(t, err)

	assert.Equal(t, float64(want.th), out.Best.Threshold)
	assert.Equal(t, float64(want.bf), out.Best.BatchFactor)
	assert.InDelta(t, wantScore, out.Best.MeanLoss, 1e-12)
}

func TestSweeper_NoRecords(t *testing.T) {
	_, err := New(1, quietLogger()).Thresholds(context.Background(), nil, Range{Start: 0, End: 3}, 62)
	assert.ErrorIs(t, err, loss.ErrEmptyInput)
}

func TestSweeper_EmptyRange(t *testing.T) {
	_, err := New(1, quietLogger()).Thresholds(context.Background(), boundaryRecords(), Range{}, 62)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
