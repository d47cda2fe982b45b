package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoborder/borderlens/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)
	assert.Equal(t, 5, run.PairCount)

	require.NoError(t, s.FinishRun(ctx, run.ID, model.RunStatusCompleted, 3))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusCompleted, got.Status)
	assert.Equal(t, 3, got.RowCount)
	require.NotNil(t, got.FinishedAt)
}

func TestFinishRunNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.FinishRun(context.Background(), "missing", model.RunStatusCompleted, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.LatestRun(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateRun(ctx, 1)
	require.NoError(t, err)
	second, err := s.CreateRun(ctx, 2)
	require.NoError(t, err)

	latest, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 2, latest.PairCount)
}

func TestInsertAndReadRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, 2)
	require.NoError(t, err)

	rows := []model.IntegratedRow{
		{
			BorderPair: "China ↔ India", Country1: "China", Country2: "India", BorderLengthKM: 3488,
			Ratios: model.RatioSet{"gdp_ratio": 2, "gdp_gap": 50, "gdp_year": 2019},
		},
		{
			BorderPair: "Germany ↔ Poland", Country1: "Germany", Country2: "Poland", BorderLengthKM: 467,
			Ratios: model.RatioSet{"trade_ratio": 0.9},
		},
	}
	require.NoError(t, s.InsertRows(ctx, run.ID, rows))

	got, err := s.RowsForRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, rows[0].BorderPair, got[0].BorderPair)
	assert.InDelta(t, 3488.0, got[0].BorderLengthKM, 1e-9)
	assert.InDelta(t, 2.0, got[0].Ratios["gdp_ratio"], 1e-9)
	assert.InDelta(t, 0.9, got[1].Ratios["trade_ratio"], 1e-9)
}

func TestRowsForRunEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.RowsForRun(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
