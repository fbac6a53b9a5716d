package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facediag/internal/model"
	"facediag/internal/repository"
)

var (
	_ repository.RunRepository       = (*RunRepository)(nil)
	_ repository.DetectionRepository = (*DetectionRepository)(nil)
	_ repository.RangeStatRepository = (*RangeStatRepository)(nil)
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRun(image string, startedAt time.Time) *model.Run {
	return &model.Run{
		StartedAt:       startedAt,
		ImagePath:       image,
		ModelPath:       "models/opencv_face_detector_uint8.pb",
		ImageWidth:      640,
		ImageHeight:     480,
		Anchors:         8732,
		TotalDetections: 5,
		LeftCount:       2,
		RightCount:      3,
		OutputPath:      "out.jpg",
	}
}

func TestNew_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "facediag.db")
	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRunRepository_InsertAndGet(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := runs.Insert(sampleRun("cache/a.jpg", started))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := runs.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cache/a.jpg", got.ImagePath)
	assert.Equal(t, 8732, got.Anchors)
	assert.True(t, started.Equal(got.StartedAt), "started_at %v", got.StartedAt)

	missing, err := runs.GetByID(id + 100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRunRepository_FilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, image := range []string{"a.jpg", "b.jpg", "a.jpg", "a.jpg"} {
		_, err := runs.Insert(sampleRun(image, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	all, err := runs.GetAll(nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, all[0].StartedAt.After(all[1].StartedAt))

	onlyA, err := runs.GetAll(&model.RunFilter{ImagePath: "a.jpg", Limit: 2})
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	for _, r := range onlyA {
		assert.Equal(t, "a.jpg", r.ImagePath)
	}

	count, err := runs.GetTotalCount(&model.RunFilter{ImagePath: "a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	recent, err := runs.GetTotalCount(&model.RunFilter{Since: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 2, recent)
}

func TestRunRepository_Stats(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)

	now := time.Now().UTC()
	for _, image := range []string{"a.jpg", "a.jpg", "b.jpg"} {
		_, err := runs.Insert(sampleRun(image, now))
		require.NoError(t, err)
	}

	stats, err := runs.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRuns)
	assert.Equal(t, 15, stats.TotalDetections)
	assert.Equal(t, 6, stats.LeftDetections)
	assert.Equal(t, 9, stats.RightDetections)
	assert.Equal(t, map[string]int{"a.jpg": 2, "b.jpg": 1}, stats.PerImage)
}

func TestRunRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)
	detections := NewDetectionRepository(db)
	ranges := NewRangeStatRepository(db)

	id, err := runs.Insert(sampleRun("a.jpg", time.Now()))
	require.NoError(t, err)

	require.NoError(t, detections.InsertBatch([]model.Detection{
		{RunID: id, Rank: 1, AnchorIndex: 40, Confidence: 0.9, X1: 1, Y1: 2, X2: 30, Y2: 40, Side: "LEFT"},
	}))
	require.NoError(t, ranges.InsertBatch([]model.RangeStat{
		{RunID: id, Name: "first", StartIndex: 0, EndIndex: 1000, HighCount: 3, MaxConfidence: 0.7},
	}))

	require.NoError(t, runs.Delete(id))

	dets, err := detections.GetByRunID(id)
	require.NoError(t, err)
	assert.Empty(t, dets)

	stats, err := ranges.GetByRunID(id)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestDetectionRepository_RankOrder(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)
	detections := NewDetectionRepository(db)

	id, err := runs.Insert(sampleRun("a.jpg", time.Now()))
	require.NoError(t, err)

	require.NoError(t, detections.InsertBatch([]model.Detection{
		{RunID: id, Rank: 2, AnchorIndex: 7, Confidence: 0.6, Side: "RIGHT"},
		{RunID: id, Rank: 1, AnchorIndex: 3, Confidence: 0.95, Side: "LEFT"},
	}))

	got, err := detections.GetByRunID(id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, 3, got[0].AnchorIndex)
	assert.Equal(t, "RIGHT", got[1].Side)
}

func TestRangeStatRepository_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)
	ranges := NewRangeStatRepository(db)

	id, err := runs.Insert(sampleRun("a.jpg", time.Now()))
	require.NoError(t, err)

	require.NoError(t, ranges.InsertBatch([]model.RangeStat{
		{RunID: id, Name: "first", StartIndex: 0, EndIndex: 1000, HighCount: 3, MaxConfidence: 0.7},
		{RunID: id, Name: "last", StartIndex: 7732, EndIndex: 8732, HighCount: 0, MaxConfidence: 0.05},
	}))

	got, err := ranges.GetByRunID(id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, 7732, got[1].StartIndex)
	assert.InDelta(t, 0.05, got[1].MaxConfidence, 1e-9)
}
