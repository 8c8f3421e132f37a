package cooldown

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) (*Guard, *time.Time) {
	t.Helper()
	g, err := New(filepath.Join(t.TempDir(), "cooldown.json"), 10*time.Minute)
	require.NoError(t, err)

	now := time.Date(2026, 8, 8, 14, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestCheck_NoRecordMeansNoWait(t *testing.T) {
	g, _ := newTestGuard(t)
	assert.Equal(t, 0, g.Check("07", 12))
}

func TestRecordThenCheck_FullWindow(t *testing.T) {
	g, _ := newTestGuard(t)

	require.NoError(t, g.Record("07", 12))
	minutes := g.Check("07", 12)
	assert.Greater(t, minutes, 0)
	assert.LessOrEqual(t, minutes, 10)
	assert.Equal(t, 10, minutes)
}

func TestCheck_IsIdempotent(t *testing.T) {
	g, _ := newTestGuard(t)
	require.NoError(t, g.Record("07", 12))

	first := g.Check("07", 12)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.Check("07", 12))
	}
}

func TestCheck_PartialMinutesRoundUp(t *testing.T) {
	g, now := newTestGuard(t)
	require.NoError(t, g.Record("07", 12))

	// 9m30s remaining reads as 10 minutes.
	*now = now.Add(30 * time.Second)
	assert.Equal(t, 10, g.Check("07", 12))

	// One second inside the window still reads as 1 minute.
	*now = now.Add(9*time.Minute + 29*time.Second)
	assert.Equal(t, 1, g.Check("07", 12))
}

func TestCheck_ExpiredWindowIsZeroNotOne(t *testing.T) {
	g, now := newTestGuard(t)
	require.NoError(t, g.Record("07", 12))

	*now = now.Add(10 * time.Minute)
	assert.Equal(t, 0, g.Check("07", 12))

	*now = now.Add(time.Second)
	assert.Equal(t, 0, g.Check("07", 12))
}

func TestRecord_OverwritesPriorTimestamp(t *testing.T) {
	g, now := newTestGuard(t)
	require.NoError(t, g.Record("07", 12))

	*now = now.Add(9 * time.Minute)
	require.NoError(t, g.Record("07", 12))

	// Window restarts from the second download.
	assert.Equal(t, 10, g.Check("07", 12))
}

func TestKeysAreScopedPerDayAndNumber(t *testing.T) {
	g, _ := newTestGuard(t)
	require.NoError(t, g.Record("07", 12))

	assert.Equal(t, 0, g.Check("08", 12))
	assert.Equal(t, 0, g.Check("07", 13))
}

func TestStateSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cooldown.json")
	now := time.Date(2026, 8, 8, 14, 0, 0, 0, time.UTC)

	g1, err := New(path, 10*time.Minute)
	require.NoError(t, err)
	g1.now = func() time.Time { return now }
	require.NoError(t, g1.Record("07", 12))

	g2, err := New(path, 10*time.Minute)
	require.NoError(t, err)
	g2.now = func() time.Time { return now.Add(4 * time.Minute) }

	assert.Equal(t, 6, g2.Check("07", 12))
}

func TestNew_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cooldown.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path, 10*time.Minute)
	require.Error(t, err)
}
