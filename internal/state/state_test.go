package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "logs", "last_success_iso.txt"), zap.NewNop())
}

func TestReadLastSuccess_MissingFile(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.ReadLastSuccess()
	assert.False(t, ok)
}

func TestWriteAndReadLastSuccess(t *testing.T) {
	s := newTestStore(t)
	ts := time.Date(2024, 6, 15, 21, 0, 0, 0, time.UTC)

	require.NoError(t, s.WriteLastSuccess(ts))

	got, ok := s.ReadLastSuccess()
	require.True(t, ok)
	assert.True(t, ts.Equal(got))
}

func TestWriteLastSuccess_Overwrites(t *testing.T) {
	s := newTestStore(t)
	first := time.Date(2024, 6, 14, 21, 0, 0, 0, time.UTC)
	second := time.Date(2024, 6, 15, 21, 0, 0, 0, time.UTC)

	require.NoError(t, s.WriteLastSuccess(first))
	require.NoError(t, s.WriteLastSuccess(second))

	got, ok := s.ReadLastSuccess()
	require.True(t, ok)
	assert.True(t, second.Equal(got))
}

func TestWriteLastSuccess_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "last_success_iso.txt"), zap.NewNop())

	require.NoError(t, s.WriteLastSuccess(time.Now()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "last_success_iso.txt", entries[0].Name())
}

func TestReadLastSuccess_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "last_success_iso.txt")
	require.NoError(t, os.WriteFile(path, []byte("not-a-timestamp"), 0o644))

	s := NewStore(path, zap.NewNop())
	_, ok := s.ReadLastSuccess()
	assert.False(t, ok)
}

func TestNeedCatchup(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	// 从未成功
	assert.True(t, NeedCatchup(time.Time{}, false, now))
	// 上次成功在前天，需要补跑
	assert.True(t, NeedCatchup(now.AddDate(0, 0, -2), true, now))
	// 上次成功在昨天，不需要
	assert.False(t, NeedCatchup(now.AddDate(0, 0, -1), true, now))
	// 上次成功在今天，不需要
	assert.False(t, NeedCatchup(now, true, now))
}
