package storage

import (
	"os"
	"path/filepath"
	"rosterd/internal/models"
	"rosterd/internal/structures"
	"rosterd/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T, ttl time.Duration) *NewsArchive {
	t.Helper()
	conf := &structures.Config{
		Storage: structures.StorageConfig{
			ArchiveDir: t.TempDir(),
			ArchiveTTL: ttl,
		},
	}
	return NewNewsArchive(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})
}

func newsEntry(text string) *models.NewsEntry {
	return &models.NewsEntry{
		Text:    text,
		Date:    models.Now(),
		Author:  "admin",
		Channel: "general",
	}
}

func TestNewsArchive_ArchiveThenFlush(t *testing.T) {
	na := newTestArchive(t, 0)
	require.NoError(t, na.Restore())

	na.Archive([]*models.NewsEntry{newsEntry("old announcement")})
	assert.Equal(t, 1, na.Count())

	require.NoError(t, na.Flush())

	data, err := os.ReadFile(na.filePath())
	require.NoError(t, err)

	var af ArchiveFile
	require.NoError(t, json.Unmarshal(data, &af))
	require.Len(t, af.Entries, 1)
	assert.Equal(t, "old announcement", af.Entries[0].Entry.Text)
	assert.False(t, af.Entries[0].ArchivedAt.IsZero())
}

func TestNewsArchive_ArchiveEmptySliceIsNoop(t *testing.T) {
	na := newTestArchive(t, 0)
	require.NoError(t, na.Restore())

	na.Archive(nil)
	require.NoError(t, na.Flush())

	_, err := os.Stat(na.filePath())
	assert.True(t, os.IsNotExist(err))
}

func TestNewsArchive_FlushMergesWithExistingFile(t *testing.T) {
	na := newTestArchive(t, 0)
	require.NoError(t, na.Restore())

	na.Archive([]*models.NewsEntry{newsEntry("first")})
	require.NoError(t, na.Flush())

	na.Archive([]*models.NewsEntry{newsEntry("second")})
	require.NoError(t, na.Flush())

	assert.Equal(t, 2, na.Count())
}

func TestNewsArchive_RestoreLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{Storage: structures.StorageConfig{ArchiveDir: dir}}

	first := NewNewsArchive(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})
	require.NoError(t, first.Restore())
	first.Archive([]*models.NewsEntry{newsEntry("survives restart")})
	require.NoError(t, first.Flush())

	second := NewNewsArchive(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})
	require.NoError(t, second.Restore())
	assert.Equal(t, 1, second.Count())
}

func TestNewsArchive_CorruptFileStartsOver(t *testing.T) {
	na := newTestArchive(t, 0)
	require.NoError(t, os.MkdirAll(na.dir, 0755))
	require.NoError(t, os.WriteFile(na.filePath(), []byte("garbage"), 0644))

	na.compressor = &testutil.MockCompressor{
		DecompressFn: func([]byte) ([]byte, error) {
			return nil, assert.AnError
		},
	}
	require.NoError(t, na.Restore())
	assert.Equal(t, 0, na.Count())
}

func TestNewsArchive_FlushDropsExpiredEntries(t *testing.T) {
	na := newTestArchive(t, time.Hour)
	require.NoError(t, na.Restore())

	na.Archive([]*models.NewsEntry{newsEntry("about to expire")})
	require.NoError(t, na.Flush())

	// Age the stored entry past the TTL and flush again
	na.loaded.Entries[0].ArchivedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, na.Flush())

	assert.Equal(t, 0, na.Count())
	_, err := os.Stat(na.filePath())
	assert.True(t, os.IsNotExist(err))
}

func TestNewsArchive_FlushIsAtomic(t *testing.T) {
	na := newTestArchive(t, 0)
	require.NoError(t, na.Restore())

	na.Archive([]*models.NewsEntry{newsEntry("entry")})
	require.NoError(t, na.Flush())

	entries, err := filepath.Glob(filepath.Join(na.dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
