package services

import (
	"os"
	"rosterd/internal/storage"
	"rosterd/internal/testutil"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNewsFixture(t *testing.T) (NewsServiceInterface, *storage.DocumentStore, string) {
	t.Helper()
	conf := newServiceConfig(t)
	logger := &testutil.MockLogger{}
	store := storage.NewDocumentStore(conf, logger)
	audit := storage.NewAuditLog(conf, logger)
	return NewNewsService(conf, store, audit), store, conf.Storage.AuditLogPath
}

func TestNewsService_PublishAndRecent(t *testing.T) {
	service, _, _ := newNewsFixture(t)

	require.NoError(t, service.Publish("server opens tonight", "admin", "announcements", 42))
	require.NoError(t, service.Publish("maintenance at noon", "admin", "announcements", 42))

	entries := service.Recent(0)
	require.Len(t, entries, 2)
	assert.Equal(t, "maintenance at noon", entries[0].Text)
	assert.Equal(t, "server opens tonight", entries[1].Text)
	assert.Equal(t, "announcements", entries[0].Channel)
	assert.Equal(t, int64(42), entries[0].ChannelID)
}

func TestNewsService_RecentCapsAtConfiguredLimit(t *testing.T) {
	service, _, _ := newNewsFixture(t)

	for i := 0; i < 15; i++ {
		require.NoError(t, service.Publish("entry", "admin", "general", 1))
	}

	assert.Len(t, service.Recent(0), 10)
	assert.Len(t, service.Recent(100), 10)
	assert.Len(t, service.Recent(3), 3)
	assert.Equal(t, 15, service.Count())
}

func TestNewsService_PublishWritesAuditPreview(t *testing.T) {
	service, _, auditPath := newNewsFixture(t)

	long := strings.Repeat("a", 80)
	require.NoError(t, service.Publish(long, "admin", "general", 1))

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "News published by admin in #general: "+strings.Repeat("a", 60)+"...")
	assert.NotContains(t, string(data), strings.Repeat("a", 61))
}

func TestNewsService_PublishPreviewKeepsRuneBoundary(t *testing.T) {
	service, _, auditPath := newNewsFixture(t)

	long := strings.Repeat("ж", 80)
	require.NoError(t, service.Publish(long, "admin", "general", 1))

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(string(data)))
	assert.Contains(t, string(data), "News published by admin in #general: "+strings.Repeat("ж", 60)+"...")
	assert.NotContains(t, string(data), strings.Repeat("ж", 61))
}
