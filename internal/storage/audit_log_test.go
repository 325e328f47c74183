package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"rosterd/internal/providers"
	"rosterd/internal/structures"
	"rosterd/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditLog(t *testing.T) (*AuditLog, *testutil.MockLogger) {
	t.Helper()
	logger := &testutil.MockLogger{}
	conf := &structures.Config{
		Storage: structures.StorageConfig{
			AuditLogPath: filepath.Join(t.TempDir(), "audit.log"),
		},
	}
	return NewAuditLog(conf, logger), logger
}

func TestAuditLog_EnsureExists(t *testing.T) {
	a, _ := newTestAuditLog(t)
	require.NoError(t, a.EnsureExists())

	info, err := os.Stat(a.path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestAuditLog_AppendFormat(t *testing.T) {
	a, _ := newTestAuditLog(t)

	a.Append("admin appointed Jane_Doe as Leader in LSPD - Chief")

	data, err := os.ReadFile(a.path)
	require.NoError(t, err)

	line := strings.TrimRight(string(data), "\n")
	pattern := regexp.MustCompile(`^\[\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}\] admin appointed Jane_Doe as Leader in LSPD - Chief$`)
	assert.True(t, pattern.MatchString(line), "unexpected line: %q", line)
}

func TestAuditLog_AppendAccumulatesLines(t *testing.T) {
	a, _ := newTestAuditLog(t)

	a.Append("first event")
	a.Append("second event")

	data, err := os.ReadFile(a.path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first event")
	assert.Contains(t, lines[1], "second event")
}

func TestAuditLog_FailedWriteDoesNotPanic(t *testing.T) {
	logger := &testutil.MockLogger{}
	conf := &structures.Config{
		Storage: structures.StorageConfig{
			AuditLogPath: filepath.Join(t.TempDir(), "missing", "audit.log"),
		},
	}
	a := NewAuditLog(conf, logger)

	a.Append("event into the void")

	// The failure is logged, and the message is still echoed
	var warned, echoed bool
	for _, entry := range logger.Logs {
		if entry.Level == "warn" && entry.Type == providers.TypeAudit {
			warned = true
		}
		if entry.Level == "info" && entry.Type == providers.TypeAudit {
			echoed = true
		}
	}
	assert.True(t, warned)
	assert.True(t, echoed)
}
