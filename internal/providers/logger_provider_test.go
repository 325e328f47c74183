package providers

import (
	"os"
	"path/filepath"
	"rosterd/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	// Should be able to log without error
	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeApi, "api message")
	logger.Warnf(TypeSweep, "sweep message")
	logger.Errorf(TypeAudit, "audit message")

	for _, name := range []string{"app.log", "api.log", "sweep.log", "audit.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "log file %s", name)
	}
}

func TestLogProvider_WritesToTypedFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "debug",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Debugf(TypeApp, "app debug line")
	logger.Infof(TypeApi, "api info line")
	logger.Warnf(TypeSweep, "sweep warn line")
	logger.Errorf(TypeAudit, "audit error line")

	for file, want := range map[string]string{
		"app.log":   "app debug line",
		"api.log":   "api info line",
		"sweep.log": "sweep warn line",
		"audit.log": "audit error line",
	} {
		data, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err)
		assert.Contains(t, string(data), want, "file %s", file)
	}
}

func TestLogProvider_UnknownTypeFallsBackToApp(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeEnum(99), "stray line")

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "stray line")
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "verbose",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	// A file where a directory component should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   filepath.Join(blocker, "logs"),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_DebugOverridesLevel(t *testing.T) {
	conf := &structures.Config{
		Debug: true,
		Logger: structures.LoggerConfig{
			Level: "error",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Debugf(TypeApp, "visible in debug mode")
}
