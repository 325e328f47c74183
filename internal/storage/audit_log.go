package storage

import (
	"os"
	"path/filepath"
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"rosterd/internal/structures"
	"sync"
)

// AuditLog appends one timestamped line per moderation event to a plain
// text file and echoes it to the operator log. A failed append must never
// abort the caller's primary operation, so Append has no error return.
type AuditLog struct {
	path   string
	mu     sync.Mutex
	logger providers.Logger
}

func NewAuditLog(conf *structures.Config, logger providers.Logger) *AuditLog {
	return &AuditLog{
		path:   conf.Storage.AuditLogPath,
		logger: logger,
	}
}

// EnsureExists creates an empty log file when absent. Called at startup.
func (a *AuditLog) EnsureExists() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return err
	}
	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

// Append writes "[DD.MM.YYYY HH:MM] <message>" to the log file.
func (a *AuditLog) Append(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	line := "[" + models.Now() + "] " + message + "\n"

	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		a.logger.Warnf(providers.TypeAudit, "Audit log open failed: %s", err)
	} else {
		if _, err = file.WriteString(line); err != nil {
			a.logger.Warnf(providers.TypeAudit, "Audit log write failed: %s", err)
		}
		_ = file.Close()
	}

	a.logger.Infof(providers.TypeAudit, "%s", message)
}
