package storage

import (
	"os"
	"path/filepath"
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"rosterd/internal/storage/interfaces"
	"rosterd/internal/structures"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const archiveFileName = "news.archive.zst"

// ArchivedEntry is a single swept news entry in the archive file.
type ArchivedEntry struct {
	Entry      *models.NewsEntry `json:"entry"`
	ArchivedAt time.Time         `json:"archived_at"`
}

// ArchiveFile is the on-disk format of the news archive.
type ArchiveFile struct {
	Entries []*ArchivedEntry `json:"entries"`
}

// NewsArchive keeps swept news entries in a zstd-compressed file so a
// sweep never destroys information outright. Archive appends go through a
// pending buffer; Flush is the only method that performs disk writes and
// also trims entries older than the archive TTL.
type NewsArchive struct {
	mu         sync.Mutex
	dir        string
	ttl        time.Duration
	pending    []*ArchivedEntry
	loaded     *ArchiveFile
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewNewsArchive(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *NewsArchive {
	return &NewsArchive{
		dir:        conf.Storage.ArchiveDir,
		ttl:        conf.Storage.ArchiveTTL,
		compressor: compressor,
		logger:     logger,
	}
}

// Archive buffers swept entries for the next flush. No disk I/O.
func (na *NewsArchive) Archive(entries []*models.NewsEntry) {
	if len(entries) == 0 {
		return
	}

	na.mu.Lock()
	defer na.mu.Unlock()

	now := time.Now()
	for _, entry := range entries {
		na.pending = append(na.pending, &ArchivedEntry{Entry: entry, ArchivedAt: now})
	}
}

// Flush merges pending entries into the archive file, drops entries older
// than the TTL and writes the result atomically. An empty archive removes
// the file instead of writing a zero-entry one.
func (na *NewsArchive) Flush() error {
	na.mu.Lock()
	defer na.mu.Unlock()

	if len(na.pending) == 0 && na.loaded == nil {
		// Nothing buffered and nothing loaded: TTL trim still applies
		// when a file exists on disk.
		if _, err := os.Stat(na.filePath()); os.IsNotExist(err) {
			return nil
		}
	}

	af := na.getOrLoadLocked()
	af.Entries = append(af.Entries, na.pending...)

	if na.ttl > 0 {
		now := time.Now()
		kept := af.Entries[:0]
		for _, entry := range af.Entries {
			if now.Sub(entry.ArchivedAt) <= na.ttl {
				kept = append(kept, entry)
			}
		}
		af.Entries = kept
	}

	if len(af.Entries) == 0 {
		os.Remove(na.filePath())
		na.loaded = af
		na.pending = nil
		return nil
	}

	if err := na.writeLocked(af); err != nil {
		return err
	}
	na.loaded = af
	na.pending = nil
	return nil
}

// Restore loads the archive file into memory at startup. A missing file
// is not an error; a corrupt one starts the archive over.
func (na *NewsArchive) Restore() error {
	na.mu.Lock()
	defer na.mu.Unlock()

	if err := os.MkdirAll(na.dir, 0755); err != nil {
		return err
	}
	na.loaded = na.loadLocked()
	return nil
}

// Count reports archived entries, pending included.
func (na *NewsArchive) Count() int {
	na.mu.Lock()
	defer na.mu.Unlock()

	count := len(na.pending)
	if na.loaded != nil {
		count += len(na.loaded.Entries)
	}
	return count
}

// Close releases resources held by the compressor.
func (na *NewsArchive) Close() {
	na.compressor.Close()
}

func (na *NewsArchive) getOrLoadLocked() *ArchiveFile {
	if na.loaded != nil {
		return na.loaded
	}
	return na.loadLocked()
}

func (na *NewsArchive) loadLocked() *ArchiveFile {
	empty := &ArchiveFile{Entries: make([]*ArchivedEntry, 0)}

	data, err := os.ReadFile(na.filePath())
	if err != nil {
		if !os.IsNotExist(err) {
			na.logger.Errorf(providers.TypeSweep, "Failed to read news archive: %s", err)
		}
		return empty
	}

	decompressed, err := na.compressor.Decompress(data)
	if err != nil {
		na.logger.Errorf(providers.TypeSweep, "Failed to decompress news archive: %s", err)
		return empty
	}

	var af ArchiveFile
	if err := json.Unmarshal(decompressed, &af); err != nil {
		na.logger.Errorf(providers.TypeSweep, "Failed to parse news archive: %s", err)
		return empty
	}
	if af.Entries == nil {
		af.Entries = make([]*ArchivedEntry, 0)
	}
	return &af
}

func (na *NewsArchive) writeLocked(af *ArchiveFile) error {
	jsonData, err := json.Marshal(af)
	if err != nil {
		return err
	}

	compressed, err := na.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(na.dir, 0755); err != nil {
		return err
	}

	tmpFile := na.filePath() + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, na.filePath())
}

func (na *NewsArchive) filePath() string {
	return filepath.Join(na.dir, archiveFileName)
}
