package storage

import (
	"os"
	"path/filepath"
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"rosterd/internal/structures"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// DocumentStore owns the single JSON document on disk. Every mutation is a
// full load-mutate-save cycle under one mutex, so concurrent commands and
// the periodic sweep serialize instead of racing on lost updates.
//
// Read failures are not an error surface: a missing or corrupt file is
// silently reset to the default empty document.
type DocumentStore struct {
	path   string
	mu     sync.Mutex
	logger providers.Logger
}

func NewDocumentStore(conf *structures.Config, logger providers.Logger) *DocumentStore {
	return &DocumentStore{
		path:   conf.Storage.DocumentPath,
		logger: logger,
	}
}

// EnsureExists creates the parent directory and the default document when
// the file is absent. Called once at startup.
func (s *DocumentStore) EnsureExists() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return s.saveLocked(models.DefaultDocument())
	}
	return nil
}

// Load reads the whole document. On any read or parse failure it rewrites
// the default document and returns that default.
func (s *DocumentStore) Load() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *DocumentStore) loadLocked() *models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.recoverLocked(err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return s.recoverLocked(err)
	}
	doc.Normalize()
	return &doc
}

func (s *DocumentStore) recoverLocked(cause error) *models.Document {
	s.logger.Warnf(providers.TypeApp, "Document unreadable, resetting to default: %s", cause)
	doc := models.DefaultDocument()
	if err := s.saveLocked(doc); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to write default document: %s", err)
	}
	return doc
}

// Save serializes the full document, replacing the file via tmp + rename.
func (s *DocumentStore) Save(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(doc)
}

func (s *DocumentStore) saveLocked(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := s.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}

// mutate runs fn on a freshly loaded document and saves only when fn
// reports a change. The whole cycle holds the writer mutex.
func (s *DocumentStore) mutate(fn func(doc *models.Document) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadLocked()
	if !fn(doc) {
		return nil
	}
	return s.saveLocked(doc)
}

func (s *DocumentStore) GetPerson(category models.Category, id string) (*models.Person, bool) {
	doc := s.Load()
	person, ok := doc.Roster(category)[id]
	return person, ok
}

// SetPerson is an unconditional upsert; an existing person at that key is
// overwritten without merging.
func (s *DocumentStore) SetPerson(category models.Category, id string, person *models.Person) error {
	return s.mutate(func(doc *models.Document) bool {
		doc.Roster(category)[id] = person
		return true
	})
}

// RemovePerson reports whether a person existed. A second call on an
// absent id is a no-op and does not rewrite the file.
func (s *DocumentStore) RemovePerson(category models.Category, id string) (bool, error) {
	removed := false
	err := s.mutate(func(doc *models.Document) bool {
		if _, ok := doc.Roster(category)[id]; !ok {
			return false
		}
		delete(doc.Roster(category), id)
		removed = true
		return true
	})
	return removed, err
}

// AppointPerson enforces the category-exclusivity invariant at the
// registry level: a duplicate in the same category is rejected, and the id
// is evicted from the opposite category before the upsert. The whole check
// happens inside one write cycle.
func (s *DocumentStore) AppointPerson(category models.Category, id string, person *models.Person) (created bool, err error) {
	err = s.mutate(func(doc *models.Document) bool {
		if _, ok := doc.Roster(category)[id]; ok {
			return false
		}
		delete(doc.Roster(category.Opposite()), id)
		doc.Roster(category)[id] = person
		created = true
		return true
	})
	return created, err
}

// FindPerson looks the id up in both categories, retrying the
// space-to-underscore key variant, and returns the category and the actual
// stored key on success.
func (s *DocumentStore) FindPerson(id string) (models.Category, string, *models.Person, bool) {
	doc := s.Load()
	for _, key := range []string{id, strings.ReplaceAll(id, " ", "_")} {
		if person, ok := doc.Leaders[key]; ok {
			return models.CategoryLeaders, key, person, true
		}
		if person, ok := doc.Deputies[key]; ok {
			return models.CategoryDeputies, key, person, true
		}
	}
	return "", "", nil, false
}

// AddWarning appends a warning and returns the new live count. found is
// false when the person does not exist; count is then meaningless.
func (s *DocumentStore) AddWarning(category models.Category, id, reason, issuedBy string) (count int, found bool, err error) {
	err = s.mutate(func(doc *models.Document) bool {
		person, ok := doc.Roster(category)[id]
		if !ok {
			return false
		}
		person.Warnings = append(person.Warnings, models.Warning{
			Date:     models.Now(),
			Reason:   reason,
			IssuedBy: issuedBy,
		})
		count = len(person.Warnings)
		found = true
		return true
	})
	return count, found, err
}

// ClearWarnings resets the warning list to empty; no-op if absent.
func (s *DocumentStore) ClearWarnings(category models.Category, id string) error {
	return s.mutate(func(doc *models.Document) bool {
		person, ok := doc.Roster(category)[id]
		if !ok {
			return false
		}
		person.Warnings = []models.Warning{}
		return true
	})
}

// AddReprimand appends a reprimand numbered by its position in the
// sequence. Numbers grow monotonically and are never reused.
func (s *DocumentStore) AddReprimand(category models.Category, id, reason, issuedBy string) (number int, found bool, err error) {
	err = s.mutate(func(doc *models.Document) bool {
		person, ok := doc.Roster(category)[id]
		if !ok {
			return false
		}
		number = len(person.Reprimands) + 1
		person.Reprimands = append(person.Reprimands, models.Reprimand{
			Date:     models.Now(),
			Reason:   reason,
			IssuedBy: issuedBy,
			Number:   number,
		})
		found = true
		return true
	})
	return number, found, err
}

// AddNews inserts at the head, so iteration order is reverse-chronological
// by insertion regardless of clock timestamps.
func (s *DocumentStore) AddNews(text, author, channel string, channelID int64) error {
	return s.mutate(func(doc *models.Document) bool {
		entry := &models.NewsEntry{
			Text:      text,
			Date:      models.Now(),
			Author:    author,
			Channel:   channel,
			ChannelID: channelID,
		}
		doc.News = append([]*models.NewsEntry{entry}, doc.News...)
		return true
	})
}

// CleanupNews partitions entries by age and returns the removed ones.
// Entries whose timestamp fails to parse are counted as removed rather
// than silently dropped. Updates the last-cleanup timestamp.
func (s *DocumentStore) CleanupNews(maxAge time.Duration) ([]*models.NewsEntry, error) {
	var removed []*models.NewsEntry
	err := s.mutate(func(doc *models.Document) bool {
		now := time.Now()
		kept := make([]*models.NewsEntry, 0, len(doc.News))
		for _, entry := range doc.News {
			published, perr := models.ParseTime(entry.Date)
			if perr != nil || now.Sub(published) > maxAge {
				removed = append(removed, entry)
				continue
			}
			kept = append(kept, entry)
		}
		doc.News = kept
		cleanedAt := models.Now()
		doc.Settings.LastNewsCleanup = &cleanedAt
		return true
	})
	return removed, err
}

// RecentNews returns the newest-first prefix of the news sequence.
func (s *DocumentStore) RecentNews(limit int) []*models.NewsEntry {
	doc := s.Load()
	if limit <= 0 || limit > len(doc.News) {
		limit = len(doc.News)
	}
	return doc.News[:limit]
}

func (s *DocumentStore) IncrementCommands() error {
	return s.mutate(func(doc *models.Document) bool {
		doc.Settings.TotalCommands++
		return true
	})
}

func (s *DocumentStore) SetStartTime() error {
	return s.mutate(func(doc *models.Document) bool {
		startedAt := models.Now()
		doc.Settings.BotStartTime = &startedAt
		return true
	})
}

func (s *DocumentStore) Settings() models.Settings {
	return s.Load().Settings
}
