package storage

import (
	"fmt"
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"rosterd/internal/storage/interfaces"
	"rosterd/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

const gaugeRefreshInterval = time.Minute

// Scheduler drives the periodic news sweep and the metrics gauge refresh.
// Sweep runs share the store's writer mutex through the store API, so they
// serialize with command-triggered mutations.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	store   *DocumentStore
	audit   *AuditLog
	archive *NewsArchive
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func NewScheduler(config *structures.Config, logger providers.Logger, store *DocumentStore, audit *AuditLog, archive *NewsArchive, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		store:   store,
		audit:   audit,
		archive: archive,
		metrics: metrics,
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.News.SweepInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.sweep()
	})

	s.cron.AddFunc(gron.Every(gaugeRefreshInterval), func() {
		s.refreshGauges()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore bootstraps stable storage: the document and audit log files are
// created with their default shapes when absent, the archive index is
// loaded and the bot start timestamp is recorded.
func (s *Scheduler) Restore() error {
	if err := s.store.EnsureExists(); err != nil {
		return err
	}
	if err := s.audit.EnsureExists(); err != nil {
		return err
	}
	if err := s.archive.Restore(); err != nil {
		return err
	}
	if err := s.store.SetStartTime(); err != nil {
		return err
	}
	s.refreshGauges()
	return nil
}

// Persist is the final flush on shutdown.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Flushing news archive...")
	if err := s.archive.Flush(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while flushing archive: %s", err)
		return err
	}
	return nil
}

// sweep removes news entries older than the configured TTL, moves them to
// the archive and logs only runs that removed something.
func (s *Scheduler) sweep() {
	start := time.Now()

	removed, err := s.store.CleanupNews(s.config.News.TTL)
	if err != nil {
		s.logger.Errorf(providers.TypeSweep, "News sweep failed: %s", err)
		return
	}

	s.archive.Archive(removed)
	if err := s.archive.Flush(); err != nil {
		s.logger.Errorf(providers.TypeSweep, "Archive flush failed: %s", err)
	}

	s.metrics.ObserveSweepDuration(time.Since(start))
	if len(removed) > 0 {
		s.metrics.AddNewsSwept(len(removed))
		s.audit.Append(fmt.Sprintf("Auto-cleanup removed %d old news entries", len(removed)))
	}

	s.refreshGauges()
}

func (s *Scheduler) refreshGauges() {
	doc := s.store.Load()
	s.metrics.SetRosterTotal(string(models.CategoryLeaders), len(doc.Leaders))
	s.metrics.SetRosterTotal(string(models.CategoryDeputies), len(doc.Deputies))
	s.metrics.SetNewsTotal(len(doc.News))
	s.metrics.SetCommandsTotal(doc.Settings.TotalCommands)
}
