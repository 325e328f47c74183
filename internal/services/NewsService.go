package services

import (
	"fmt"
	"rosterd/internal/models"
	"rosterd/internal/storage"
	"rosterd/internal/structures"
)

type NewsServiceInterface interface {
	Publish(text, author, channel string, channelID int64) error
	Recent(limit int) []*models.NewsEntry
	Count() int
}

// NewsService is the command-facing side of the news ledger. Expiry is the
// sweep scheduler's job; the service only inserts and reads.
type NewsService struct {
	store *storage.DocumentStore
	audit *storage.AuditLog
	conf  *structures.Config
}

func NewNewsService(conf *structures.Config, store *storage.DocumentStore, audit *storage.AuditLog) NewsServiceInterface {
	return &NewsService{
		store: store,
		audit: audit,
		conf:  conf,
	}
}

func (ns *NewsService) Publish(text, author, channel string, channelID int64) error {
	if err := ns.store.AddNews(text, author, channel, channelID); err != nil {
		return fmt.Errorf("publish news: %w", err)
	}

	preview := text
	if runes := []rune(preview); len(runes) > 60 {
		preview = string(runes[:60]) + "..."
	}
	ns.audit.Append(fmt.Sprintf("News published by %s in #%s: %s", author, channel, preview))
	return nil
}

// Recent caps the requested limit at the configured maximum and defaults
// to it when no limit is given.
func (ns *NewsService) Recent(limit int) []*models.NewsEntry {
	maxLimit := ns.conf.News.RecentLimit
	if maxLimit <= 0 {
		maxLimit = 10
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	return ns.store.RecentNews(limit)
}

func (ns *NewsService) Count() int {
	return len(ns.store.Load().News)
}
