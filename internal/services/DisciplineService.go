package services

import (
	"fmt"
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"rosterd/internal/storage"
	"rosterd/internal/structures"
)

// ReprimandResult reports what a reprimand did. Found false means the
// target is not registered in either category.
type ReprimandResult struct {
	Found     bool            `json:"found"`
	Category  models.Category `json:"category,omitempty"`
	Number    int             `json:"number,omitempty"`
	Dismissed bool            `json:"dismissed,omitempty"`
}

// WarningResult reports a warning, including the auto-escalation outcome
// when the warning count reached the threshold.
type WarningResult struct {
	Found     bool             `json:"found"`
	Category  models.Category  `json:"category,omitempty"`
	Count     int              `json:"count,omitempty"`
	Escalated bool             `json:"escalated,omitempty"`
	Reprimand *ReprimandResult `json:"reprimand,omitempty"`
}

type DisciplineServiceInterface interface {
	IssueWarning(id, reason, actor string) (WarningResult, error)
	IssueReprimand(id, reason, actor string) (ReprimandResult, error)
	ClearWarnings(category models.Category, id string) error
}

// DisciplineService runs the per-person state machine
// Clean -> Warned(n) -> Reprimanded(k) -> Dismissed. Warnings accumulate
// up to a threshold and convert into a reprimand; the configured maximum
// of reprimands is terminal and deletes the record.
type DisciplineService struct {
	store   *storage.DocumentStore
	audit   *storage.AuditLog
	marker  RoleMarker
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	conf    *structures.Config
}

func NewDisciplineService(conf *structures.Config, store *storage.DocumentStore, audit *storage.AuditLog, marker RoleMarker, metrics providers.MetricsProviderInterface, logger providers.Logger) DisciplineServiceInterface {
	return &DisciplineService{
		store:   store,
		audit:   audit,
		marker:  marker,
		metrics: metrics,
		logger:  logger,
		conf:    conf,
	}
}

// IssueWarning appends a warning to whichever category the target is
// registered in. Reaching the threshold clears all warnings and issues an
// auto-reprimand. The clear and the reprimand are two separate writes; a
// crash between them leaves warnings uncleared but never a spurious
// reprimand.
func (ds *DisciplineService) IssueWarning(id, reason, actor string) (WarningResult, error) {
	category, key, _, ok := ds.store.FindPerson(id)
	if !ok {
		return WarningResult{}, nil
	}

	count, found, err := ds.store.AddWarning(category, key, reason, actor)
	if err != nil {
		return WarningResult{}, fmt.Errorf("warn %s: %w", id, err)
	}
	if !found {
		return WarningResult{}, nil
	}

	ds.metrics.IncWarningsIssued()
	ds.audit.Append(fmt.Sprintf("%s issued WARNING to %s: %s (total %d)", actor, key, reason, count))

	result := WarningResult{Found: true, Category: category, Count: count}

	threshold := ds.conf.Discipline.WarningsPerReprimand
	if count < threshold {
		return result, nil
	}

	if err := ds.store.ClearWarnings(category, key); err != nil {
		return result, fmt.Errorf("clear warnings for %s: %w", id, err)
	}

	reprimand, err := ds.issueReprimandTo(category, key, fmt.Sprintf("Auto-converted from %d warnings", threshold), actor)
	if err != nil {
		return result, err
	}
	result.Escalated = true
	result.Reprimand = &reprimand
	return result, nil
}

func (ds *DisciplineService) IssueReprimand(id, reason, actor string) (ReprimandResult, error) {
	category, key, _, ok := ds.store.FindPerson(id)
	if !ok {
		return ReprimandResult{}, nil
	}
	return ds.issueReprimandTo(category, key, reason, actor)
}

func (ds *DisciplineService) ClearWarnings(category models.Category, id string) error {
	return ds.store.ClearWarnings(category, id)
}

func (ds *DisciplineService) issueReprimandTo(category models.Category, key, reason, actor string) (ReprimandResult, error) {
	number, found, err := ds.store.AddReprimand(category, key, reason, actor)
	if err != nil {
		return ReprimandResult{}, fmt.Errorf("reprimand %s: %w", key, err)
	}
	if !found {
		return ReprimandResult{}, nil
	}

	ds.metrics.IncReprimandsIssued()
	result := ReprimandResult{Found: true, Category: category, Number: number}

	if number >= ds.conf.Discipline.MaxReprimands {
		return ds.dismiss(result, category, key, reason, actor)
	}

	ds.applyTierMarker(key, number)
	ds.audit.Append(fmt.Sprintf("%s issued REPRIMAND #%d to %s: %s", actor, number, key, reason))
	return result, nil
}

// dismiss is terminal: the record is deleted, not flagged.
func (ds *DisciplineService) dismiss(result ReprimandResult, category models.Category, key, reason, actor string) (ReprimandResult, error) {
	if _, err := ds.store.RemovePerson(category, key); err != nil {
		return result, fmt.Errorf("dismiss %s: %w", key, err)
	}

	if err := ds.marker.ClearAllTiers(key); err != nil {
		ds.logger.Warnf(providers.TypeApp, "Marker clear failed for %s: %s", key, err)
	}
	if err := ds.marker.RemoveMarker(category, key); err != nil {
		ds.logger.Warnf(providers.TypeApp, "Marker removal failed for %s: %s", key, err)
	}

	ds.metrics.IncDismissals()
	ds.audit.Append(fmt.Sprintf("%s DISMISSED %s after %d reprimands. Reason: %s", actor, key, ds.conf.Discipline.MaxReprimands, reason))

	result.Dismissed = true
	return result, nil
}

// applyTierMarker keeps the two tier markers mutually exclusive: applying
// one removes the other on the marker side.
func (ds *DisciplineService) applyTierMarker(key string, number int) {
	var err error
	switch number {
	case 1:
		err = ds.marker.ApplyTier1(key)
	case 2:
		err = ds.marker.ApplyTier2(key)
	}
	if err != nil {
		ds.logger.Warnf(providers.TypeApp, "Tier marker failed for %s: %s", key, err)
	}
}
