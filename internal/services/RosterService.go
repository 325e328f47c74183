package services

import (
	"fmt"
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"rosterd/internal/storage"
	"rosterd/internal/structures"
)

const defaultActivity = "Active"

// Member is one row of a grouped roster listing.
type Member struct {
	ID       string `json:"id"`
	Position string `json:"position"`
}

type RosterServiceInterface interface {
	Get(category models.Category, id string) (*models.Person, bool)
	Appoint(category models.Category, id, organization, position, actor string) (bool, error)
	Remove(category models.Category, id, actor string) (bool, error)
	ListByOrganization(category models.Category) map[string][]Member
	Summary() models.Summary
}

type RosterService struct {
	store  *storage.DocumentStore
	audit  *storage.AuditLog
	marker RoleMarker
	logger providers.Logger
	conf   *structures.Config
}

func NewRosterService(conf *structures.Config, store *storage.DocumentStore, audit *storage.AuditLog, marker RoleMarker, logger providers.Logger) RosterServiceInterface {
	return &RosterService{
		store:  store,
		audit:  audit,
		marker: marker,
		logger: logger,
		conf:   conf,
	}
}

// Get retries the space-to-underscore key variant, the way the original
// registry tolerated display names typed either way.
func (rs *RosterService) Get(category models.Category, id string) (*models.Person, bool) {
	foundCategory, _, person, ok := rs.store.FindPerson(id)
	if !ok || foundCategory != category {
		return nil, false
	}
	return person, true
}

// Appoint registers a person in the category, evicting any registration in
// the opposite one. Returns false without error when the id is already
// registered in the requested category.
func (rs *RosterService) Appoint(category models.Category, id, organization, position, actor string) (bool, error) {
	person := &models.Person{
		Organization: organization,
		Position:     position,
		AppointedAt:  models.Now(),
		AppointedBy:  actor,
		Warnings:     []models.Warning{},
		Reprimands:   []models.Reprimand{},
		Activity:     defaultActivity,
		LastActivity: models.Now(),
	}

	created, err := rs.store.AppointPerson(category, id, person)
	if err != nil {
		return false, fmt.Errorf("appoint %s: %w", id, err)
	}
	if !created {
		return false, nil
	}

	rs.applyCategoryMarkers(category, id)
	rs.audit.Append(fmt.Sprintf("%s appointed %s as %s in %s - %s", actor, id, roleName(category), organization, position))
	return true, nil
}

// Remove deletes the registration and clears every marker. Idempotent:
// a second call on an absent id returns false and changes nothing.
func (rs *RosterService) Remove(category models.Category, id, actor string) (bool, error) {
	removed, err := rs.store.RemovePerson(category, id)
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", id, err)
	}

	if removed {
		if err := rs.marker.ClearAllTiers(id); err != nil {
			rs.logger.Warnf(providers.TypeApp, "Marker clear failed for %s: %s", id, err)
		}
		if err := rs.marker.RemoveMarker(category, id); err != nil {
			rs.logger.Warnf(providers.TypeApp, "Marker removal failed for %s: %s", id, err)
		}
		rs.audit.Append(fmt.Sprintf("%s removed %s from %s", actor, id, category))
	}
	return removed, nil
}

func (rs *RosterService) ListByOrganization(category models.Category) map[string][]Member {
	doc := rs.store.Load()
	grouped := make(map[string][]Member)
	for id, person := range doc.Roster(category) {
		grouped[person.Organization] = append(grouped[person.Organization], Member{
			ID:       id,
			Position: person.Position,
		})
	}
	return grouped
}

func (rs *RosterService) Summary() models.Summary {
	doc := rs.store.Load()

	summary := models.Summary{
		Leaders:       len(doc.Leaders),
		Deputies:      len(doc.Deputies),
		News:          len(doc.News),
		TotalCommands: doc.Settings.TotalCommands,
		BotStartTime:  doc.Settings.BotStartTime,
	}
	for _, roster := range []map[string]*models.Person{doc.Leaders, doc.Deputies} {
		for _, person := range roster {
			summary.Warnings += len(person.Warnings)
			summary.Reprimands += len(person.Reprimands)
		}
	}
	return summary
}

func (rs *RosterService) applyCategoryMarkers(category models.Category, id string) {
	if err := rs.marker.ClearAllTiers(id); err != nil {
		rs.logger.Warnf(providers.TypeApp, "Marker clear failed for %s: %s", id, err)
	}

	var err error
	if category == models.CategoryLeaders {
		err = rs.marker.SetLeaderMarker(id)
	} else {
		err = rs.marker.SetDeputyMarker(id)
	}
	if err != nil {
		rs.logger.Warnf(providers.TypeApp, "Marker set failed for %s: %s", id, err)
	}
}

func roleName(category models.Category) string {
	if category == models.CategoryLeaders {
		return "leader"
	}
	return "deputy"
}
