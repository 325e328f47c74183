package services

import (
	"rosterd/internal/models"
	"rosterd/internal/providers"
)

// RoleMarker is the external role-marker applier: category markers for
// appointments plus the two mutually exclusive punishment tiers. The
// platform layer owning the actual role storage injects its own
// implementation; the core never talks to the platform itself.
type RoleMarker interface {
	SetLeaderMarker(id string) error
	SetDeputyMarker(id string) error
	RemoveMarker(category models.Category, id string) error
	ApplyTier1(id string) error
	ApplyTier2(id string) error
	ClearAllTiers(id string) error
}

// LogRoleMarker is the default stand-in wired when no platform layer is
// attached: it records every marker transition in the operator log.
type LogRoleMarker struct {
	logger providers.Logger
}

func NewLogRoleMarker(logger providers.Logger) RoleMarker {
	return &LogRoleMarker{logger: logger}
}

func (m *LogRoleMarker) SetLeaderMarker(id string) error {
	m.logger.Infof(providers.TypeApp, "Marker: leader set for %s", id)
	return nil
}

func (m *LogRoleMarker) SetDeputyMarker(id string) error {
	m.logger.Infof(providers.TypeApp, "Marker: deputy set for %s", id)
	return nil
}

func (m *LogRoleMarker) RemoveMarker(category models.Category, id string) error {
	m.logger.Infof(providers.TypeApp, "Marker: %s removed for %s", category, id)
	return nil
}

func (m *LogRoleMarker) ApplyTier1(id string) error {
	m.logger.Infof(providers.TypeApp, "Marker: tier 1 applied to %s", id)
	return nil
}

func (m *LogRoleMarker) ApplyTier2(id string) error {
	m.logger.Infof(providers.TypeApp, "Marker: tier 2 applied to %s", id)
	return nil
}

func (m *LogRoleMarker) ClearAllTiers(id string) error {
	m.logger.Infof(providers.TypeApp, "Marker: tiers cleared for %s", id)
	return nil
}
