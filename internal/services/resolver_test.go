package services

import (
	"rosterd/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolverIdentities() []models.Identity {
	return []models.Identity{
		{ID: 100, Name: "john_doe", DisplayName: "John Doe"},
		{ID: 200, Name: "jane_smith", DisplayName: "Jane Smith"},
		{ID: 300, Name: "johnny", DisplayName: "Johnny B"},
	}
}

func TestResolve_Mention(t *testing.T) {
	r := NewResolverService()

	for _, token := range []string{"<@100>", "<@!100>"} {
		identity, outcome := r.Resolve(token, resolverIdentities())
		assert.Equal(t, ResolveMatched, outcome, "token %q", token)
		assert.Equal(t, int64(100), identity.ID)
	}
}

func TestResolve_MentionWithUnknownIDFallsThrough(t *testing.T) {
	r := NewResolverService()

	_, outcome := r.Resolve("<@999>", resolverIdentities())
	assert.Equal(t, ResolveNotFound, outcome)
}

func TestResolve_NumericID(t *testing.T) {
	r := NewResolverService()

	identity, outcome := r.Resolve("200", resolverIdentities())
	assert.Equal(t, ResolveMatched, outcome)
	assert.Equal(t, "jane_smith", identity.Name)
}

func TestResolve_ExactName(t *testing.T) {
	r := NewResolverService()

	identity, outcome := r.Resolve("john_doe", resolverIdentities())
	assert.Equal(t, ResolveMatched, outcome)
	assert.Equal(t, int64(100), identity.ID)

	// Display name matches too, case insensitively
	identity, outcome = r.Resolve("JOHN DOE", resolverIdentities())
	assert.Equal(t, ResolveMatched, outcome)
	assert.Equal(t, int64(100), identity.ID)
}

func TestResolve_NormalizedName(t *testing.T) {
	r := NewResolverService()

	// Spaces typed where the stored name has underscores
	identity, outcome := r.Resolve("john doe", resolverIdentities())
	assert.Equal(t, ResolveMatched, outcome)
	assert.Equal(t, int64(100), identity.ID)

	// Underscores typed where the display name has spaces
	identity, outcome = r.Resolve("Jane_Smith", resolverIdentities())
	assert.Equal(t, ResolveMatched, outcome)
	assert.Equal(t, int64(200), identity.ID)
}

func TestResolve_UniqueSubstring(t *testing.T) {
	r := NewResolverService()

	identity, outcome := r.Resolve("smith", resolverIdentities())
	assert.Equal(t, ResolveMatched, outcome)
	assert.Equal(t, int64(200), identity.ID)
}

func TestResolve_AmbiguousSubstring(t *testing.T) {
	r := NewResolverService()

	// "john" is a substring of john_doe, John Doe and johnny
	_, outcome := r.Resolve("john", resolverIdentities())
	assert.Equal(t, ResolveAmbiguous, outcome)
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolverService()

	_, outcome := r.Resolve("zzz", resolverIdentities())
	assert.Equal(t, ResolveNotFound, outcome)
}

func TestResolve_EmptyToken(t *testing.T) {
	r := NewResolverService()

	_, outcome := r.Resolve("   ", resolverIdentities())
	assert.Equal(t, ResolveNotFound, outcome)
}

func TestResolve_EmptyIdentitySet(t *testing.T) {
	r := NewResolverService()

	_, outcome := r.Resolve("anyone", nil)
	assert.Equal(t, ResolveNotFound, outcome)
}

func TestResolve_ExactBeatsSubstring(t *testing.T) {
	r := NewResolverService()

	// "johnny" is also a substring candidate set of one, but the exact
	// strategy decides first
	identity, outcome := r.Resolve("johnny", resolverIdentities())
	assert.Equal(t, ResolveMatched, outcome)
	assert.Equal(t, int64(300), identity.ID)
}
