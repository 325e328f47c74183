package services

import (
	"rosterd/internal/models"
	"strconv"
	"strings"
)

// ResolveOutcome distinguishes "nobody matched" from "more than one
// matched" so the command layer can word its reply accordingly.
type ResolveOutcome string

const (
	ResolveMatched   ResolveOutcome = "matched"
	ResolveNotFound  ResolveOutcome = "not_found"
	ResolveAmbiguous ResolveOutcome = "ambiguous"
)

type ResolverServiceInterface interface {
	Resolve(token string, identities []models.Identity) (models.Identity, ResolveOutcome)
}

// matcher inspects the token against the identity set. decided is false
// when the strategy does not apply and the chain should continue.
type matcher func(token string, identities []models.Identity) (match models.Identity, outcome ResolveOutcome, decided bool)

// ResolverService resolves a free-text token to exactly one identity
// through an ordered strategy chain: platform mention, numeric id, exact
// name, space/underscore-normalized name, unique substring.
type ResolverService struct {
	chain []matcher
}

func NewResolverService() ResolverServiceInterface {
	return &ResolverService{
		chain: []matcher{
			matchMention,
			matchNumericID,
			matchExactName,
			matchNormalizedName,
			matchSubstring,
		},
	}
}

func (rs *ResolverService) Resolve(token string, identities []models.Identity) (models.Identity, ResolveOutcome) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, ResolveNotFound
	}

	for _, match := range rs.chain {
		if identity, outcome, decided := match(token, identities); decided {
			return identity, outcome
		}
	}
	return models.Identity{}, ResolveNotFound
}

func lookupByID(id int64, identities []models.Identity) (models.Identity, bool) {
	for _, identity := range identities {
		if identity.ID == id {
			return identity, true
		}
	}
	return models.Identity{}, false
}

// matchMention handles the platform mention syntax <@id> and <@!id>.
// A mention whose id is unknown falls through to the name strategies,
// which will not match it either.
func matchMention(token string, identities []models.Identity) (models.Identity, ResolveOutcome, bool) {
	if !strings.HasPrefix(token, "<@") || !strings.HasSuffix(token, ">") {
		return models.Identity{}, "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "<@"), ">")
	inner = strings.TrimPrefix(inner, "!")

	id, err := strconv.ParseInt(inner, 10, 64)
	if err != nil {
		return models.Identity{}, "", false
	}
	if identity, ok := lookupByID(id, identities); ok {
		return identity, ResolveMatched, true
	}
	return models.Identity{}, "", false
}

func matchNumericID(token string, identities []models.Identity) (models.Identity, ResolveOutcome, bool) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return models.Identity{}, "", false
	}
	if identity, ok := lookupByID(id, identities); ok {
		return identity, ResolveMatched, true
	}
	return models.Identity{}, "", false
}

func matchExactName(token string, identities []models.Identity) (models.Identity, ResolveOutcome, bool) {
	lowered := strings.ToLower(token)
	for _, identity := range identities {
		if strings.ToLower(identity.Name) == lowered || strings.ToLower(identity.DisplayName) == lowered {
			return identity, ResolveMatched, true
		}
	}
	return models.Identity{}, "", false
}

// matchNormalizedName tries the token with spaces and underscores swapped
// in both directions.
func matchNormalizedName(token string, identities []models.Identity) (models.Identity, ResolveOutcome, bool) {
	variants := []string{
		strings.ToLower(strings.ReplaceAll(token, " ", "_")),
		strings.ToLower(strings.ReplaceAll(token, "_", " ")),
	}
	for _, identity := range identities {
		name := strings.ToLower(identity.Name)
		display := strings.ToLower(identity.DisplayName)
		for _, variant := range variants {
			if name == variant || display == variant {
				return identity, ResolveMatched, true
			}
		}
	}
	return models.Identity{}, "", false
}

// matchSubstring succeeds only on a unique hit; two or more candidates is
// an explicit ambiguous outcome, not a silent miss.
func matchSubstring(token string, identities []models.Identity) (models.Identity, ResolveOutcome, bool) {
	lowered := strings.ToLower(token)
	var candidates []models.Identity
	for _, identity := range identities {
		if strings.Contains(strings.ToLower(identity.Name), lowered) ||
			strings.Contains(strings.ToLower(identity.DisplayName), lowered) {
			candidates = append(candidates, identity)
		}
	}

	switch len(candidates) {
	case 0:
		return models.Identity{}, ResolveNotFound, true
	case 1:
		return candidates[0], ResolveMatched, true
	default:
		return models.Identity{}, ResolveAmbiguous, true
	}
}
