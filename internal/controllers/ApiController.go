package controllers

import (
	"net/http"
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"rosterd/internal/services"
	"strconv"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger     providers.Logger
	roster     services.RosterServiceInterface
	discipline services.DisciplineServiceInterface
	news       services.NewsServiceInterface
	resolver   services.ResolverServiceInterface
	cache      providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, roster services.RosterServiceInterface, discipline services.DisciplineServiceInterface, news services.NewsServiceInterface, resolver services.ResolverServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:     logger,
		roster:     roster,
		discipline: discipline,
		news:       news,
		resolver:   resolver,
		cache:      cache,
	}
}

type appointRequest struct {
	Category     string `json:"category"`
	ID           string `json:"id"`
	Organization string `json:"organization"`
	Position     string `json:"position"`
	Actor        string `json:"actor"`
}

type removeRequest struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Actor    string `json:"actor"`
}

type disciplineRequest struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

type publishRequest struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	Channel   string `json:"channel"`
	ChannelID int64  `json:"channel_id"`
}

type resolveRequest struct {
	Token      string            `json:"token"`
	Identities []models.Identity `json:"identities"`
}

type resolveResponse struct {
	Outcome  services.ResolveOutcome `json:"outcome"`
	Identity *models.Identity        `json:"identity,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, payload any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func categoryParam(raw string) (models.Category, bool) {
	category := models.Category(raw)
	return category, category.Valid()
}

func (ac *ApiController) Appoint(w http.ResponseWriter, r *http.Request) {
	var payload appointRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	category, ok := categoryParam(payload.Category)
	if !ok || payload.ID == "" || payload.Organization == "" || payload.Position == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	created, err := ac.roster.Appoint(category, payload.ID, payload.Organization, payload.Position, payload.Actor)
	if err != nil {
		ac.logger.Errorf(providers.TypeApi, "Appoint failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !created {
		http.Error(w, "Already Registered", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"appointed": true})
}

func (ac *ApiController) Remove(w http.ResponseWriter, r *http.Request) {
	var payload removeRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	category, ok := categoryParam(payload.Category)
	if !ok || payload.ID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	removed, err := ac.roster.Remove(category, payload.ID, payload.Actor)
	if err != nil {
		ac.logger.Errorf(providers.TypeApi, "Remove failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (ac *ApiController) ListRoster(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(r.URL.Query().Get("category"))
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.serveFromCacheOrCompute(w, "roster:"+string(category), func() (any, error) {
		return ac.roster.ListByOrganization(category), nil
	})
}

func (ac *ApiController) GetPerson(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryParam(r.URL.Query().Get("category"))
	id := r.URL.Query().Get("id")
	if !ok || id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	person, found := ac.roster.Get(category, id)
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (ac *ApiController) Warning(w http.ResponseWriter, r *http.Request) {
	var payload disciplineRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.ID == "" || payload.Reason == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := ac.discipline.IssueWarning(payload.ID, payload.Reason, payload.Actor)
	if err != nil {
		ac.logger.Errorf(providers.TypeApi, "Warning failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (ac *ApiController) Reprimand(w http.ResponseWriter, r *http.Request) {
	var payload disciplineRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.ID == "" || payload.Reason == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := ac.discipline.IssueReprimand(payload.ID, payload.Reason, payload.Actor)
	if err != nil {
		ac.logger.Errorf(providers.TypeApi, "Reprimand failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (ac *ApiController) PublishNews(w http.ResponseWriter, r *http.Request) {
	var payload publishRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.Text == "" || payload.Channel == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.news.Publish(payload.Text, payload.Author, payload.Channel, payload.ChannelID); err != nil {
		ac.logger.Errorf(providers.TypeApi, "Publish failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) RecentNews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	ac.serveFromCacheOrCompute(w, "news:"+strconv.Itoa(limit), func() (any, error) {
		return ac.news.Recent(limit), nil
	})
}

// Resolve is a pure function of its payload; ambiguous and not-found are
// normal outcomes, never HTTP errors.
func (ac *ApiController) Resolve(w http.ResponseWriter, r *http.Request) {
	var payload resolveRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	identity, outcome := ac.resolver.Resolve(payload.Token, payload.Identities)
	resp := resolveResponse{Outcome: outcome}
	if outcome == services.ResolveMatched {
		resp.Identity = &identity
	}
	writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) Stats(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "stats", func() (any, error) {
		return ac.roster.Summary(), nil
	})
}
