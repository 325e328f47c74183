package controllers

import (
	"fmt"
	"net/http"
	"rosterd/internal/services"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	roster    services.RosterServiceInterface
	news      services.NewsServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Leaders       int     `json:"leaders"`
	Deputies      int     `json:"deputies"`
	News          int     `json:"news"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	summary := hc.roster.Summary()
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Leaders:       summary.Leaders,
		Deputies:      summary.Deputies,
		News:          hc.news.Count(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(roster services.RosterServiceInterface, news services.NewsServiceInterface) *HealthController {
	return &HealthController{
		roster:    roster,
		news:      news,
		startTime: time.Now(),
	}
}
