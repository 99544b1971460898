package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
)

type componentStatus struct {
	OK             bool   `json:"ok"`
	SectionsLoaded *int   `json:"sections_loaded,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Error          string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		dataset := d.Service.Dataset()
		sectionsCount := len(dataset.Sections)

		redisStatus := checkRedis(d)

		syncStatus := componentStatus{OK: true, Mode: "disabled", Impact: "local-only"}
		if settings := d.Service.Settings(); settings.Enabled && settings.Complete() {
			syncStatus = componentStatus{OK: true, Mode: "enabled", Impact: "cloud-mirrored"}
		}

		components := map[string]componentStatus{
			"dataset": {
				OK:             sectionsCount > 0,
				SectionsLoaded: &sectionsCount,
			},
			"redis": redisStatus,
			"sync":  syncStatus,
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	if dataset, exists := components["dataset"]; exists {
		if !dataset.OK || (dataset.SectionsLoaded != nil && *dataset.SectionsLoaded == 0) {
			return "critical" // nothing to render
		}
	}

	// Redis down means edits stop surviving restarts
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := d.RedisClient.Ping(ctx).Err()
	if err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "persistence-enabled",
		Error:  "none",
	}
}
