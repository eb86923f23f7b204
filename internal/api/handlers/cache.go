package handlers

import (
	"net/http"

	"delivery-date-service/internal/platform/logger"
)

// CacheClearer is anything holding memoized rule or holiday data.
type CacheClearer interface {
	ClearCache()
}

type CacheHandler struct {
	Caches []CacheClearer
}

// Clear drops every memoized rule and holiday set so the next calculation
// reads storage again. Call it after rules or holidays are edited.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	for _, c := range h.Caches {
		c.ClearCache()
	}
	logger.C(r.Context()).Info().Int("caches", len(h.Caches)).Msg("caches cleared")
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}
