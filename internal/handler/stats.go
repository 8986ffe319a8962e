package handler

import (
	"net/http"
	"time"

	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/stats"
)

func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	responses, err := h.store.ListResponsesByUser(user.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	writeJSON(w, http.StatusOK, stats.ComputeOverview(responses, time.Now().UTC()))
}

func (h *Handler) handleStatsTimeline(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	responses, err := h.store.ListResponsesByUser(user.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	writeJSON(w, http.StatusOK, stats.ComputeTimeline(responses))
}

func (h *Handler) handleStatsByTheme(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	byTheme, err := h.store.ThemeStatsByUser(user.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	if byTheme == nil {
		byTheme = []stats.ThemeStat{}
	}
	writeJSON(w, http.StatusOK, byTheme)
}
