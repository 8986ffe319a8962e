package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/store"
)

type themeBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SubjectID   *int64 `json:"subject_id"`
}

func (h *Handler) handleCreateTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		h.writeError(w, r, http.StatusUnprocessableEntity, "ErrValidation")
		return
	}

	id, err := h.store.CreateTheme(model.Theme{
		Name:        body.Name,
		Description: body.Description,
		SubjectID:   body.SubjectID,
	})
	if errors.Is(err, store.ErrDuplicate) {
		h.writeError(w, r, http.StatusConflict, "ErrThemeDuplicate")
		return
	}
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	theme, err := h.store.GetTheme(id)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	writeJSON(w, http.StatusCreated, theme)
}

// handleDeleteTheme removes a theme; its exercises, responses and chats
// cascade away.
func (h *Handler) handleDeleteTheme(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "themeID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}

	err = h.store.DeleteTheme(id)
	if errors.Is(err, store.ErrNotFound) {
		h.writeErrorData(w, r, http.StatusNotFound, "ErrThemeNotFound", map[string]any{"Name": idStr})
		return
	}
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListThemeExercises returns a theme's exercises, oldest first. The
// canonical answers stay server-side.
func (h *Handler) handleListThemeExercises(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "themeID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}

	if _, err := h.store.GetTheme(id); errors.Is(err, store.ErrNotFound) {
		h.writeErrorData(w, r, http.StatusNotFound, "ErrThemeNotFound", map[string]any{"Name": idStr})
		return
	} else if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	exercises, err := h.store.ListExercisesByTheme(id)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	if exercises == nil {
		exercises = []model.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *Handler) handleListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.store.ListThemes()
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	if themes == nil {
		themes = []model.Theme{}
	}
	writeJSON(w, http.StatusOK, themes)
}
