package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aulavirtual/tutoria/internal/exercise"
	"github.com/aulavirtual/tutoria/internal/llm"
	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/store"
)

type aiRequestBody struct {
	Model          string        `json:"model"`
	ResponseFormat string        `json:"response_format"`
	Messages       []llm.Message `json:"messages"`
}

type aiRequestResponse struct {
	ID          int64  `json:"id"`
	Theme       string `json:"tema"`
	Statement   string `json:"enunciado"`
	Difficulty  string `json:"dificultad"`
	Type        string `json:"tipo"`
	Explanation string `json:"explicacion,omitempty"`
}

// handleAIRequest asks the LLM to generate an exercise from the caller's
// messages, resolves its theme and persists it.
func (h *Handler) handleAIRequest(w http.ResponseWriter, r *http.Request) {
	var body aiRequestBody
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}
	if len(body.Messages) == 0 {
		h.writeError(w, r, http.StatusUnprocessableEntity, "ErrValidation")
		return
	}

	mdl := body.Model
	if mdl == "" {
		mdl = h.config.DefaultModel
	}

	result, err := h.llm.Complete(r.Context(), llm.Request{
		Model:        mdl,
		Messages:     body.Messages,
		JSONResponse: body.ResponseFormat == "json_object",
	})
	if err != nil {
		slog.Error("exercise generation failed", "error", err)
		h.writeLLMError(w, r, err, http.StatusBadGateway)
		return
	}

	gen, err := exercise.ParseGenerated(result.Content)
	if err != nil {
		var invalid *exercise.ErrInvalidContent
		if errors.As(err, &invalid) {
			slog.Warn("unparseable exercise payload", "error", err)
			h.writeError(w, r, http.StatusInternalServerError, "ErrLLMBadResponse")
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	theme, err := h.store.GetThemeByName(gen.Theme)
	if errors.Is(err, store.ErrNotFound) {
		h.writeErrorData(w, r, http.StatusNotFound, "ErrThemeNotFound", map[string]any{"Name": gen.Theme})
		return
	}
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	ex, err := h.store.InsertExercise(model.Exercise{
		Statement:   gen.Statement,
		Type:        gen.Type,
		Difficulty:  gen.Difficulty,
		Answer:      gen.Answer,
		Explanation: gen.Explanation,
		ThemeID:     theme.ID,
	})
	if err != nil {
		slog.Error("failed to insert exercise", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	writeJSON(w, http.StatusOK, aiRequestResponse{
		ID:          ex.ID,
		Theme:       theme.Name,
		Statement:   ex.Statement,
		Difficulty:  ex.Difficulty,
		Type:        ex.Type,
		Explanation: ex.Explanation,
	})
}
