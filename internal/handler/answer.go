package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aulavirtual/tutoria/internal/exercise"
	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/store"
)

type answerBody struct {
	ExerciseID int64  `json:"ejercicio_id"`
	Answer     string `json:"answer"`
	TimeSec    *int   `json:"tiempo_seg"`
}

type answerResponse struct {
	Correct       bool   `json:"correcto"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// handleAnswer grades a submitted answer and records the response plus the
// theme progress counters.
func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	var body answerBody
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}
	if body.ExerciseID <= 0 || strings.TrimSpace(body.Answer) == "" ||
		(body.TimeSec != nil && *body.TimeSec < 0) {
		h.writeError(w, r, http.StatusUnprocessableEntity, "ErrValidation")
		return
	}

	ex, err := h.store.GetExercise(body.ExerciseID)
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, r, http.StatusNotFound, "ErrExerciseNotFound")
		return
	}
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	correct := exercise.Grade(body.Answer, ex.Answer)

	err = h.store.RegisterResponse(model.UserResponse{
		UserID:     user.ID,
		ExerciseID: ex.ID,
		Answer:     body.Answer,
		Correct:    correct,
		TimeSec:    body.TimeSec,
	}, ex.ThemeID)
	if err != nil {
		slog.Error("failed to register response", "user_id", user.ID, "exercise_id", ex.ID, "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	resp := answerResponse{Correct: correct, Explanation: ex.Explanation}
	if !correct {
		resp.CorrectAnswer = ex.Answer
	}
	writeJSON(w, http.StatusCreated, resp)
}
