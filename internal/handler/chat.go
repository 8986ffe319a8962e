package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aulavirtual/tutoria/internal/llm"
	"github.com/aulavirtual/tutoria/internal/llm/prompts"
	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/store"
)

type chatMessageBody struct {
	ExerciseID     int64  `json:"exercise_id"`
	Message        string `json:"message"`
	ConversationID *int64 `json:"conversation_id"`
}

// handleChatMessage appends the user's turn to a conversation, replays the
// full history into the LLM behind the tutor prompt, and appends the AI
// turn. The user turn is committed before the LLM call, so a failed call
// leaves the conversation in a state a retry continues from.
func (h *Handler) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	var body chatMessageBody
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}
	text := strings.TrimSpace(body.Message)
	if text == "" {
		h.writeError(w, r, http.StatusUnprocessableEntity, "ErrEmptyMessage")
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

	conv, ok := h.selectConversation(w, r, user, ex, body.ConversationID)
	if !ok {
		return
	}

	if _, err := h.store.AddChatMessage(model.ChatMessage{
		ConversationID: conv.ID,
		SenderType:     model.SenderUser,
		Message:        text,
	}); err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	history, err := h.store.GetChatMessages(conv.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: prompts.Tutor(ex)})
	for _, m := range history {
		switch m.SenderType {
		case model.SenderUser:
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: m.Message})
		case model.SenderAI:
			messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: m.Message})
		default:
			slog.Warn("dropping message with unknown sender",
				"conversation_id", conv.ID, "message_id", m.ID, "sender_type", m.SenderType)
		}
	}

	result, err := h.llm.Complete(r.Context(), llm.Request{
		Model:       prompts.TutorModel,
		Messages:    messages,
		Temperature: prompts.TutorTemperature,
	})
	if err != nil {
		slog.Error("tutor completion failed", "conversation_id", conv.ID, "error", err)
		h.writeLLMError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	if _, err := h.store.AddChatMessage(model.ChatMessage{
		ConversationID: conv.ID,
		SenderType:     model.SenderAI,
		Message:        strings.TrimSpace(result.Content),
	}); err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	conv.Messages, err = h.store.GetChatMessages(conv.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// selectConversation loads and authorizes the requested conversation, or
// reuses the earliest one for the (user, exercise) pair, creating it when
// none exists. On failure it writes the error response and returns ok=false.
func (h *Handler) selectConversation(w http.ResponseWriter, r *http.Request, user *model.User, ex model.Exercise, conversationID *int64) (model.ChatConversation, bool) {
	if conversationID != nil {
		conv, err := h.store.GetConversation(*conversationID)
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, r, http.StatusNotFound, "ErrConversationNotFound")
			return model.ChatConversation{}, false
		}
		if err != nil {
			h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
			return model.ChatConversation{}, false
		}
		if conv.UserID != user.ID || conv.ExerciseID != ex.ID {
			h.writeError(w, r, http.StatusForbidden, "ErrForbidden")
			return model.ChatConversation{}, false
		}
		return conv, true
	}

	existing, err := h.store.FirstConversation(user.ID, ex.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return model.ChatConversation{}, false
	}
	if existing != nil {
		return *existing, true
	}

	conv, err := h.store.CreateConversation(user.ID, ex.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return model.ChatConversation{}, false
	}
	return conv, true
}

// handleGetConversation returns a conversation with its messages. Only the
// owner sees it; anyone else gets the same 404 as a missing conversation.
func (h *Handler) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "conversationID"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}

	conv, err := h.store.GetConversation(id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && conv.UserID != user.ID) {
		h.writeError(w, r, http.StatusNotFound, "ErrConversationNotFound")
		return
	}
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	conv.Messages, err = h.store.GetChatMessages(conv.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// handleListConversations returns all of the caller's conversations for an
// exercise, newest first.
func (h *Handler) handleListConversations(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	exerciseID, err := strconv.ParseInt(chi.URLParam(r, "exerciseID"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}

	conversations, err := h.store.ListConversationsByExercise(user.ID, exerciseID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	if conversations == nil {
		conversations = []model.ChatConversation{}
	}
	writeJSON(w, http.StatusOK, conversations)
}
