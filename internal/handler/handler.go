// Package handler wires the HTTP/JSON API: request decoding, auth,
// orchestration of the store and the LLM gateway, and error mapping.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aulavirtual/tutoria/internal/llm"
	"github.com/aulavirtual/tutoria/internal/store"
)

// Config holds runtime parameters for the handlers.
type Config struct {
	// DefaultModel is used for /ai/request when the body omits a model.
	DefaultModel string
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	llm    llm.Completer
	config Config
}

// New creates a new Handler.
func New(s *store.Store, l llm.Completer, cfg Config) *Handler {
	return &Handler{store: s, llm: l, config: cfg}
}

// Routes registers all HTTP routes under /api.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", h.handleRegister)
		api.Post("/auth/login", h.handleLogin)

		api.Group(func(priv chi.Router) {
			priv.Use(h.requireAuth)

			priv.Post("/auth/logout", h.handleLogout)

			priv.Post("/ai/request", h.handleAIRequest)
			priv.Post("/answer", h.handleAnswer)

			priv.Post("/chat/message", h.handleChatMessage)
			priv.Get("/chat/conversation/{conversationID}", h.handleGetConversation)
			priv.Get("/chat/exercise/{exerciseID}", h.handleListConversations)

			priv.Get("/stats/overview", h.handleStatsOverview)
			priv.Get("/stats/timeline", h.handleStatsTimeline)
			priv.Get("/stats/by-theme", h.handleStatsByTheme)

			priv.Get("/themes", h.handleListThemes)
			priv.Get("/themes/{themeID}/exercises", h.handleListThemeExercises)
			priv.With(h.requireAdmin).Post("/themes", h.handleCreateTheme)
			priv.With(h.requireAdmin).Delete("/themes/{themeID}", h.handleDeleteTheme)
		})
	})
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
