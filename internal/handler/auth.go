package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/store"
)

// requireAuth checks the Authorization bearer token and puts the caller
// into the request context.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			h.writeError(w, r, http.StatusUnauthorized, "ErrUnauthenticated")
			return
		}

		sess, err := h.store.GetAuthSession(token)
		if err != nil {
			slog.Error("failed to get auth session", "error", err)
			h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
			return
		}
		if sess == nil {
			h.writeError(w, r, http.StatusUnauthorized, "ErrUnauthenticated")
			return
		}

		user, err := h.store.GetUserByID(sess.UserID)
		if err != nil {
			slog.Error("failed to get user", "user_id", sess.UserID, "error", err)
			h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
			return
		}
		if user == nil || !user.Active {
			h.writeError(w, r, http.StatusUnauthorized, "ErrUnauthenticated")
			return
		}

		ctx := model.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects non-admin callers. Must run after requireAuth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := model.UserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			h.writeError(w, r, http.StatusForbidden, "ErrForbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, prefix))
}

type registerBody struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || len(body.Password) < 8 {
		h.writeError(w, r, http.StatusUnprocessableEntity, "ErrValidation")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	id, err := h.store.CreateUser(model.User{
		Username:     body.Username,
		DisplayName:  body.DisplayName,
		PasswordHash: string(hash),
		IsAdmin:      false,
		Active:       true,
	})
	if errors.Is(err, store.ErrDuplicate) {
		h.writeError(w, r, http.StatusConflict, "ErrUserDuplicate")
		return
	}
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	user, err := h.store.GetUserByID(id)
	if err != nil || user == nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "ErrValidation")
		return
	}

	user, err := h.store.GetUserByUsername(strings.TrimSpace(body.Username))
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}
	if user == nil || !user.Active {
		h.writeError(w, r, http.StatusUnauthorized, "ErrInvalidCredentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		h.writeError(w, r, http.StatusUnauthorized, "ErrInvalidCredentials")
		return
	}

	token, err := h.store.CreateAuthSession(user.ID)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if err := h.store.DeleteAuthSession(token); err != nil {
			slog.Error("failed to delete auth session", "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
