package model

import (
	"context"
	"time"
)

// User represents a system user. Admins can manage themes; everyone else
// is a regular learner.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type userCtxKey struct{}

// ContextWithUser stores the authenticated caller in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated caller from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

// Theme is a topic grouping exercises within a subject. Names are stored as
// given but looked up case-insensitively.
type Theme struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SubjectID   *int64 `json:"subject_id,omitempty"`
}

// Exercise is a single problem with a canonical answer, tied to one theme.
// Immutable after creation. The canonical answer is never serialized;
// handlers decide when to reveal it.
type Exercise struct {
	ID          int64     `json:"id"`
	Statement   string    `json:"enunciado"`
	Type        string    `json:"tipo"`
	Difficulty  string    `json:"dificultad"`
	Answer      string    `json:"-"`
	Explanation string    `json:"explicacion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ThemeID     int64     `json:"theme_id"`
}

// UserResponse is a user's graded answer to an exercise. At most one row
// exists per (user, exercise); resubmissions overwrite it.
type UserResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ExerciseID int64     `json:"exercise_id"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	TimeSec    *int      `json:"time_sec,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ThemeProgress holds per-user aggregate counters over one theme.
// Invariant: 0 <= Correct <= Completed.
type ThemeProgress struct {
	UserID    int64     `json:"user_id"`
	ThemeID   int64     `json:"theme_id"`
	Completed int       `json:"completed"`
	Correct   int       `json:"correct"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SenderType identifies who wrote a chat message.
type SenderType string

const (
	SenderUser SenderType = "user"
	SenderAI   SenderType = "ai"
)

// ChatConversation is an ordered chat log between one user and the AI tutor
// about one exercise.
type ChatConversation struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	ExerciseID int64         `json:"exercise_id"`
	CreatedAt  time.Time     `json:"created_at"`
	Messages   []ChatMessage `json:"messages"`
}

// ChatMessage is one turn in a conversation. Append-only, never mutated.
type ChatMessage struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderType     SenderType `json:"sender_type"`
	Message        string     `json:"message"`
	CreatedAt      time.Time  `json:"created_at"`
}
