package store

import (
	"database/sql"
	"time"

	"github.com/aulavirtual/tutoria/internal/model"
)

// CreateConversation starts a conversation for a (user, exercise) pair.
func (s *Store) CreateConversation(userID, exerciseID int64) (model.ChatConversation, error) {
	conv := model.ChatConversation{
		UserID:     userID,
		ExerciseID: exerciseID,
		CreatedAt:  time.Now().UTC(),
	}
	res, err := s.db.Exec(
		`INSERT INTO chat_conversations (user_id, exercise_id, created_at) VALUES (?, ?, ?)`,
		conv.UserID, conv.ExerciseID, conv.CreatedAt,
	)
	if err != nil {
		return model.ChatConversation{}, err
	}
	conv.ID, err = res.LastInsertId()
	return conv, err
}

// GetConversation returns a conversation by ID, without messages.
func (s *Store) GetConversation(id int64) (model.ChatConversation, error) {
	var c model.ChatConversation
	err := s.db.QueryRow(
		`SELECT id, user_id, exercise_id, created_at FROM chat_conversations WHERE id = ?`, id,
	).Scan(&c.ID, &c.UserID, &c.ExerciseID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.ChatConversation{}, ErrNotFound
	}
	return c, err
}

// FirstConversation returns the earliest conversation for a (user, exercise)
// pair, or (nil, nil) when none exists. Concurrent first messages may create
// more than one conversation; reads always pick the earliest.
func (s *Store) FirstConversation(userID, exerciseID int64) (*model.ChatConversation, error) {
	var c model.ChatConversation
	err := s.db.QueryRow(
		`SELECT id, user_id, exercise_id, created_at FROM chat_conversations
		 WHERE user_id = ? AND exercise_id = ?
		 ORDER BY created_at, id LIMIT 1`,
		userID, exerciseID,
	).Scan(&c.ID, &c.UserID, &c.ExerciseID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListConversationsByExercise returns all conversations a user has for an
// exercise, newest first, each with its messages loaded.
func (s *Store) ListConversationsByExercise(userID, exerciseID int64) ([]model.ChatConversation, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, exercise_id, created_at FROM chat_conversations
		 WHERE user_id = ? AND exercise_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID, exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []model.ChatConversation
	for rows.Next() {
		var c model.ChatConversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.ExerciseID, &c.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range conversations {
		msgs, err := s.GetChatMessages(conversations[i].ID)
		if err != nil {
			return nil, err
		}
		conversations[i].Messages = msgs
	}
	return conversations, nil
}

// AddChatMessage appends a message to a conversation and returns it with
// its assigned ID and timestamp.
func (s *Store) AddChatMessage(msg model.ChatMessage) (model.ChatMessage, error) {
	msg.CreatedAt = time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO chat_messages (conversation_id, sender_type, message, created_at)
		 VALUES (?, ?, ?, ?)`,
		msg.ConversationID, msg.SenderType, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return model.ChatMessage{}, err
	}
	msg.ID, err = res.LastInsertId()
	return msg, err
}

// GetChatMessages returns all messages of a conversation in replay order:
// created_at ascending, ties broken by ID.
func (s *Store) GetChatMessages(conversationID int64) ([]model.ChatMessage, error) {
	rows, err := s.db.Query(
		`SELECT id, conversation_id, sender_type, message, created_at
		 FROM chat_messages WHERE conversation_id = ?
		 ORDER BY created_at, id`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderType, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
