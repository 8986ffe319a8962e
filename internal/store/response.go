package store

import (
	"database/sql"
	"time"

	"github.com/aulavirtual/tutoria/internal/model"
)

// RegisterResponse records a graded answer. The first submission for a
// (user, exercise) pair inserts a response row and bumps the theme progress
// counters; later submissions overwrite the stored answer and grade without
// touching progress. Both writes happen inside one transaction, opened as
// BEGIN IMMEDIATE via the DSN so concurrent submissions serialize at Begin
// and wait on the busy timeout.
func (s *Store) RegisterResponse(r model.UserResponse, themeID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	var existingID int64
	err = tx.QueryRow(
		`SELECT id FROM user_responses WHERE user_id = ? AND exercise_id = ?`,
		r.UserID, r.ExerciseID,
	).Scan(&existingID)

	switch {
	case err == nil:
		// Resubmission: overwrite, never re-increment progress.
		_, err = tx.Exec(
			`UPDATE user_responses SET answer = ?, correct = ?, time_sec = ? WHERE id = ?`,
			r.Answer, r.Correct, r.TimeSec, existingID,
		)
		if err != nil {
			return err
		}

	case err == sql.ErrNoRows:
		_, err = tx.Exec(
			`INSERT INTO user_responses (user_id, exercise_id, answer, correct, time_sec, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.UserID, r.ExerciseID, r.Answer, r.Correct, r.TimeSec, now,
		)
		if isUniqueViolation(err) {
			// Lost a first-submission race: the winner's row and progress
			// bump are already committed, so fall back to resubmission
			// semantics.
			_, err = tx.Exec(
				`UPDATE user_responses SET answer = ?, correct = ?, time_sec = ?
				 WHERE user_id = ? AND exercise_id = ?`,
				r.Answer, r.Correct, r.TimeSec, r.UserID, r.ExerciseID,
			)
			if err != nil {
				return err
			}
			return tx.Commit()
		}
		if err != nil {
			return err
		}

		correctInc := 0
		if r.Correct {
			correctInc = 1
		}
		_, err = tx.Exec(
			`INSERT INTO user_theme_progress (user_id, theme_id, completed, correct, updated_at)
			 VALUES (?, ?, 1, ?, ?)
			 ON CONFLICT(user_id, theme_id) DO UPDATE SET
			   completed = completed + 1,
			   correct = correct + excluded.correct,
			   updated_at = excluded.updated_at`,
			r.UserID, themeID, correctInc, now,
		)
		if err != nil {
			return err
		}

	default:
		return err
	}

	return tx.Commit()
}

// GetResponse returns the response row for a (user, exercise) pair, or
// (nil, nil) when none exists.
func (s *Store) GetResponse(userID, exerciseID int64) (*model.UserResponse, error) {
	var r model.UserResponse
	err := s.db.QueryRow(
		`SELECT id, user_id, exercise_id, answer, correct, time_sec, created_at
		 FROM user_responses WHERE user_id = ? AND exercise_id = ?`,
		userID, exerciseID,
	).Scan(&r.ID, &r.UserID, &r.ExerciseID, &r.Answer, &r.Correct, &r.TimeSec, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResponsesByUser returns all of a user's responses, oldest first.
func (s *Store) ListResponsesByUser(userID int64) ([]model.UserResponse, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, exercise_id, answer, correct, time_sec, created_at
		 FROM user_responses WHERE user_id = ? ORDER BY created_at, id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []model.UserResponse
	for rows.Next() {
		var r model.UserResponse
		if err := rows.Scan(&r.ID, &r.UserID, &r.ExerciseID, &r.Answer, &r.Correct, &r.TimeSec, &r.CreatedAt); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// GetProgress returns the progress counters for a (user, theme) pair, or
// (nil, nil) when the user has not answered anything under the theme.
func (s *Store) GetProgress(userID, themeID int64) (*model.ThemeProgress, error) {
	var p model.ThemeProgress
	err := s.db.QueryRow(
		`SELECT user_id, theme_id, completed, correct, updated_at
		 FROM user_theme_progress WHERE user_id = ? AND theme_id = ?`,
		userID, themeID,
	).Scan(&p.UserID, &p.ThemeID, &p.Completed, &p.Correct, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
