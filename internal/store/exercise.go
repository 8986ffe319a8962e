package store

import (
	"database/sql"
	"time"

	"github.com/aulavirtual/tutoria/internal/model"
)

// InsertExercise persists an exercise and returns it with its assigned ID
// and creation time.
func (s *Store) InsertExercise(e model.Exercise) (model.Exercise, error) {
	e.CreatedAt = time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO exercises (statement, type, difficulty, answer, explanation, created_at, theme_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Statement, e.Type, e.Difficulty, e.Answer, e.Explanation, e.CreatedAt, e.ThemeID,
	)
	if err != nil {
		return model.Exercise{}, err
	}
	e.ID, err = res.LastInsertId()
	return e, err
}

// GetExercise returns an exercise by ID.
func (s *Store) GetExercise(id int64) (model.Exercise, error) {
	var e model.Exercise
	err := s.db.QueryRow(
		`SELECT id, statement, type, difficulty, answer, explanation, created_at, theme_id
		 FROM exercises WHERE id = ?`, id,
	).Scan(&e.ID, &e.Statement, &e.Type, &e.Difficulty, &e.Answer, &e.Explanation, &e.CreatedAt, &e.ThemeID)
	if err == sql.ErrNoRows {
		return model.Exercise{}, ErrNotFound
	}
	return e, err
}

// ListExercisesByTheme returns all exercises under a theme, oldest first.
func (s *Store) ListExercisesByTheme(themeID int64) ([]model.Exercise, error) {
	rows, err := s.db.Query(
		`SELECT id, statement, type, difficulty, answer, explanation, created_at, theme_id
		 FROM exercises WHERE theme_id = ? ORDER BY created_at, id`, themeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []model.Exercise
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.Statement, &e.Type, &e.Difficulty, &e.Answer, &e.Explanation, &e.CreatedAt, &e.ThemeID); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
