package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/aulavirtual/tutoria/internal/model"
)

// CreateTheme inserts a theme. Returns ErrDuplicate when a theme with the
// same name (case-insensitively) already exists.
func (s *Store) CreateTheme(t model.Theme) (int64, error) {
	existing, err := s.GetThemeByName(t.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicate
	}

	res, err := s.db.Exec(
		`INSERT INTO themes (name, description, subject_id) VALUES (?, ?, ?)`,
		strings.TrimSpace(t.Name), t.Description, t.SubjectID,
	)
	if isUniqueViolation(err) {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetTheme returns a theme by ID.
func (s *Store) GetTheme(id int64) (model.Theme, error) {
	var t model.Theme
	err := s.db.QueryRow(
		`SELECT id, name, description, subject_id FROM themes WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.SubjectID)
	if err == sql.ErrNoRows {
		return model.Theme{}, ErrNotFound
	}
	return t, err
}

// GetThemeByName returns the theme whose name equals the given one under
// Unicode case folding, ignoring surrounding whitespace. The comparison is
// done in Go because sqlite's NOCASE only folds ASCII and theme names are
// Spanish. Returns (nil, ErrNotFound) when no theme matches.
func (s *Store) GetThemeByName(name string) (*model.Theme, error) {
	name = strings.TrimSpace(name)

	rows, err := s.db.Query(`SELECT id, name, description, subject_id FROM themes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.SubjectID); err != nil {
			return nil, err
		}
		if strings.EqualFold(strings.TrimSpace(t.Name), name) {
			return &t, rows.Err()
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// ListThemes returns all themes ordered by name.
func (s *Store) ListThemes() ([]model.Theme, error) {
	rows, err := s.db.Query(`SELECT id, name, description, subject_id FROM themes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var themes []model.Theme
	for rows.Next() {
		var t model.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.SubjectID); err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}

// DeleteTheme removes a theme. Exercises under it (and their responses)
// cascade away.
func (s *Store) DeleteTheme(id int64) error {
	res, err := s.db.Exec(`DELETE FROM themes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
