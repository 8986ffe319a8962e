package store

import (
	"github.com/aulavirtual/tutoria/internal/stats"
)

// ThemeStatsByUser returns per-theme response counters for one user,
// joined through exercises. Themes the user never touched are absent.
func (s *Store) ThemeStatsByUser(userID int64) ([]stats.ThemeStat, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.name, COUNT(r.id), COALESCE(SUM(r.correct), 0)
		 FROM user_responses r
		 JOIN exercises e ON e.id = r.exercise_id
		 JOIN themes t ON t.id = e.theme_id
		 WHERE r.user_id = ?
		 GROUP BY t.id, t.name
		 ORDER BY t.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []stats.ThemeStat
	for rows.Next() {
		var st stats.ThemeStat
		if err := rows.Scan(&st.ThemeID, &st.Theme, &st.Done, &st.Correct); err != nil {
			return nil, err
		}
		st.Ratio = stats.Percent(st.Correct, st.Done)
		out = append(out, st)
	}
	return out, rows.Err()
}
