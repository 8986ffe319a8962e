package handler

import (
	"net/http"
	"testing"

	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/stats"
)

func seedResponses(t *testing.T, e *env, userID int64) {
	t.Helper()
	themeID := e.createTheme(t, "Fracciones")
	ex1 := e.createExercise(t, themeID, "1/2 + 1/4", "3/4", "")
	ex2 := e.createExercise(t, themeID, "1/3 + 1/3", "2/3", "")

	for _, r := range []model.UserResponse{
		{UserID: userID, ExerciseID: ex1.ID, Answer: "3/4", Correct: true},
		{UserID: userID, ExerciseID: ex2.ID, Answer: "1", Correct: false},
	} {
		if err := e.store.RegisterResponse(r, themeID); err != nil {
			t.Fatalf("RegisterResponse: %v", err)
		}
	}
}

func TestStatsOverview(t *testing.T) {
	e := newTestEnv(t)
	user, token := e.createUser(t, "ana", false)
	seedResponses(t, e, user.ID)

	rec := e.doJSON(t, http.MethodGet, "/api/stats/overview", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got stats.Overview
	decodeResponse(t, rec, &got)
	if got.Done != 2 || got.Correct != 1 || got.Ratio != 50.0 {
		t.Errorf("overview = %+v, want done=2 correct=1 ratio=50", got)
	}
}

func TestStatsOverviewEmpty(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.createUser(t, "ana", false)

	rec := e.doJSON(t, http.MethodGet, "/api/stats/overview", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got stats.Overview
	decodeResponse(t, rec, &got)
	if got.Done != 0 || got.Ratio != 0.0 || got.Trend24h != 0.0 {
		t.Errorf("overview = %+v, want zeros", got)
	}
}

func TestStatsTimeline(t *testing.T) {
	e := newTestEnv(t)
	user, token := e.createUser(t, "ana", false)
	seedResponses(t, e, user.ID)

	rec := e.doJSON(t, http.MethodGet, "/api/stats/timeline", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var points []stats.TimelinePoint
	decodeResponse(t, rec, &points)
	// Both responses landed today.
	if len(points) != 1 {
		t.Fatalf("expected 1 bucket, got %+v", points)
	}
	if points[0].CorrectRatio != 50.0 {
		t.Errorf("correctRatio = %v, want 50", points[0].CorrectRatio)
	}
}

func TestStatsByTheme(t *testing.T) {
	e := newTestEnv(t)
	user, token := e.createUser(t, "ana", false)
	seedResponses(t, e, user.ID)

	rec := e.doJSON(t, http.MethodGet, "/api/stats/by-theme", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var list []stats.ThemeStat
	decodeResponse(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 theme, got %+v", list)
	}
	if list[0].Theme != "Fracciones" || list[0].Done != 2 || list[0].Correct != 1 || list[0].Ratio != 50.0 {
		t.Errorf("theme stats = %+v", list[0])
	}
}

func TestStatsByThemeEmpty(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.createUser(t, "ana", false)

	rec := e.doJSON(t, http.MethodGet, "/api/stats/by-theme", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Empty JSON array, not null.
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty array", body)
	}
}
