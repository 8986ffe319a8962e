package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/aulavirtual/tutoria/internal/model"
)

func TestCreateTheme(t *testing.T) {
	e := newTestEnv(t)
	_, adminToken := e.createUser(t, "admin", true)

	rec := e.doJSON(t, http.MethodPost, "/api/themes", adminToken, map[string]any{
		"name":        "Geometría",
		"description": "Figuras y áreas",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var theme model.Theme
	decodeResponse(t, rec, &theme)
	if theme.ID == 0 || theme.Name != "Geometría" {
		t.Errorf("theme = %+v", theme)
	}

	// Duplicate name, case variant.
	rec = e.doJSON(t, http.MethodPost, "/api/themes", adminToken, map[string]any{
		"name": "geometría",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}

	// Blank name.
	rec = e.doJSON(t, http.MethodPost, "/api/themes", adminToken, map[string]any{
		"name": "   ",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestCreateThemeRequiresAdmin(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.createUser(t, "ana", false)

	rec := e.doJSON(t, http.MethodPost, "/api/themes", token, map[string]any{
		"name": "Geometría",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := errorDetail(t, rec); got != "Acceso no autorizado" {
		t.Errorf("detail = %q, want 'Acceso no autorizado'", got)
	}
}

func TestDeleteTheme(t *testing.T) {
	e := newTestEnv(t)
	_, adminToken := e.createUser(t, "admin", true)
	_, userToken := e.createUser(t, "ana", false)
	themeID := e.createTheme(t, "Geometría")

	// Non-admins cannot delete.
	rec := e.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/themes/%d", themeID), userToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	rec = e.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/themes/%d", themeID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec = e.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/themes/%d", themeID), adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for deleted theme", rec.Code)
	}
}

func TestListThemeExercises(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.createUser(t, "ana", false)
	themeID := e.createTheme(t, "Fracciones")
	e.createExercise(t, themeID, "1/2 + 1/4", "3/4", "")
	e.createExercise(t, themeID, "1/3 + 1/3", "2/3", "")

	rec := e.doJSON(t, http.MethodGet, fmt.Sprintf("/api/themes/%d/exercises", themeID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var list []model.Exercise
	decodeResponse(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(list))
	}
	// Canonical answers never serialize.
	if strings.Contains(rec.Body.String(), "3/4") {
		t.Errorf("response leaks canonical answers: %s", rec.Body.String())
	}

	rec = e.doJSON(t, http.MethodGet, "/api/themes/9999/exercises", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListThemes(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.createUser(t, "ana", false)

	rec := e.doJSON(t, http.MethodGet, "/api/themes", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []model.Theme
	decodeResponse(t, rec, &list)
	if len(list) != 0 {
		t.Errorf("expected empty list, got %+v", list)
	}

	e.createTheme(t, "Fracciones")
	e.createTheme(t, "Álgebra")

	rec = e.doJSON(t, http.MethodGet, "/api/themes", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	decodeResponse(t, rec, &list)
	if len(list) != 2 {
		t.Errorf("expected 2 themes, got %+v", list)
	}
}
