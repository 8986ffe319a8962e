package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	appI18n "github.com/aulavirtual/tutoria/internal/i18n"
	"github.com/aulavirtual/tutoria/internal/llm"
	"github.com/aulavirtual/tutoria/internal/model"
	"github.com/aulavirtual/tutoria/internal/store"
)

const testPassword = "secreta123"

type env struct {
	store  *store.Store
	llm    *llm.MockCompleter
	router http.Handler
}

func newTestEnv(t *testing.T, responses ...llm.MockResponse) *env {
	t.Helper()

	if err := appI18n.Init("es"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	s, err := store.New(":memory:", 1)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	mock := llm.NewMockCompleter(responses...)
	h := New(s, mock, Config{DefaultModel: "llama3.2"})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(appI18n.Middleware("es"))
	h.Routes(r)

	return &env{store: s, llm: mock, router: r}
}

// createUser inserts a user and returns it with a fresh session token.
func (e *env) createUser(t *testing.T, username string, admin bool) (*model.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	id, err := e.store.CreateUser(model.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: string(hash),
		IsAdmin:      admin,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	user, err := e.store.GetUserByID(id)
	if err != nil || user == nil {
		t.Fatalf("GetUserByID: %v", err)
	}

	token, err := e.store.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}
	return user, token
}

func (e *env) createTheme(t *testing.T, name string) int64 {
	t.Helper()
	id, err := e.store.CreateTheme(model.Theme{Name: name})
	if err != nil {
		t.Fatalf("CreateTheme: %v", err)
	}
	return id
}

func (e *env) createExercise(t *testing.T, themeID int64, statement, answer, explanation string) model.Exercise {
	t.Helper()
	ex, err := e.store.InsertExercise(model.Exercise{
		Statement:   statement,
		Type:        "corta",
		Difficulty:  "fácil",
		Answer:      answer,
		Explanation: explanation,
		ThemeID:     themeID,
	})
	if err != nil {
		t.Fatalf("InsertExercise: %v", err)
	}
	return ex
}

// doJSON performs a request against the router and returns the recorder.
func (e *env) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// errorDetail extracts the detail string of an error response.
func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	decodeResponse(t, rec, &body)
	return body.Detail
}
