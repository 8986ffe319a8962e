// Package exercise parses LLM-generated exercise payloads and grades
// user answers against the canonical solution.
package exercise

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Generated is the structured exercise payload produced by the LLM.
type Generated struct {
	Theme       string `json:"tema"`
	Statement   string `json:"enunciado"`
	Type        string `json:"tipo"`
	Difficulty  string `json:"dificultad"`
	Answer      string `json:"respuesta"`
	Explanation string `json:"explicacion"`
}

// ErrInvalidContent indicates the LLM content could not be decoded into a
// complete exercise payload.
type ErrInvalidContent struct {
	Err error
}

func (e *ErrInvalidContent) Error() string {
	return fmt.Sprintf("invalid LLM content: %v", e.Err)
}

func (e *ErrInvalidContent) Unwrap() error { return e.Err }

// ParseGenerated decodes the content of an LLM completion into a Generated
// exercise. The content may be wrapped in a markdown code fence
// (```json … ``` or ``` … ```), which is stripped before decoding.
func ParseGenerated(content string) (*Generated, error) {
	cleaned := stripFence(content)

	var g Generated
	if err := json.Unmarshal([]byte(cleaned), &g); err != nil {
		return nil, &ErrInvalidContent{Err: fmt.Errorf("decode exercise JSON: %w", err)}
	}

	required := []struct {
		key string
		val string
	}{
		{"tema", g.Theme},
		{"enunciado", g.Statement},
		{"tipo", g.Type},
		{"dificultad", g.Difficulty},
		{"respuesta", g.Answer},
	}
	for _, f := range required {
		if strings.TrimSpace(f.val) == "" {
			return nil, &ErrInvalidContent{Err: fmt.Errorf("missing field %q", f.key)}
		}
	}

	return &g, nil
}

// stripFence removes a surrounding markdown code fence, if present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
