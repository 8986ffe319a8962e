package prompts

import (
	"strings"
	"testing"

	"github.com/aulavirtual/tutoria/internal/model"
)

func TestTutor(t *testing.T) {
	ex := model.Exercise{
		ID:         42,
		Statement:  "¿Cuánto es 1/2 + 1/4?",
		Type:       "corta",
		Difficulty: "fácil",
		Answer:     "3/4",
	}

	prompt := Tutor(ex)

	for _, want := range []string{
		"EJERCICIO #42",
		"¿Cuánto es 1/2 + 1/4?",
		"TIPO: corta",
		"DIFICULTAD: fácil",
		"NO reveles la respuesta",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// The canonical answer must never leak into the prompt context.
	if strings.Contains(prompt, "3/4") {
		t.Error("prompt leaks the canonical answer")
	}
}
