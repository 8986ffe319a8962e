// Package prompts builds the system prompts sent to the LLM.
package prompts

import (
	"fmt"
	"strings"

	"github.com/aulavirtual/tutoria/internal/model"
)

// TutorModel is the model alias used for tutoring conversations.
const TutorModel = "profesor"

// TutorTemperature is the sampling temperature for tutoring turns.
const TutorTemperature = 0.7

// Tutor builds the system prompt for a per-exercise tutoring conversation.
// It embeds the exercise context and instructs the model to guide the
// learner without revealing the answer.
func Tutor(ex model.Exercise) string {
	var sb strings.Builder
	sb.WriteString("Eres un tutor virtual amigable que ayuda a un estudiante con un ejercicio.\n\n")
	sb.WriteString(fmt.Sprintf("EJERCICIO #%d: %s\n", ex.ID, ex.Statement))
	sb.WriteString("TIPO: " + ex.Type + "\n")
	sb.WriteString("DIFICULTAD: " + ex.Difficulty + "\n\n")
	sb.WriteString("INSTRUCCIONES:\n")
	sb.WriteString("- Guía al estudiante paso a paso con pistas y preguntas.\n")
	sb.WriteString("- NO reveles la respuesta, salvo que el estudiante la pida explícitamente o esté claramente atascado.\n")
	sb.WriteString("- Si el estudiante se desvía del tema, redirígelo amablemente al ejercicio.\n")
	sb.WriteString("- Responde siempre en el idioma del estudiante.\n")
	return sb.String()
}
