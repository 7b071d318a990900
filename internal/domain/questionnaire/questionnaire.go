// Package questionnaire valida la forma de las preguntas de encuesta y las respuestas enviadas.
// Las opciones de radio/checkbox/select se guardan como arreglo JSON de strings; las respuestas
// de checkbox también llegan como arreglo JSON.
package questionnaire

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// ValidType indica si t es un tipo de pregunta conocido.
func ValidType(t string) bool {
	switch t {
	case entity.QuestionText, entity.QuestionRadio, entity.QuestionCheckbox, entity.QuestionSelect:
		return true
	}
	return false
}

// IsChoice indica si el tipo exige opciones.
func IsChoice(t string) bool {
	return t == entity.QuestionRadio || t == entity.QuestionCheckbox || t == entity.QuestionSelect
}

// ParseOptions decodifica el arreglo JSON de opciones. nil o vacío devuelve lista vacía.
func ParseOptions(raw *string) ([]string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []string{}, nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(*raw), &opts); err != nil {
		return nil, fmt.Errorf("%w: options debe ser un arreglo JSON de strings", domain.ErrInvalidInput)
	}
	return opts, nil
}

// ValidateQuestion verifica tipo, texto y opciones de una pregunta nueva.
func ValidateQuestion(q *entity.Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: el texto de la pregunta es requerido", domain.ErrInvalidInput)
	}
	if !ValidType(q.Type) {
		return fmt.Errorf("%w: tipo de pregunta desconocido %q", domain.ErrInvalidInput, q.Type)
	}
	opts, err := ParseOptions(q.Options)
	if err != nil {
		return err
	}
	if !IsChoice(q.Type) {
		return nil
	}
	if len(opts) == 0 {
		return fmt.Errorf("%w: la pregunta %q de tipo %s requiere opciones", domain.ErrInvalidInput, q.Question, q.Type)
	}
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("%w: opción vacía en %q", domain.ErrInvalidInput, q.Question)
		}
		if seen[o] {
			return fmt.Errorf("%w: opción repetida %q en %q", domain.ErrInvalidInput, o, q.Question)
		}
		seen[o] = true
	}
	return nil
}

// Choices devuelve las opciones elegidas en answer: una para radio/select, varias para checkbox.
// Para texto devuelve nil.
func Choices(q *entity.Question, answer string) ([]string, error) {
	switch q.Type {
	case entity.QuestionRadio, entity.QuestionSelect:
		return []string{answer}, nil
	case entity.QuestionCheckbox:
		var picked []string
		if err := json.Unmarshal([]byte(answer), &picked); err != nil {
			return nil, fmt.Errorf("%w: la respuesta a %q debe ser un arreglo JSON", domain.ErrInvalidInput, q.Question)
		}
		return picked, nil
	}
	return nil, nil
}

// ValidateAnswer verifica que la respuesta sea compatible con la pregunta.
func ValidateAnswer(q *entity.Question, answer string) error {
	if !IsChoice(q.Type) {
		return nil
	}
	opts, err := ParseOptions(q.Options)
	if err != nil {
		return err
	}
	allowed := make(map[string]bool, len(opts))
	for _, o := range opts {
		allowed[o] = true
	}
	picked, err := Choices(q, answer)
	if err != nil {
		return err
	}
	for _, p := range picked {
		if !allowed[p] {
			return fmt.Errorf("%w: %q no es una opción de %q", domain.ErrInvalidInput, p, q.Question)
		}
	}
	return nil
}

// Answered indica si answer cuenta como respuesta a una pregunta obligatoria.
func Answered(q *entity.Question, answer string) bool {
	if strings.TrimSpace(answer) == "" {
		return false
	}
	if q.Type == entity.QuestionCheckbox {
		picked, err := Choices(q, answer)
		return err == nil && len(picked) > 0
	}
	return true
}
