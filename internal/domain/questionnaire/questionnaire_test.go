package questionnaire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/questionnaire"
)

func strptr(s string) *string { return &s }

func TestValidateQuestion(t *testing.T) {
	cases := []struct {
		name string
		q    entity.Question
		ok   bool
	}{
		{"texto sin opciones", entity.Question{Question: "¿Sugerencias?", Type: entity.QuestionText}, true},
		{"radio con opciones", entity.Question{Question: "¿Satisfecho?", Type: entity.QuestionRadio, Options: strptr(`["sí","no"]`)}, true},
		{"radio sin opciones", entity.Question{Question: "¿Satisfecho?", Type: entity.QuestionRadio}, false},
		{"opciones no JSON", entity.Question{Question: "x", Type: entity.QuestionSelect, Options: strptr("a,b")}, false},
		{"opción repetida", entity.Question{Question: "x", Type: entity.QuestionCheckbox, Options: strptr(`["a","a"]`)}, false},
		{"tipo desconocido", entity.Question{Question: "x", Type: "slider"}, false},
		{"sin texto", entity.Question{Question: "  ", Type: entity.QuestionText}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := questionnaire.ValidateQuestion(&tc.q)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestValidateAnswer(t *testing.T) {
	radio := &entity.Question{Question: "¿Satisfecho?", Type: entity.QuestionRadio, Options: strptr(`["sí","no"]`)}
	check := &entity.Question{Question: "¿Qué servicios usa?", Type: entity.QuestionCheckbox, Options: strptr(`["soporte","ventas","otros"]`)}
	text := &entity.Question{Question: "Comentarios", Type: entity.QuestionText}

	assert.NoError(t, questionnaire.ValidateAnswer(radio, "sí"))
	assert.ErrorIs(t, questionnaire.ValidateAnswer(radio, "quizás"), domain.ErrInvalidInput)

	assert.NoError(t, questionnaire.ValidateAnswer(check, `["soporte","otros"]`))
	assert.ErrorIs(t, questionnaire.ValidateAnswer(check, `["marketing"]`), domain.ErrInvalidInput)
	assert.ErrorIs(t, questionnaire.ValidateAnswer(check, "soporte"), domain.ErrInvalidInput)

	assert.NoError(t, questionnaire.ValidateAnswer(text, "cualquier cosa"))
}

func TestAnswered(t *testing.T) {
	check := &entity.Question{Type: entity.QuestionCheckbox, Options: strptr(`["a"]`)}
	text := &entity.Question{Type: entity.QuestionText}

	assert.False(t, questionnaire.Answered(text, "   "))
	assert.True(t, questionnaire.Answered(text, "ok"))
	assert.False(t, questionnaire.Answered(check, "[]"))
	assert.True(t, questionnaire.Answered(check, `["a"]`))
}

func TestChoices(t *testing.T) {
	sel := &entity.Question{Type: entity.QuestionSelect}
	picked, err := questionnaire.Choices(sel, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, picked)

	text := &entity.Question{Type: entity.QuestionText}
	picked, err = questionnaire.Choices(text, "libre")
	require.NoError(t, err)
	assert.Nil(t, picked)
}
