package entity

import "time"

// Tipos de pregunta.
const (
	QuestionText     = "text"
	QuestionRadio    = "radio"
	QuestionCheckbox = "checkbox"
	QuestionSelect   = "select"
)

// Survey encuesta con preguntas ordenadas.
type Survey struct {
	ID          string
	Title       string
	Description string
	IsActive    bool
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Questions   []Question
}

// Question pregunta de una encuesta. Options es un arreglo JSON de strings.
type Question struct {
	ID         string
	SurveyID   string
	Question   string
	Type       string
	Options    *string
	IsRequired bool
	Order      int
	CreatedAt  time.Time
}

// Response respuesta a una pregunta. SubmissionID agrupa las respuestas de un mismo envío.
type Response struct {
	ID           string
	QuestionID   string
	SubmissionID string
	Answer       string
	IPAddress    *string
	SubmittedAt  time.Time
	IsAnonymous  bool
	UserID       *string
	Username     *string
}
