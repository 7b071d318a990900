package dto

import "time"

// CreateQuestionRequest pregunta dentro del alta de encuesta. Options es un arreglo JSON de strings.
type CreateQuestionRequest struct {
	Question   string  `json:"question" validate:"required,notblank"`
	Type       string  `json:"type" validate:"required,oneof=text radio checkbox select"`
	Options    *string `json:"options"`
	IsRequired bool    `json:"isRequired"`
	Order      *int    `json:"order" validate:"omitempty,min=0"`
}

// CreateSurveyRequest alta de encuesta con sus preguntas.
type CreateSurveyRequest struct {
	Title       string                  `json:"title" validate:"required,notblank,max=255"`
	Description string                  `json:"description"`
	Questions   []CreateQuestionRequest `json:"questions" validate:"dive"`
	IsActive    *bool                   `json:"isActive"`
	EndDate     *Date                   `json:"endDate"`
}

// QuestionResponse pregunta publicada.
type QuestionResponse struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Type       string  `json:"type"`
	Options    *string `json:"options"`
	IsRequired bool    `json:"isRequired"`
	Order      int     `json:"order"`
}

// SurveyResponse encuesta con preguntas ordenadas.
type SurveyResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	IsActive    bool               `json:"isActive"`
	EndDate     *time.Time         `json:"endDate"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// AnswerRequest respuesta a una pregunta.
type AnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

// SubmitSurveyRequest envío de respuestas. La identidad sale del token, no del cuerpo.
type SubmitSurveyRequest struct {
	Responses   []AnswerRequest `json:"responses" validate:"required,min=1,dive"`
	IsAnonymous *bool           `json:"isAnonymous"`
}

// SubmitSurveyResponse confirmación del envío.
type SubmitSurveyResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

// ResponseEntry una respuesta dentro de los resultados.
type ResponseEntry struct {
	Answer      string    `json:"answer"`
	SubmittedAt time.Time `json:"submittedAt"`
	UserID      *string   `json:"userId,omitempty"`
	Username    *string   `json:"username,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
}

// OptionCount conteo de una opción en preguntas de selección.
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// QuestionResult resultados agregados de una pregunta.
type QuestionResult struct {
	QuestionID     string          `json:"questionId"`
	Question       string          `json:"question"`
	Type           string          `json:"type"`
	TotalResponses int             `json:"totalResponses"`
	OptionCounts   []OptionCount   `json:"optionCounts,omitempty"`
	Responses      []ResponseEntry `json:"responses"`
}

// SurveyHeader datos básicos de la encuesta en los resultados.
type SurveyHeader struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SurveyResultsResponse resultados completos de una encuesta.
type SurveyResultsResponse struct {
	Survey           SurveyHeader     `json:"survey"`
	Results          []QuestionResult `json:"results"`
	TotalSubmissions int              `json:"totalSubmissions"`
}
