package repository

import (
	"context"

	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// SurveyRepository define el puerto de persistencia para Survey y sus Question.
type SurveyRepository interface {
	// Create persiste la encuesta y sus preguntas de forma atómica.
	Create(ctx context.Context, survey *entity.Survey) error
	// GetByID carga la encuesta con preguntas ordenadas por order.
	GetByID(ctx context.Context, id string) (*entity.Survey, error)
	List(ctx context.Context) ([]*entity.Survey, error)
	ListActive(ctx context.Context) ([]*entity.Survey, error)
	// Delete devuelve false si la encuesta no existe.
	Delete(ctx context.Context, id string) (bool, error)
}

// ResponseRepository define el puerto de persistencia para Response.
type ResponseRepository interface {
	CreateBatch(ctx context.Context, responses []*entity.Response) error
	ListBySurvey(ctx context.Context, surveyID string) ([]*entity.Response, error)
}
