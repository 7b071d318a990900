package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

var _ repository.SurveyRepository = (*SurveyRepo)(nil)

// SurveyRepo implementación de SurveyRepository sobre PostgreSQL.
// Necesita el pool (no un Querier) porque Create abre su propia transacción.
type SurveyRepo struct {
	pool *pgxpool.Pool
}

// NewSurveyRepository construye el adaptador de encuestas.
func NewSurveyRepository(pool *pgxpool.Pool) *SurveyRepo {
	return &SurveyRepo{pool: pool}
}

const surveyColumns = `id, title, description, is_active, end_date, created_at, updated_at`

// Create inserta la encuesta y sus preguntas en una sola transacción.
func (r *SurveyRepo) Create(ctx context.Context, sv *entity.Survey) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO surveys (`+surveyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sv.ID, sv.Title, sv.Description, sv.IsActive, sv.EndDate, sv.CreatedAt, sv.UpdatedAt,
		)
		if err != nil {
			return translate("insert survey", err)
		}

		batch := &pgx.Batch{}
		for _, q := range sv.Questions {
			batch.Queue(`
				INSERT INTO questions (id, survey_id, question, type, options, is_required, "order", created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				q.ID, sv.ID, q.Question, q.Type, q.Options, q.IsRequired, q.Order, q.CreatedAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return translate("insert questions", err)
		}
		return nil
	})
}

// GetByID carga la encuesta con sus preguntas ordenadas.
func (r *SurveyRepo) GetByID(ctx context.Context, id string) (*entity.Survey, error) {
	var sv entity.Survey
	err := r.pool.QueryRow(ctx, `SELECT `+surveyColumns+` FROM surveys WHERE id = $1`, id).Scan(
		&sv.ID, &sv.Title, &sv.Description, &sv.IsActive, &sv.EndDate, &sv.CreatedAt, &sv.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	byID, err := r.questionsFor(ctx, []string{sv.ID})
	if err != nil {
		return nil, err
	}
	sv.Questions = byID[sv.ID]
	return &sv, nil
}

// List devuelve todas las encuestas, las más recientes primero.
func (r *SurveyRepo) List(ctx context.Context) ([]*entity.Survey, error) {
	return r.list(ctx, `SELECT `+surveyColumns+` FROM surveys ORDER BY created_at DESC`)
}

// ListActive devuelve las encuestas activas, las más recientes primero.
func (r *SurveyRepo) ListActive(ctx context.Context) ([]*entity.Survey, error) {
	return r.list(ctx, `SELECT `+surveyColumns+` FROM surveys WHERE is_active ORDER BY created_at DESC`)
}

func (r *SurveyRepo) list(ctx context.Context, query string) ([]*entity.Survey, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	var list []*entity.Survey
	var ids []string
	for rows.Next() {
		var sv entity.Survey
		if err := rows.Scan(&sv.ID, &sv.Title, &sv.Description, &sv.IsActive, &sv.EndDate, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		list = append(list, &sv)
		ids = append(ids, sv.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	byID, err := r.questionsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, sv := range list {
		sv.Questions = byID[sv.ID]
	}
	return list, nil
}

// questionsFor carga en una sola consulta las preguntas de varias encuestas.
func (r *SurveyRepo) questionsFor(ctx context.Context, surveyIDs []string) (map[string][]entity.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, survey_id, question, type, options, is_required, "order", created_at
		FROM questions WHERE survey_id = ANY($1::uuid[])
		ORDER BY survey_id, "order"`, surveyIDs)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.Question, len(surveyIDs))
	for rows.Next() {
		var q entity.Question
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Question, &q.Type, &q.Options, &q.IsRequired, &q.Order, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out[q.SurveyID] = append(out[q.SurveyID], q)
	}
	return out, rows.Err()
}

// Delete elimina la encuesta; preguntas y respuestas caen por FK. false si no existía.
func (r *SurveyRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete survey: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ repository.ResponseRepository = (*ResponseRepo)(nil)

// ResponseRepo implementación de ResponseRepository sobre PostgreSQL.
type ResponseRepo struct {
	q Querier
}

// NewResponseRepository construye el adaptador de respuestas.
func NewResponseRepository(q Querier) *ResponseRepo {
	return &ResponseRepo{q: q}
}

// CreateBatch inserta las respuestas de un envío con COPY.
func (r *ResponseRepo) CreateBatch(ctx context.Context, responses []*entity.Response) error {
	if len(responses) == 0 {
		return nil
	}
	copier, ok := r.q.(interface {
		CopyFrom(ctx context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error)
	})
	if !ok {
		return fmt.Errorf("insert responses: el querier no soporta COPY")
	}
	_, err := copier.CopyFrom(ctx,
		pgx.Identifier{"responses"},
		[]string{"id", "question_id", "submission_id", "answer", "ip_address", "submitted_at", "is_anonymous", "user_id", "username"},
		pgx.CopyFromSlice(len(responses), func(i int) ([]any, error) {
			resp := responses[i]
			return []any{
				resp.ID, resp.QuestionID, resp.SubmissionID, resp.Answer, resp.IPAddress,
				resp.SubmittedAt, resp.IsAnonymous, resp.UserID, resp.Username,
			}, nil
		}),
	)
	if err != nil {
		return translate("insert responses", err)
	}
	return nil
}

// ListBySurvey devuelve las respuestas de todas las preguntas de la encuesta.
func (r *ResponseRepo) ListBySurvey(ctx context.Context, surveyID string) ([]*entity.Response, error) {
	rows, err := r.q.Query(ctx, `
		SELECT r.id, r.question_id, r.submission_id, r.answer, r.ip_address, r.submitted_at,
		       r.is_anonymous, r.user_id, r.username
		FROM responses r
		JOIN questions q ON q.id = r.question_id
		WHERE q.survey_id = $1
		ORDER BY r.submitted_at`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Response
	for rows.Next() {
		var resp entity.Response
		if err := rows.Scan(
			&resp.ID, &resp.QuestionID, &resp.SubmissionID, &resp.Answer, &resp.IPAddress, &resp.SubmittedAt,
			&resp.IsAnonymous, &resp.UserID, &resp.Username,
		); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		list = append(list, &resp)
	}
	return list, rows.Err()
}
