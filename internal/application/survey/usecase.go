// Package survey contiene los casos de uso de encuestas: alta, publicación, envío de
// respuestas y resultados.
package survey

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/ports"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/questionnaire"
	"github.com/jhoicas/portal-api/internal/domain/repository"
	"github.com/jhoicas/portal-api/pkg/logger"
)

// Respondent identidad de quien responde, tomada del token. nil = visitante sin sesión.
type Respondent struct {
	UserID   string
	Username string
}

// UseCase encuestas.
type UseCase struct {
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
	report    ports.SurveyReportGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	surveys repository.SurveyRepository,
	responses repository.ResponseRepository,
	report ports.SurveyReportGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{surveys: surveys, responses: responses, report: report, log: log, now: time.Now}
}

// Create da de alta una encuesta con sus preguntas. El orden por defecto es el índice.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSurveyRequest) (*dto.SurveyResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: el título es requerido", domain.ErrInvalidInput)
	}
	now := uc.now()
	sv := &entity.Survey{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
		EndDate:     in.EndDate.Ptr(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Questions:   make([]entity.Question, 0, len(in.Questions)),
	}
	if in.IsActive != nil {
		sv.IsActive = *in.IsActive
	}
	for i, qin := range in.Questions {
		q := entity.Question{
			ID:         uuid.New().String(),
			SurveyID:   sv.ID,
			Question:   strings.TrimSpace(qin.Question),
			Type:       qin.Type,
			Options:    qin.Options,
			IsRequired: qin.IsRequired,
			Order:      i,
			CreatedAt:  now,
		}
		if qin.Order != nil {
			q.Order = *qin.Order
		}
		if !questionnaire.IsChoice(q.Type) && q.Options != nil && strings.TrimSpace(*q.Options) == "" {
			q.Options = nil
		}
		if err := questionnaire.ValidateQuestion(&q); err != nil {
			return nil, fmt.Errorf("pregunta %d: %w", i+1, err)
		}
		sv.Questions = append(sv.Questions, q)
	}
	if err := uc.surveys.Create(ctx, sv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("survey_id", sv.ID).Int("questions", len(sv.Questions)).Msg("encuesta creada")
	created, err := uc.surveys.GetByID(ctx, sv.ID)
	if err != nil {
		return nil, err
	}
	return toSurveyResponse(created), nil
}

// ListAll devuelve todas las encuestas (administración).
func (uc *UseCase) ListAll(ctx context.Context) ([]dto.SurveyResponse, error) {
	list, err := uc.surveys.List(ctx)
	if err != nil {
		return nil, err
	}
	return toSurveyResponses(list), nil
}

// ListActive devuelve las encuestas activas, más recientes primero.
func (uc *UseCase) ListActive(ctx context.Context) ([]dto.SurveyResponse, error) {
	list, err := uc.surveys.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toSurveyResponses(list), nil
}

// Get devuelve una encuesta activa con sus preguntas ordenadas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SurveyResponse, error) {
	sv, err := uc.activeSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSurveyResponse(sv), nil
}

// Delete elimina la encuesta con sus preguntas y respuestas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := usecase.RequireID("id", id); err != nil {
		return err
	}
	found, err := uc.surveys.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: encuesta no encontrada", domain.ErrNotFound)
	}
	uc.log.Info().Str("survey_id", id).Msg("encuesta eliminada")
	return nil
}

// Submit guarda las respuestas de un envío.
//
// La identidad sale del token (who); el cliente solo puede pedir anonimato. Sin sesión el
// envío es siempre anónimo y user_id/username quedan en NULL.
func (uc *UseCase) Submit(ctx context.Context, surveyID string, in dto.SubmitSurveyRequest, who *Respondent, ip string) (*dto.SubmitSurveyResponse, error) {
	sv, err := uc.activeSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if sv.EndDate != nil && now.After(*sv.EndDate) {
		return nil, fmt.Errorf("%w: la encuesta cerró el %s", domain.ErrSurveyClosed, sv.EndDate.Format("2006-01-02"))
	}
	if len(in.Responses) == 0 {
		return nil, fmt.Errorf("%w: no hay respuestas", domain.ErrInvalidInput)
	}

	questions := make(map[string]*entity.Question, len(sv.Questions))
	for i := range sv.Questions {
		questions[sv.Questions[i].ID] = &sv.Questions[i]
	}
	answers := make(map[string]string, len(in.Responses))
	for _, r := range in.Responses {
		q, ok := questions[r.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: la pregunta %s no pertenece a la encuesta", domain.ErrNotFound, r.QuestionID)
		}
		if _, dup := answers[q.ID]; dup {
			return nil, fmt.Errorf("%w: la pregunta %q fue respondida dos veces", domain.ErrInvalidInput, q.Question)
		}
		if strings.TrimSpace(r.Answer) != "" {
			if err := questionnaire.ValidateAnswer(q, r.Answer); err != nil {
				return nil, err
			}
		}
		answers[q.ID] = r.Answer
	}
	for i := range sv.Questions {
		q := &sv.Questions[i]
		if q.IsRequired && !questionnaire.Answered(q, answers[q.ID]) {
			return nil, fmt.Errorf("%w: la pregunta %q es obligatoria", domain.ErrInvalidInput, q.Question)
		}
	}

	anonymous := who == nil || (in.IsAnonymous != nil && *in.IsAnonymous)
	submissionID := uuid.New().String()
	var ipAddr *string
	if ip != "" {
		ipAddr = &ip
	}
	batch := make([]*entity.Response, 0, len(in.Responses))
	for _, r := range in.Responses {
		resp := &entity.Response{
			ID:           uuid.New().String(),
			QuestionID:   r.QuestionID,
			SubmissionID: submissionID,
			Answer:       r.Answer,
			IPAddress:    ipAddr,
			SubmittedAt:  now,
			IsAnonymous:  anonymous,
		}
		if !anonymous {
			userID, username := who.UserID, who.Username
			resp.UserID, resp.Username = &userID, &username
		}
		batch = append(batch, resp)
	}
	if err := uc.responses.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	uc.log.Info().Str("survey_id", sv.ID).Str("submission_id", submissionID).Bool("anonymous", anonymous).Msg("respuestas registradas")
	return &dto.SubmitSurveyResponse{Message: "respuestas registradas", SubmissionID: submissionID}, nil
}

// Results agrega las respuestas por pregunta. includeUsers expone la identidad de los
// envíos no anónimos.
func (uc *UseCase) Results(ctx context.Context, surveyID string, includeUsers bool) (*dto.SurveyResultsResponse, error) {
	if err := usecase.RequireID("id", surveyID); err != nil {
		return nil, err
	}
	sv, err := uc.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, fmt.Errorf("%w: encuesta no encontrada", domain.ErrNotFound)
	}
	responses, err := uc.responses.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[string][]*entity.Response)
	submissions := make(map[string]struct{})
	for _, r := range responses {
		byQuestion[r.QuestionID] = append(byQuestion[r.QuestionID], r)
		submissions[r.SubmissionID] = struct{}{}
	}

	out := &dto.SurveyResultsResponse{
		Survey:           dto.SurveyHeader{ID: sv.ID, Title: sv.Title, Description: sv.Description},
		Results:          make([]dto.QuestionResult, 0, len(sv.Questions)),
		TotalSubmissions: len(submissions),
	}
	for i := range sv.Questions {
		q := &sv.Questions[i]
		rs := byQuestion[q.ID]
		qr := dto.QuestionResult{
			QuestionID:     q.ID,
			Question:       q.Question,
			Type:           q.Type,
			TotalResponses: len(rs),
			Responses:      make([]dto.ResponseEntry, 0, len(rs)),
		}
		for _, r := range rs {
			e := dto.ResponseEntry{Answer: r.Answer, SubmittedAt: r.SubmittedAt, IsAnonymous: r.IsAnonymous}
			if includeUsers && !r.IsAnonymous {
				e.UserID, e.Username = r.UserID, r.Username
			}
			qr.Responses = append(qr.Responses, e)
		}
		if questionnaire.IsChoice(q.Type) {
			qr.OptionCounts = tally(q, rs)
		}
		out.Results = append(out.Results, qr)
	}
	return out, nil
}

// ResultsPDF genera el informe imprimible (sin identidades).
func (uc *UseCase) ResultsPDF(ctx context.Context, surveyID string) ([]byte, error) {
	results, err := uc.Results(ctx, surveyID, false)
	if err != nil {
		return nil, err
	}
	return uc.report.Generate(results)
}

func (uc *UseCase) activeSurvey(ctx context.Context, id string) (*entity.Survey, error) {
	if err := usecase.RequireID("id", id); err != nil {
		return nil, err
	}
	sv, err := uc.surveys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sv == nil || !sv.IsActive {
		return nil, fmt.Errorf("%w: encuesta no encontrada", domain.ErrNotFound)
	}
	return sv, nil
}

// tally cuenta cada opción en el orden en que fue definida. Respuestas con opciones que ya no
// existen (pregunta editada a mano en BD) se ignoran.
func tally(q *entity.Question, rs []*entity.Response) []dto.OptionCount {
	opts, err := questionnaire.ParseOptions(q.Options)
	if err != nil {
		return nil
	}
	counts := make(map[string]int, len(opts))
	for _, r := range rs {
		picked, err := questionnaire.Choices(q, r.Answer)
		if err != nil {
			continue
		}
		for _, p := range picked {
			counts[p]++
		}
	}
	out := make([]dto.OptionCount, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.OptionCount{Option: o, Count: counts[o]})
	}
	return out
}

func toSurveyResponses(list []*entity.Survey) []dto.SurveyResponse {
	out := make([]dto.SurveyResponse, 0, len(list))
	for _, sv := range list {
		out = append(out, *toSurveyResponse(sv))
	}
	return out
}

func toSurveyResponse(sv *entity.Survey) *dto.SurveyResponse {
	out := &dto.SurveyResponse{
		ID:          sv.ID,
		Title:       sv.Title,
		Description: sv.Description,
		IsActive:    sv.IsActive,
		EndDate:     sv.EndDate,
		Questions:   make([]dto.QuestionResponse, 0, len(sv.Questions)),
		CreatedAt:   sv.CreatedAt,
		UpdatedAt:   sv.UpdatedAt,
	}
	for _, q := range sv.Questions {
		out.Questions = append(out.Questions, dto.QuestionResponse{
			ID:         q.ID,
			Question:   q.Question,
			Type:       q.Type,
			Options:    q.Options,
			IsRequired: q.IsRequired,
			Order:      q.Order,
		})
	}
	return out
}
