package ports

import "github.com/jhoicas/portal-api/internal/application/dto"

// SurveyReportGenerator genera el informe imprimible de resultados de una encuesta.
type SurveyReportGenerator interface {
	Generate(results *dto.SurveyResultsResponse) ([]byte, error)
}
