package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/infrastructure/pdf"
)

func TestGenerate_ProducePDF(t *testing.T) {
	user := "sara"
	results := &dto.SurveyResultsResponse{
		Survey: dto.SurveyHeader{ID: "s1", Title: "Clima laboral", Description: "Trimestral"},
		Results: []dto.QuestionResult{
			{
				QuestionID: "q1", Question: "¿Cómo te sientes?", Type: "radio", TotalResponses: 3,
				OptionCounts: []dto.OptionCount{{Option: "Bien", Count: 2}, {Option: "Mal", Count: 1}},
			},
			{
				QuestionID: "q2", Question: "Sugerencias", Type: "text", TotalResponses: 2,
				Responses: []dto.ResponseEntry{
					{Answer: "Más pausas activas", SubmittedAt: time.Now(), IsAnonymous: true},
					{Answer: "Nada", SubmittedAt: time.Now(), Username: &user},
				},
			},
		},
		TotalSubmissions: 3,
	}

	doc, err := pdf.NewSurveyReportGenerator("Portal").Generate(results)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestGenerate_SinResultados(t *testing.T) {
	_, err := pdf.NewSurveyReportGenerator("Portal").Generate(nil)
	assert.Error(t, err)
}
