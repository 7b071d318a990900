// Package pdf genera el informe imprimible de resultados de encuestas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título de la encuesta │ Envíos + fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por pregunta:                                               │
//	│    N. Pregunta (tipo) · total de respuestas                  │
//	│    opción ............ conteo ..... porcentaje               │
//	│    o las últimas respuestas de texto libre                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de confidencialidad                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MaxTextAnswers respuestas de texto libre impresas por pregunta.
const MaxTextAnswers = 20

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.SurveyReportGenerator = (*SurveyReportGenerator)(nil)

// SurveyReportGenerator implementa ports.SurveyReportGenerator con Maroto v2.
type SurveyReportGenerator struct {
	company string
	now     func() time.Time
}

// NewSurveyReportGenerator construye el generador; company aparece como autor del PDF.
func NewSurveyReportGenerator(company string) *SurveyReportGenerator {
	return &SurveyReportGenerator{company: company, now: time.Now}
}

// Generate arma el PDF y devuelve sus bytes.
func (g *SurveyReportGenerator) Generate(results *dto.SurveyResultsResponse) ([]byte, error) {
	if results == nil {
		return nil, fmt.Errorf("pdf: resultados vacíos")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resultados: "+results.Survey.Title, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(results, g.now()))
	if results.Survey.Description != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(results.Survey.Description, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for i, q := range results.Results {
		m.AddRows(questionRows(i+1, q)...)
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}
	if len(results.Results) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("La encuesta no tiene preguntas.", props.Text{Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}

	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y envíos + fecha (der).
func headerRow(results *dto.SurveyResultsResponse, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("RESULTADOS DE ENCUESTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(results.Survey.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Envíos: %d", results.TotalSubmissions), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// questionRows: encabezado de la pregunta y su detalle (conteos u opiniones).
func questionRows(n int, q dto.QuestionResult) []core.Row {
	rows := []core.Row{
		row.New(10).Add(
			col.New(9).Add(text.New(fmt.Sprintf("%d. %s", n, q.Question), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 3,
			})),
			col.New(3).Add(text.New(fmt.Sprintf("%s · %d resp.", q.Type, q.TotalResponses), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			})),
		),
	}

	if len(q.OptionCounts) > 0 {
		for _, oc := range q.OptionCounts {
			rows = append(rows, row.New(6).Add(
				col.New(6).Add(text.New(oc.Option, props.Text{Size: 9, Left: 4, Top: 1})),
				col.New(3).Add(text.New(bar(oc.Count, q.TotalResponses), props.Text{Size: 8, Top: 1, Color: colorPrimary})),
				col.New(1).Add(text.New(fmt.Sprintf("%d", oc.Count), props.Text{Size: 9, Align: align.Right, Top: 1})),
				col.New(2).Add(text.New(percent(oc.Count, q.TotalResponses), props.Text{
					Size: 9, Align: align.Right, Top: 1, Color: colorGray,
				})),
			))
		}
		return rows
	}

	answers := q.Responses
	if len(answers) > MaxTextAnswers {
		answers = answers[len(answers)-MaxTextAnswers:]
	}
	for _, r := range answers {
		if strings.TrimSpace(r.Answer) == "" {
			continue
		}
		who := "Anónimo"
		if r.Username != nil {
			who = *r.Username
		}
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("• "+r.Answer, props.Text{Size: 8, Left: 4, Top: 1})),
			col.New(3).Add(text.New(who, props.Text{Size: 7, Align: align.Right, Top: 1, Color: colorGray})),
		))
	}
	if len(q.Responses) > len(answers) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("… y %d respuestas más", len(q.Responses)-len(answers)), props.Text{
				Size: 7, Left: 4, Color: colorGray,
			}),
		)))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Documento interno. Las respuestas anónimas no identifican a quien respondió.", props.Text{
			Size: 6.5, Color: colorGray, Top: 4, Align: align.Center,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// percent devuelve "37.5%"; "0%" si no hay respuestas.
func percent(count, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}

// bar barra de texto de 20 posiciones proporcional al conteo.
func bar(count, total int) string {
	if total == 0 {
		return ""
	}
	n := count * 20 / total
	return strings.Repeat("|", n)
}
