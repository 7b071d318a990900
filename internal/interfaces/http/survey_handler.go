package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/survey"
)

// SurveyHandler encuestas: administración, respuesta pública y resultados.
type SurveyHandler struct {
	uc *survey.UseCase
}

// NewSurveyHandler construye el handler.
func NewSurveyHandler(uc *survey.UseCase) *SurveyHandler {
	return &SurveyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear encuesta con preguntas
// @Tags         surveys
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSurveyRequest  true  "encuesta"
// @Success      201   {object}  dto.SurveyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/surveys [post]
func (h *SurveyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSurveyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAll godoc
// @Summary      Listar todas las encuestas
// @Tags         surveys
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SurveyResponse
// @Router       /api/surveys [get]
func (h *SurveyHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListActive godoc
// @Summary      Encuestas activas (público)
// @Tags         surveys
// @Produce      json
// @Success      200  {array}  dto.SurveyResponse
// @Router       /api/surveys/active [get]
func (h *SurveyHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener encuesta activa con preguntas
// @Tags         surveys
// @Produce      json
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {object}  dto.SurveyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/surveys/{id} [get]
func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar encuesta con preguntas y respuestas
// @Tags         surveys
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/surveys/{id} [delete]
func (h *SurveyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "encuesta eliminada"})
}

// Submit godoc
// @Summary      Responder encuesta
// @Description  Sin token o con isAnonymous=true la respuesta queda anónima.
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la encuesta"
// @Param        body  body  dto.SubmitSurveyRequest  true  "respuestas"
// @Success      201   {object}  dto.SubmitSurveyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/surveys/{id}/submit [post]
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitSurveyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	var who *survey.Respondent
	if id := GetUserID(c); id != "" {
		who = &survey.Respondent{UserID: id, Username: GetUsername(c)}
	}
	out, err := h.uc.Submit(c.Context(), c.Params("id"), in, who, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Results godoc
// @Summary      Resultados agregados
// @Tags         surveys
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID de la encuesta"
// @Param        includeUsers  query  bool    false  "incluir identidad de respuestas no anónimas"
// @Success      200           {object}  dto.SurveyResultsResponse
// @Failure      404           {object}  dto.ErrorResponse
// @Router       /api/surveys/{id}/results [get]
func (h *SurveyHandler) Results(c *fiber.Ctx) error {
	out, err := h.uc.Results(c.Context(), c.Params("id"), c.QueryBool("includeUsers", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResultsPDF godoc
// @Summary      Reporte PDF de resultados
// @Tags         surveys
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/surveys/{id}/results/pdf [get]
func (h *SurveyHandler) ResultsPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.ResultsPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="encuesta-%s.pdf"`, id))
	return c.Send(pdf)
}
