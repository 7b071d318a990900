package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/portal-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los totales del portal.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (usuarios, cargos vacantes, contratos por estado,
// encuestas activas, envíos y comentarios). Los conteos se calculan en paralelo.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
