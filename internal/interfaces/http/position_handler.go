package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/usecase"
)

// PositionHandler cargos y organigrama (solo ADMIN).
type PositionHandler struct {
	uc *usecase.PositionUseCase
}

// NewPositionHandler construye el handler.
func NewPositionHandler(uc *usecase.PositionUseCase) *PositionHandler {
	return &PositionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cargo
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePositionRequest  true  "datos del cargo"
// @Success      201   {object}  dto.PositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/admin/positions [post]
func (h *PositionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePositionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cargos con padre e hijos
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PositionResponse
// @Router       /api/auth/admin/positions [get]
func (h *PositionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListFlat godoc
// @Summary      Listar cargos activos sin anidar
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PositionFlat
// @Router       /api/auth/admin/positions/flat [get]
func (h *PositionHandler) ListFlat(c *fiber.Ctx) error {
	out, err := h.uc.ListFlat(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cargo
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cargo"
// @Success      200  {object}  dto.PositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/admin/positions/{id} [get]
func (h *PositionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cargo (parcial)
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del cargo"
// @Param        body  body  dto.UpdatePositionRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.PositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/admin/positions/{id} [put]
func (h *PositionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePositionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cargo (los hijos quedan como raíces)
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cargo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/admin/positions/{id} [delete]
func (h *PositionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cargo eliminado"})
}

// Reparent godoc
// @Summary      Mover cargo bajo otro padre (drag & drop)
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del cargo"
// @Param        body  body  dto.ReparentRequest  true  "parentId o null para raíz"
// @Success      200   {object}  dto.PositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/admin/positions/{id}/parent [put]
func (h *PositionHandler) Reparent(c *fiber.Ctx) error {
	var in dto.ReparentRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Reparent(c.Context(), c.Params("id"), in.ParentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCoordinates godoc
// @Summary      Guardar coordenadas del cargo en el organigrama
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del cargo"
// @Param        body  body  dto.CoordinatesRequest  true  "x, y (null para limpiar)"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/admin/positions/{id}/coordinates [put]
func (h *PositionHandler) UpdateCoordinates(c *fiber.Ctx) error {
	var in dto.CoordinatesRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.UpdateCoordinates(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "coordenadas actualizadas"})
}

// OrgChart godoc
// @Summary      Organigrama con ocupantes vigentes
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrgChartNode
// @Router       /api/auth/admin/org-chart [get]
func (h *PositionHandler) OrgChart(c *fiber.Ctx) error {
	out, err := h.uc.OrgChart(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportOrgChart godoc
// @Summary      Exportar organigrama como XML canónico
// @Description  El ETag es el SHA-256 del documento; con If-None-Match igual responde 304.
// @Tags         positions
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {string}  string  "documento XML"
// @Success      304  {string}  string  "sin cambios"
// @Router       /api/auth/admin/org-chart/export [get]
func (h *PositionHandler) ExportOrgChart(c *fiber.Ctx) error {
	doc, digest, err := h.uc.ExportOrgChart(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	etag := `"` + digest + `"`
	c.Set(fiber.HeaderETag, etag)
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="org-chart.xml"`)
	return c.Send(doc)
}
