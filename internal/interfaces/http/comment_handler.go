package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/usecase"
)

// CommentHandler buzón de comentarios.
type CommentHandler struct {
	uc *usecase.CommentUseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(uc *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// Create godoc
// @Summary      Dejar un comentario (público, nombre opcional)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCommentRequest  true  "mensaje"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCommentRequest
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
// @Summary      Últimos comentarios
// @Tags         comments
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de filas (50 por defecto, tope 200)"
// @Success      200    {array}  dto.CommentResponse
// @Router       /api/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListRecent(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Count GET /api/comments/count
func (h *CommentHandler) Count(c *fiber.Ctx) error {
	out, err := h.uc.Count(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
