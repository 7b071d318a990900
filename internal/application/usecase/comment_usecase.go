package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

// Límites del buzón de sugerencias.
const (
	MaxCommentLength   = 5000
	MaxCommentName     = 128
	DefaultCommentPage = 50
	MaxCommentPage     = 200
)

// CommentUseCase buzón de sugerencias anónimo.
type CommentUseCase struct {
	repo repository.CommentRepository
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(repo repository.CommentRepository) *CommentUseCase {
	return &CommentUseCase{repo: repo}
}

// Create guarda un mensaje. Un nombre en blanco se guarda como NULL (anónimo).
func (uc *CommentUseCase) Create(ctx context.Context, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: el mensaje es requerido", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > MaxCommentLength {
		return nil, fmt.Errorf("%w: el mensaje supera %d caracteres", domain.ErrInvalidInput, MaxCommentLength)
	}
	name := trimmedOrNil(in.Name)
	if name != nil && utf8.RuneCountInString(*name) > MaxCommentName {
		return nil, fmt.Errorf("%w: el nombre supera %d caracteres", domain.ErrInvalidInput, MaxCommentName)
	}
	c := &entity.Comment{
		ID:        uuid.New().String(),
		Name:      name,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCommentResponse(c), nil
}

// ListRecent devuelve los últimos mensajes; limit se acota a [1, 200] con 50 por defecto.
func (uc *CommentUseCase) ListRecent(ctx context.Context, limit int) ([]dto.CommentResponse, error) {
	if limit <= 0 {
		limit = DefaultCommentPage
	}
	if limit > MaxCommentPage {
		limit = MaxCommentPage
	}
	list, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCommentResponse(c))
	}
	return out, nil
}

// Count total de mensajes.
func (uc *CommentUseCase) Count(ctx context.Context) (*dto.CountResponse, error) {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse{Count: n}, nil
}

func toCommentResponse(c *entity.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{ID: c.ID, Name: c.Name, Message: c.Message, CreatedAt: c.CreatedAt}
}
