package repository

import (
	"context"

	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// CommentRepository define el puerto de persistencia para Comment.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Comment, error)
	Count(ctx context.Context) (int, error)
}
