package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo buzón de sugerencias sobre PostgreSQL.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador del buzón.
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create persiste un comentario.
func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO comments (id, name, message, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Message, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListRecent devuelve los últimos limit comentarios.
func (r *CommentRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Comment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, message, created_at FROM comments ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Count total de comentarios.
func (r *CommentRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
