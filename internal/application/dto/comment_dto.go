package dto

import "time"

// CreateCommentRequest mensaje del buzón; Name vacío = anónimo.
type CreateCommentRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=128"`
	Message string  `json:"message" validate:"required,notblank,max=5000"`
}

// CommentResponse mensaje del buzón.
type CommentResponse struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
