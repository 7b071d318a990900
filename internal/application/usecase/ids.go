package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-api/internal/domain"
)

// OptionalID normaliza un id opcional del cliente: nil o "" -> nil; si no es UUID, ErrInvalidInput.
func OptionalID(field string, id *string) (*string, error) {
	if id == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*id)
	if s == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return nil, fmt.Errorf("%w: %s no es un UUID válido", domain.ErrInvalidInput, field)
	}
	return &s, nil
}

// RequireID verifica que id sea un UUID.
func RequireID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s no es un UUID válido", domain.ErrInvalidInput, field)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
