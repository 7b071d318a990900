package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/portal-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation (23503): la fila referenciada no existe.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// translate convierte errores del driver en sentinelas de dominio.
func translate(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, op)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: referencia inexistente", domain.ErrNotFound, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// noRows indica si err es pgx.ErrNoRows (el repo devuelve nil, nil).
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
