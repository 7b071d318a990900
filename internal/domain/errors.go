package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	ErrWorkloadExceeded  = errors.New("Total workload exceeds 100%") // texto que muestra el frontend
	ErrContractNotActive = errors.New("el contrato no está activo")
	ErrPositionCycle     = errors.New("la jerarquía de cargos no puede tener ciclos")
	ErrPositionOccupied  = errors.New("el cargo no es agregado y ya tiene un ocupante")
	ErrSurveyClosed      = errors.New("la encuesta no acepta respuestas")
)
