package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateContractRequest alta de contrato; nace en estado DRAFT.
type CreateContractRequest struct {
	UserID       string  `json:"userId" validate:"required,uuid"`
	StartDate    Date    `json:"startDate"`
	EndDate      *Date   `json:"endDate"`
	ContractType string  `json:"contractType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACTOR HOURLY"`
	FileURL      *string `json:"fileUrl" validate:"omitempty,max=500"`
}

// UpdateContractRequest actualización parcial de fechas, tipo y archivo.
type UpdateContractRequest struct {
	StartDate    *Date   `json:"startDate"`
	EndDate      *Date   `json:"endDate"`
	ContractType *string `json:"contractType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACTOR HOURLY"`
	FileURL      *string `json:"fileUrl" validate:"omitempty,max=500"`
}

// UpdateContractStatusRequest cambio de estado del contrato.
type UpdateContractStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ContractResponse contrato con su usuario y asignaciones.
type ContractResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	User         *UserSummary         `json:"user,omitempty"`
	StartDate    time.Time            `json:"startDate"`
	EndDate      *time.Time           `json:"endDate"`
	Status       string               `json:"status"`
	ContractType string               `json:"contractType"`
	FileURL      *string              `json:"fileUrl"`
	Assignments  []AssignmentResponse `json:"assignments"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// CreateAssignmentRequest vincula un contrato ACTIVE con un cargo.
type CreateAssignmentRequest struct {
	ContractID           string           `json:"contractId" validate:"required,uuid"`
	PositionID           string           `json:"positionId" validate:"required,uuid"`
	StartDate            Date             `json:"startDate"`
	EndDate              *Date            `json:"endDate"`
	WorkloadPercentage   *decimal.Decimal `json:"workloadPercentage"` // nil = 100
	IsPrimary            bool             `json:"isPrimary"`
	CustomJobDescription *string          `json:"customJobDescription" validate:"omitempty,max=2000"`
}

// UpdateAssignmentRequest actualización parcial de una asignación.
type UpdateAssignmentRequest struct {
	StartDate            *Date            `json:"startDate"`
	EndDate              *Date            `json:"endDate"`
	WorkloadPercentage   *decimal.Decimal `json:"workloadPercentage"`
	IsPrimary            *bool            `json:"isPrimary"`
	CustomJobDescription *string          `json:"customJobDescription" validate:"omitempty,max=2000"`
}

// AssignmentResponse asignación con cargo y, en el detalle, contrato y usuario.
type AssignmentResponse struct {
	ID                   string            `json:"id"`
	ContractID           string            `json:"contractId"`
	PositionID           string            `json:"positionId"`
	Position             *PositionFlat     `json:"position,omitempty"`
	Contract             *ContractResponse `json:"contract,omitempty"`
	StartDate            time.Time         `json:"startDate"`
	EndDate              *time.Time        `json:"endDate"`
	WorkloadPercentage   decimal.Decimal   `json:"workloadPercentage"`
	IsPrimary            bool              `json:"isPrimary"`
	CustomJobDescription *string           `json:"customJobDescription"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}
