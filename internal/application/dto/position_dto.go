package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePositionRequest alta de un cargo.
type CreatePositionRequest struct {
	Title            string  `json:"title" validate:"required,notblank,max=200"`
	Description      string  `json:"description" validate:"max=2000"`
	ParentPositionID *string `json:"parentPositionId"`
	Order            int     `json:"order" validate:"min=0"`
	IsAggregate      bool    `json:"isAggregate"`
}

// UpdatePositionRequest actualización parcial de un cargo.
type UpdatePositionRequest struct {
	Title            *string `json:"title" validate:"omitempty,max=200"`
	Description      *string `json:"description" validate:"omitempty,max=2000"`
	ParentPositionID *string `json:"parentPositionId"`
	Order            *int    `json:"order" validate:"omitempty,min=0"`
	IsAggregate      *bool   `json:"isAggregate"`
	IsActive         *bool   `json:"isActive"`
}

// ReparentRequest nuevo padre desde el drag-and-drop del organigrama; nil lo vuelve raíz.
type ReparentRequest struct {
	ParentID *string `json:"parentId"`
}

// CoordinatesRequest posición del nodo en el lienzo del organigrama.
type CoordinatesRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// PositionResponse salida de un cargo con referencias a padre e hijos.
type PositionResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ParentPositionID *string   `json:"parentPositionId"`
	Order            int       `json:"order"`
	IsAggregate      bool      `json:"isAggregate"`
	X                *float64  `json:"x"`
	Y                *float64  `json:"y"`
	IsActive         bool      `json:"isActive"`
	ChildIDs         []string  `json:"childIds,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PositionFlat fila del listado plano (selectores del frontend).
type PositionFlat struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	ParentPositionID *string `json:"parentPositionId"`
	Order            int     `json:"order"`
	IsActive         bool    `json:"isActive"`
}

// OrgChartEmployee ocupante vigente de un nodo.
type OrgChartEmployee struct {
	ID                 string          `json:"id"`
	AssignmentID       string          `json:"assignmentId"`
	EmployeeID         string          `json:"employeeId"`
	FirstName          string          `json:"firstName"`
	LastName           string          `json:"lastName"`
	Role               string          `json:"role"`
	ProfileImageURL    *string         `json:"profileImageUrl,omitempty"`
	WorkloadPercentage decimal.Decimal `json:"workloadPercentage"`
	IsPrimary          bool            `json:"isPrimary"`
}

// OrgChartNode nodo del organigrama con sus hijos.
type OrgChartNode struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	ParentPositionID *string            `json:"parentPositionId"`
	Order            int                `json:"order"`
	IsAggregate      bool               `json:"isAggregate"`
	X                *float64           `json:"x"`
	Y                *float64           `json:"y"`
	Employees        []OrgChartEmployee `json:"employees"`
	Children         []OrgChartNode     `json:"children"`
}
