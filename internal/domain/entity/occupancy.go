package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Occupancy modelo de lectura: una asignación con su contrato y el empleado que la ocupa.
// Lo usan el organigrama y la regla de ocupante único de cargos no agregados.
type Occupancy struct {
	AssignmentID       string
	PositionID         string
	ContractID         string
	ContractStatus     string
	EndDate            *time.Time
	WorkloadPercentage decimal.Decimal
	IsPrimary          bool

	UserID          string
	EmployeeID      string
	FirstName       string
	LastName        string
	Role            string
	ProfileImageURL *string
}

// Occupying indica si la ocupación cuenta en t: contrato ACTIVE, vigente y con usuario.
func (o *Occupancy) Occupying(t time.Time) bool {
	if o.ContractStatus != ContractActive || o.UserID == "" {
		return false
	}
	return o.EndDate == nil || o.EndDate.After(t)
}
