package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment vincula un Contract con un Position con un porcentaje de dedicación.
type Assignment struct {
	ID                   string
	ContractID           string
	PositionID           string
	StartDate            time.Time
	EndDate              *time.Time
	WorkloadPercentage   decimal.Decimal
	IsPrimary            bool
	CustomJobDescription *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ActiveAt indica si la asignación sigue vigente en t (sin fecha fin o fin posterior a t).
func (a *Assignment) ActiveAt(t time.Time) bool {
	return a.EndDate == nil || a.EndDate.After(t)
}
