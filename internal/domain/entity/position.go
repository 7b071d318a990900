package entity

import "time"

// Position es un nodo del organigrama. IsAggregate permite varios ocupantes simultáneos.
type Position struct {
	ID               string
	Title            string
	Description      string
	ParentPositionID *string
	Order            int
	IsAggregate      bool
	X                *float64
	Y                *float64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
