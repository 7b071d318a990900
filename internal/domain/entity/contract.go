package entity

import "time"

// Estados de contrato.
const (
	ContractDraft      = "DRAFT"
	ContractActive     = "ACTIVE"
	ContractSuspended  = "SUSPENDED"
	ContractTerminated = "TERMINATED"
	ContractExpired    = "EXPIRED"
)

// Tipos de contrato.
const (
	ContractFullTime   = "FULL_TIME"
	ContractPartTime   = "PART_TIME"
	ContractContractor = "CONTRACTOR"
	ContractHourly     = "HOURLY"
)

// ContractStatuses en orden de ciclo de vida.
var ContractStatuses = []string{ContractDraft, ContractActive, ContractSuspended, ContractTerminated, ContractExpired}

// ValidContractStatus indica si s es un estado conocido.
func ValidContractStatus(s string) bool {
	for _, st := range ContractStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ValidContractType indica si t es un tipo de contrato conocido.
func ValidContractType(t string) bool {
	switch t {
	case ContractFullTime, ContractPartTime, ContractContractor, ContractHourly:
		return true
	}
	return false
}

// Contract registro laboral de un usuario.
type Contract struct {
	ID           string
	UserID       string
	StartDate    time.Time
	EndDate      *time.Time
	Status       string
	ContractType string
	FileURL      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
