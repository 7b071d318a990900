package dto

// DashboardSummaryDTO resumen del portal para RR. HH. y administración.
type DashboardSummaryDTO struct {
	TotalUsers        int            `json:"totalUsers"`
	ActiveUsers       int            `json:"activeUsers"`
	TotalPositions    int            `json:"totalPositions"`
	VacantPositions   int            `json:"vacantPositions"`
	ContractsByStatus map[string]int `json:"contractsByStatus"`
	ActiveSurveys     int            `json:"activeSurveys"`
	TotalSubmissions  int            `json:"totalSubmissions"`
	TotalComments     int            `json:"totalComments"`
}
