package list_branch_services

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
)

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

func fromServiceServices(services []*models.ServiceResponse) []ServiceResponse {
	out := make([]ServiceResponse, len(services))
	for i, s := range services {
		out[i] = ServiceResponse{
			ID:              s.ID.String(),
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		}
	}
	return out
}
