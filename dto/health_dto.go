package dto

import (
	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/pure_utils"
)

type HealthStatusResponse struct {
	Statuses []HealthItemStatusResponse `json:"statuses"`
}

type HealthItemStatusResponse struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

func AdaptHealthItemStatus(status models.HealthItemStatus) HealthItemStatusResponse {
	return HealthItemStatusResponse{
		Name:   string(status.Name),
		Status: status.Status,
	}
}

func AdaptHealthStatus(status models.HealthStatus) HealthStatusResponse {
	return HealthStatusResponse{
		Statuses: pure_utils.Map(status.Statuses, AdaptHealthItemStatus),
	}
}
