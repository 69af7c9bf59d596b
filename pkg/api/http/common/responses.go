package common

import (
	"github.com/voidshard/etlmon/pkg/structs"
)

// IDResponse is returned when something is created.
type IDResponse struct {
	ID int64 `json:"id"`
}

// AckResponse acknowledges a lifecycle transition.
type AckResponse struct {
	ID     int64          `json:"id"`
	Status structs.Status `json:"status"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
