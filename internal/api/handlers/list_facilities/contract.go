package list_facilities

import (
	"context"

	"github.com/avlasov/PFR-BookingService/internal/service/facilities/models"
)

type FacilityService interface {
	ListActive(ctx context.Context) (*models.FacilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
