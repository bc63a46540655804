package confirm_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, bookingID uuid.UUID, req *models.ConfirmBookingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
