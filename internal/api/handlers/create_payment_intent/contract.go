package create_payment_intent

import (
	"context"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	CreatePaymentIntent(ctx context.Context, bookingID uuid.UUID, userID int64) (*models.PaymentIntentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
