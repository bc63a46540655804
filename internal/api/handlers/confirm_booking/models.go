package confirm_booking

import "github.com/avlasov/PFR-BookingService/internal/service/bookings/models"

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	PaymentReference string `json:"paymentReference"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ConfirmBookingRequest) ToServiceRequest(userID int64) *models.ConfirmBookingRequest {
	return &models.ConfirmBookingRequest{
		UserID:           userID,
		PaymentReference: r.PaymentReference,
	}
}
