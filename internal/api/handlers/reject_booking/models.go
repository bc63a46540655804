package reject_booking

import "github.com/avlasov/PFR-BookingService/internal/service/bookings/models"

// RejectBookingRequest HTTP request model
type RejectBookingRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RejectBookingRequest) ToServiceRequest(userID int64) *models.RejectBookingRequest {
	return &models.RejectBookingRequest{
		UserID:          userID,
		RejectionReason: r.RejectionReason,
	}
}
