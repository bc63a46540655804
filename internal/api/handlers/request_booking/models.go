package request_booking

import (
	"time"

	"github.com/google/uuid"

	requestBooking "github.com/avlasov/PFR-BookingService/internal/usecase/request_booking"
)

// RequestBookingRequest HTTP request model
type RequestBookingRequest struct {
	FacilityID     int64   `json:"facilityId"`
	Start          string  `json:"start"` // RFC 3339
	End            string  `json:"end"`   // RFC 3339
	NumberOfPeople int     `json:"numberOfPeople"`
	Purpose        *string `json:"purpose,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         int64     `json:"userId"`
	FacilityID     int64     `json:"facilityId"`
	Start          string    `json:"start"`
	End            string    `json:"end"`
	NumberOfPeople int       `json:"numberOfPeople"`
	TotalAmount    float64   `json:"totalAmount"`
	Status         string    `json:"status"`
	Purpose        *string   `json:"purpose,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestBookingRequest) ToUseCaseRequest(userID int64) (*requestBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		UserID:         userID,
		FacilityID:     r.FacilityID,
		Start:          start,
		End:            end,
		NumberOfPeople: r.NumberOfPeople,
		Purpose:        r.Purpose,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		FacilityID:     resp.FacilityID,
		Start:          resp.Start.Format(time.RFC3339),
		End:            resp.End.Format(time.RFC3339),
		NumberOfPeople: resp.NumberOfPeople,
		TotalAmount:    resp.TotalAmount,
		Status:         resp.Status,
		Purpose:        resp.Purpose,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
