package check_availability

import (
	"time"

	checkAvailability "github.com/avlasov/PFR-BookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID   int64   `json:"facilityId"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Available    bool    `json:"available"`
	QuotedAmount float64 `json:"quotedAmount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		FacilityID:   resp.FacilityID,
		Start:        resp.Start.Format(time.RFC3339),
		End:          resp.End.Format(time.RFC3339),
		Available:    resp.Available,
		QuotedAmount: resp.QuotedAmount,
	}
}
