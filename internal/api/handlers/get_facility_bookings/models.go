package get_facility_bookings

import (
	"net/url"
	"time"

	"github.com/avlasov/PFR-BookingService/internal/service/bookings/models"
	"github.com/avlasov/PFR-BookingService/pkg/ptr"
)

// parseQuery собирает запрос сервиса из query-параметров
func parseQuery(query url.Values, facilityID, userID int64) (*models.GetFacilityBookingsRequest, error) {
	req := &models.GetFacilityBookingsRequest{
		UserID:     userID,
		FacilityID: facilityID,
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.From = ptr.Ptr(from)
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.To = ptr.Ptr(to)
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
