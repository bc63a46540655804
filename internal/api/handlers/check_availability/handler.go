package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avlasov/PFR-BookingService/internal/api/handlers"
	checkAvailability "github.com/avlasov/PFR-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidFacilityID   = "некорректный ID объекта"
	msgInvalidTimestamp    = "некорректный формат времени, ожидается RFC 3339"
	msgMissingPeriod       = "параметры start и end обязательны"
	msgFacilityUnavailable = "объект не найден или неактивен"
	msgInvalidInterval     = "некорректный интервал бронирования"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability?start=...&end=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing period: facility_id=%d", facilityID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		FacilityID: facilityID,
		Start:      start,
		End:        end,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrFacilityUnavailable):
			h.logger.Warn("GET /facilities/{id}/availability - Facility unavailable: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityUnavailable)

		case errors.Is(err, checkAvailability.ErrInvalidInterval), errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/availability - Invalid interval: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /facilities/{id}/availability - Failed: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/availability - Probe done: facility_id=%d, available=%t", facilityID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
