package request_booking

import (
	"errors"
	"net/http"

	"github.com/avlasov/PFR-BookingService/internal/api/handlers"
	"github.com/avlasov/PFR-BookingService/internal/api/middleware"
	requestBooking "github.com/avlasov/PFR-BookingService/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTimestamp    = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotConflict        = "интервал пересекается с существующим бронированием"
	msgFacilityUnavailable = "объект не найден или неактивен"
	msgInvalidInterval     = "некорректный интервал бронирования"
	msgCapacityExceeded    = "превышена вместимость объекта"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RequestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, requestBooking.ErrFacilityUnavailable):
			h.logger.Warn("POST /bookings - Facility unavailable: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityUnavailable)

		case errors.Is(err, requestBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, requestBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: facility_id=%d, people=%d", req.FacilityID, req.NumberOfPeople)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, facility_id=%d, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%d, facility_id=%d",
		result.ID, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
