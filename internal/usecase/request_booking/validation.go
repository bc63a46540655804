package request_booking

import (
	"fmt"
	"time"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// validateRequest валидирует форму входных данных запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if req.NumberOfPeople <= 0 {
		return fmt.Errorf("%w: numberOfPeople must be positive", ErrInvalidInput)
	}

	if req.Purpose != nil && len(*req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateInterval проверяет интервал против временных правил:
// инвариант start < end, минимальный lead time и границы длительности
func validateInterval(interval domain.TimeInterval, now time.Time, rules domain.BookingRules) error {
	if err := interval.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	if interval.Start.Sub(now) < rules.MinLeadTime {
		return fmt.Errorf("%w: booking must start at least %s from now", ErrInvalidInterval, rules.MinLeadTime)
	}

	duration := interval.Duration()
	if duration < rules.MinDuration {
		return fmt.Errorf("%w: duration %s is below the minimum %s", ErrInvalidInterval, duration, rules.MinDuration)
	}
	if duration > rules.MaxDuration {
		return fmt.Errorf("%w: duration %s exceeds the maximum %s", ErrInvalidInterval, duration, rules.MaxDuration)
	}

	return nil
}
