package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avlasov/PFR-BookingService/internal/domain"
	facilityRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/facility"
	"github.com/avlasov/PFR-BookingService/internal/pricing"
)

// UseCase use case проверки доступности интервала.
// Read-only: ничего не резервирует, результат — снимок на момент вызова
// и может устареть к моменту фактического запроса бронирования.
type UseCase struct {
	catalog      FacilityCatalog
	index        AvailabilityIndex
	rules        domain.BookingRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog FacilityCatalog,
	index AvailabilityIndex,
	rules domain.BookingRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		index:        index,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: facility=%d, interval=[%s, %s)",
		req.FacilityID, req.Start.Format("2006-01-02 15:04"), req.End.Format("2006-01-02 15:04"))

	// 1. Валидация формы входных данных
	if req.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Объект должен существовать и быть активным
	facility, err := uc.catalog.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CheckAvailability: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityUnavailable
		}
		uc.logger.Error("CheckAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsActive {
		uc.logger.Warn("CheckAvailability: facility id=%d is inactive", req.FacilityID)
		return nil, ErrFacilityUnavailable
	}

	// 4. Интервал проверяется по тем же правилам, что и при создании бронирования,
	// чтобы "доступно" здесь означало "такой запрос был бы принят"
	interval := domain.TimeInterval{Start: req.Start.UTC(), End: req.End.UTC()}
	if err := validateInterval(interval, now, uc.rules); err != nil {
		uc.logger.Warn("CheckAvailability: interval validation failed: %v", err)
		return nil, err
	}

	// 5. Стоимость котируется по текущему тарифу объекта
	amount, err := pricing.ComputeAmount(facility.HourlyRate, interval)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to compute amount: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	available := uc.index.IsAvailable(req.FacilityID, interval)

	return &Response{
		FacilityID:   req.FacilityID,
		Start:        interval.Start,
		End:          interval.End,
		Available:    available,
		QuotedAmount: amount,
	}, nil
}

// validateInterval проверяет интервал против временных правил
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
