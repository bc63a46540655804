package request_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/availability"
	"github.com/avlasov/PFR-BookingService/internal/domain"
	"github.com/avlasov/PFR-BookingService/internal/pricing"
	facilityRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/facility"
)

// UseCase use case создания бронирования — единственный путь,
// которым в системе появляется новое бронирование
type UseCase struct {
	ledger       BookingLedger
	catalog      FacilityCatalog
	index        AvailabilityIndex
	rules        domain.BookingRules
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ledger BookingLedger,
	catalog FacilityCatalog,
	index AvailabilityIndex,
	rules domain.BookingRules,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledger:       ledger,
		catalog:      catalog,
		index:        index,
		rules:        rules,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и резервирование интервала атомарны в пределах
// объекта (мьютекс объекта внутри индекса), поэтому два конкурентных
// запроса на пересекающиеся интервалы не могут пройти оба.
// Никакой вызов платежного шлюза здесь не выполняется: оплата — шаг
// вызывающей стороны после создания pending-бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: user=%d, facility=%d, interval=[%s, %s), people=%d",
		req.UserID, req.FacilityID, req.Start.Format("2006-01-02 15:04"), req.End.Format("2006-01-02 15:04"), req.NumberOfPeople)

	// 1. Валидация формы входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Объект должен существовать и быть активным
	facility, err := uc.catalog.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("RequestBooking: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityUnavailable
		}
		uc.logger.Error("RequestBooking: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsActive {
		uc.logger.Warn("RequestBooking: facility id=%d is inactive", req.FacilityID)
		return nil, ErrFacilityUnavailable
	}

	// 4. Валидация интервала: lead time и границы длительности
	interval := domain.TimeInterval{Start: req.Start.UTC(), End: req.End.UTC()}
	if err := validateInterval(interval, now, uc.rules); err != nil {
		uc.logger.Warn("RequestBooking: interval validation failed: %v", err)
		return nil, err
	}

	// 5. Проверка вместимости (если она известна каталогу)
	if !facility.CanAccommodate(req.NumberOfPeople) {
		uc.logger.Warn("RequestBooking: facility id=%d capacity %d exceeded by %d people",
			req.FacilityID, facility.MaxCapacity, req.NumberOfPeople)
		return nil, fmt.Errorf("%w: capacity %d, requested %d", ErrCapacityExceeded, facility.MaxCapacity, req.NumberOfPeople)
	}

	// 6. Вычисляем стоимость. Сумма фиксируется при создании и больше не пересчитывается.
	amount, err := pricing.ComputeAmount(facility.HourlyRate, interval)
	if err != nil {
		uc.logger.Error("RequestBooking: failed to compute amount: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 7. Атомарный check-and-reserve в индексе доступности.
	// ID генерируем заранее, чтобы интервал был занят до вставки строки.
	bookingID := uuid.New()
	if err := uc.index.Reserve(req.FacilityID, bookingID, interval); err != nil {
		if errors.Is(err, availability.ErrSlotConflict) {
			uc.metrics.IncBookingConflicts()
			uc.logger.Warn("RequestBooking: slot conflict for facility=%d interval=%s", req.FacilityID, interval)
			return nil, ErrSlotConflict
		}
		uc.logger.Error("RequestBooking: failed to reserve interval: %v", err)
		return nil, fmt.Errorf("%w: failed to reserve interval: %v", ErrInternal, err)
	}

	// 8. Сохраняем pending-бронирование в реестре.
	// При ошибке сохранения резерв снимается — интервал снова свободен.
	booking := &domain.Booking{
		ID:             bookingID,
		FacilityID:     req.FacilityID,
		UserID:         req.UserID,
		Interval:       interval,
		NumberOfPeople: req.NumberOfPeople,
		TotalAmount:    amount,
		Status:         domain.StatusPending,
		Purpose:        req.Purpose,
		Notes:          req.Notes,
	}

	created, err := uc.ledger.Create(ctx, booking)
	if err != nil {
		uc.index.Release(req.FacilityID, bookingID)
		uc.logger.Error("RequestBooking: failed to persist booking: %v", err)
		return nil, fmt.Errorf("%w: failed to persist booking: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("RequestBooking: successfully created booking id=%s amount=%.2f", created.ID, created.TotalAmount)
	return fromDomain(created), nil
}
