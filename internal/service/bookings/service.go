package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
	bookingRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/booking"
	"github.com/avlasov/PFR-BookingService/internal/integrations/paymentgw"
	"github.com/avlasov/PFR-BookingService/internal/service/bookings/models"
)

const (
	reasonPaymentExpired = "payment window expired"
)

// Service сервис жизненного цикла бронирований.
// Все переходы статусов проходят через него: подтверждение после оплаты,
// отклонение, отмена с постановкой возврата и завершение.
type Service struct {
	bookingRepo  BookingRepository
	gateway      PaymentGateway
	outbox       RefundOutbox
	index        AvailabilityIndex
	txManager    TransactionManager
	rules        domain.BookingRules
	adminIDs     map[int64]struct{}
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	outbox RefundOutbox,
	index AvailabilityIndex,
	txManager TransactionManager,
	rules domain.BookingRules,
	adminIDs []int64,
	metrics Metrics,
	logger Logger,
) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Service{
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		outbox:       outbox,
		index:        index,
		txManager:    txManager,
		rules:        rules,
		adminIDs:     admins,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор — любое
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerOrAdmin(booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetFacilityBookings получает бронирования объекта с гибкой фильтрацией
// по периоду, статусу и включению неактивных бронирований.
// Доступно только администраторам.
func (s *Service) GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetFacilityBookings: fetching bookings for facility=%d, user=%d", req.FacilityID, req.UserID)

	if !s.isAdmin(req.UserID) {
		s.logger.Warn("GetFacilityBookings: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityBookings: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityBookings: successfully fetched %d bookings for facility=%d", len(bookings), req.FacilityID)
	return models.FromDomainBookingList(bookings), nil
}

// CreatePaymentIntent создает платежное намерение для pending-бронирования.
// Разрешено владельцу и администратору. Сумма берется из бронирования —
// та, что была зафиксирована при создании.
func (s *Service) CreatePaymentIntent(ctx context.Context, bookingID uuid.UUID, userID int64) (*models.PaymentIntentResponse, error) {
	s.logger.Info("CreatePaymentIntent: booking id=%s, user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, "CreatePaymentIntent", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerOrAdmin(booking, userID); err != nil {
		s.logger.Warn("CreatePaymentIntent: access denied for user=%d to booking id=%s", userID, bookingID)
		return nil, err
	}

	// Оплачивать можно только pending-бронирование
	if booking.Status != domain.StatusPending {
		s.logger.Warn("CreatePaymentIntent: booking id=%s is not pending, status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusConfirmed)
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, booking.ID, booking.TotalAmount)
	if err != nil {
		if errors.Is(err, paymentgw.ErrPaymentDeclined) {
			s.logger.Warn("CreatePaymentIntent: declined for booking id=%s", bookingID)
			return nil, ErrPaymentDeclined
		}
		s.logger.Error("CreatePaymentIntent: gateway error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CreatePaymentIntent - gateway error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePaymentIntent: created intent reference=%s for booking id=%s", intent.Reference, bookingID)
	return models.FromGatewayIntent(booking.ID, intent), nil
}

// Confirm подтверждает оплаченное бронирование.
// Разрешено владельцу и администратору, только из статуса pending.
func (s *Service) Confirm(ctx context.Context, bookingID uuid.UUID, req *models.ConfirmBookingRequest) error {
	s.logger.Info("Confirm: confirming booking id=%s by user=%d", bookingID, req.UserID)

	if req.PaymentReference == "" {
		return fmt.Errorf("%w: paymentReference is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "Confirm", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerOrAdmin(booking, req.UserID); err != nil {
		s.logger.Warn("Confirm: access denied for user=%d to booking id=%s", req.UserID, bookingID)
		return err
	}

	if !booking.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: booking id=%s cannot be confirmed from status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusConfirmed)
	}

	if err := s.bookingRepo.Confirm(ctx, bookingID, req.PaymentReference); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		// Строка изменилась между проверкой перехода и записью
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Confirm: concurrent status change for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: booking was modified concurrently", ErrInvalidTransition)
		}
		s.logger.Error("Confirm: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%s", bookingID)
	return nil
}

// Reject отклоняет pending-бронирование. Доступно только администраторам.
// Интервал освобождается — его сразу может занять другой запрос.
func (s *Service) Reject(ctx context.Context, bookingID uuid.UUID, req *models.RejectBookingRequest) error {
	s.logger.Info("Reject: rejecting booking id=%s by user=%d", bookingID, req.UserID)

	if req.RejectionReason == "" {
		return fmt.Errorf("%w: rejectionReason is required", ErrInvalidInput)
	}

	if !s.isAdmin(req.UserID) {
		s.logger.Warn("Reject: access denied for user=%d", req.UserID)
		return ErrAccessDenied
	}

	booking, err := s.getBooking(ctx, "Reject", bookingID)
	if err != nil {
		return err
	}

	if !booking.CanTransitionTo(domain.StatusRejected) {
		s.logger.Warn("Reject: booking id=%s cannot be rejected from status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusRejected)
	}

	if err := s.bookingRepo.Reject(ctx, bookingID, req.RejectionReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Reject: concurrent status change for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: booking was modified concurrently", ErrInvalidTransition)
		}
		s.logger.Error("Reject: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.index.Release(booking.FacilityID, booking.ID)

	s.logger.Info("Reject: successfully rejected booking id=%s", bookingID)
	return nil
}

// Cancel отменяет бронирование и освобождает интервал.
// Владелец может отменить подтвержденное бронирование не позже, чем за
// CancellationCutoff до начала; администратор окном не ограничен.
// Для оплаченного бронирования в той же транзакции ставится возврат в outbox.
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%d", bookingID, req.UserID)

	if req.CancellationReason == "" {
		return fmt.Errorf("%w: cancellationReason is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerOrAdmin(booking, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%s", req.UserID, bookingID)
		return err
	}

	if !booking.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled from status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusCancelled)
	}

	// Окно отмены: подтвержденное бронирование владелец отменяет
	// не позже, чем за cutoff до начала интервала
	if booking.Status == domain.StatusConfirmed && !s.isAdmin(req.UserID) {
		now := s.timeProvider.Now()
		if booking.Interval.Start.Sub(now) < s.rules.CancellationCutoff {
			s.logger.Warn("Cancel: cancellation window closed for booking id=%s, start=%s", bookingID, booking.Interval.Start)
			return ErrCancellationWindowClosed
		}
	}

	refundRequested := booking.IsPaid()

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason, refundRequested); err != nil {
			return err
		}

		if refundRequested {
			notification := &domain.RefundNotification{
				ID:        uuid.New(),
				BookingID: booking.ID,
				Amount:    booking.TotalAmount,
			}
			if _, err := s.outbox.Enqueue(ctx, notification); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		// Конкурентный переход: интервал не трогаем, возврат не ставился
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: concurrent status change for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: booking was modified concurrently", ErrInvalidTransition)
		}
		s.logger.Error("Cancel: transaction failed for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction failed: %v", ErrInternal, err)
	}

	// Интервал освобождается после фиксации транзакции
	s.index.Release(booking.FacilityID, booking.ID)

	s.metrics.IncBookingsCancelled()
	if refundRequested {
		s.metrics.IncRefundsQueued()
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s, refundRequested=%t", bookingID, refundRequested)
	return nil
}

// Complete завершает подтвержденное бронирование, чей интервал закончился.
// Доступно только администраторам; обычно это делает фоновый sweep.
func (s *Service) Complete(ctx context.Context, bookingID uuid.UUID, userID int64) error {
	s.logger.Info("Complete: completing booking id=%s by user=%d", bookingID, userID)

	if !s.isAdmin(userID) {
		s.logger.Warn("Complete: access denied for user=%d", userID)
		return ErrAccessDenied
	}

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return err
	}

	if !booking.CanTransitionTo(domain.StatusCompleted) {
		s.logger.Warn("Complete: booking id=%s cannot be completed from status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusCompleted)
	}

	now := s.timeProvider.Now()
	if !booking.Interval.EndedBy(now) {
		s.logger.Warn("Complete: booking id=%s has not ended yet, end=%s", bookingID, booking.Interval.End)
		return ErrNotYetEnded
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Complete: concurrent status change for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: booking was modified concurrently", ErrInvalidTransition)
		}
		s.logger.Error("Complete: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.index.Release(booking.FacilityID, booking.ID)

	s.logger.Info("Complete: successfully completed booking id=%s", bookingID)
	return nil
}

// CompleteDueBookings завершает все подтвержденные бронирования, чьи интервалы
// закончились. Вызывается фоновым sweep-процессом. Возвращает число завершенных.
func (s *Service) CompleteDueBookings(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	due, err := s.bookingRepo.GetConfirmedEndedBefore(ctx, now)
	if err != nil {
		s.logger.Error("CompleteDueBookings: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteDueBookings - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, booking := range due {
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCompleted); err != nil {
			// Одно застрявшее бронирование не должно останавливать sweep
			s.logger.Error("CompleteDueBookings: failed to complete booking id=%s: %v", booking.ID, err)
			continue
		}
		s.index.Release(booking.FacilityID, booking.ID)
		completed++
	}

	if completed > 0 {
		s.logger.Info("CompleteDueBookings: completed %d bookings", completed)
	}
	return completed, nil
}

// ExpireStalePending отклоняет неоплаченные бронирования старше PendingTTL,
// освобождая их интервалы. Вызывается фоновым sweep-процессом.
func (s *Service) ExpireStalePending(ctx context.Context) (int, error) {
	cutoff := s.timeProvider.Now().Add(-s.rules.PendingTTL)

	stale, err := s.bookingRepo.GetPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("ExpireStalePending: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireStalePending - repository error: %v", ErrInternal, err)
	}

	expired := 0
	for _, booking := range stale {
		if err := s.bookingRepo.Reject(ctx, booking.ID, reasonPaymentExpired); err != nil {
			s.logger.Error("ExpireStalePending: failed to reject booking id=%s: %v", booking.ID, err)
			continue
		}
		s.index.Release(booking.FacilityID, booking.ID)
		expired++
	}

	if expired > 0 {
		s.logger.Info("ExpireStalePending: expired %d pending bookings", expired)
	}
	return expired, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, method string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// checkOwnerOrAdmin проверяет, что пользователь владелец бронирования или администратор
func (s *Service) checkOwnerOrAdmin(booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}
	if s.isAdmin(userID) {
		return nil
	}
	return ErrAccessDenied
}

func (s *Service) isAdmin(userID int64) bool {
	_, ok := s.adminIDs[userID]
	return ok
}
