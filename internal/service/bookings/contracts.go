package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
	"github.com/avlasov/PFR-BookingService/internal/integrations/paymentgw"
)

// BookingRepository интерфейс реестра бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
	GetConfirmedEndedBefore(ctx context.Context, moment time.Time) ([]*domain.Booking, error)
	GetPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	Confirm(ctx context.Context, id uuid.UUID, paymentReference string) error
	Cancel(ctx context.Context, id uuid.UUID, reason string, refundRequested bool) error
	Reject(ctx context.Context, id uuid.UUID, reason string) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, bookingID uuid.UUID, amount float64) (*paymentgw.PaymentIntent, error)
}

// RefundOutbox интерфейс очереди уведомлений о возвратах
type RefundOutbox interface {
	Enqueue(ctx context.Context, n *domain.RefundNotification) (*domain.RefundNotification, error)
}

// AvailabilityIndex интерфейс индекса доступности
type AvailabilityIndex interface {
	Release(facilityID int64, bookingID uuid.UUID)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик жизненного цикла
type Metrics interface {
	IncBookingsCancelled()
	IncRefundsQueued()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
