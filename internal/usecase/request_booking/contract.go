package request_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// BookingLedger интерфейс реестра бронирований
type BookingLedger interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// FacilityCatalog интерфейс read-only каталога объектов
type FacilityCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// AvailabilityIndex интерфейс индекса доступности
type AvailabilityIndex interface {
	Reserve(facilityID int64, bookingID uuid.UUID, interval domain.TimeInterval) error
	Release(facilityID int64, bookingID uuid.UUID)
}

// Metrics интерфейс доменных метрик создания бронирований
type Metrics interface {
	IncBookingsCreated()
	IncBookingConflicts()
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
