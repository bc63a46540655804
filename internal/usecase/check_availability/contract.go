package check_availability

import (
	"context"
	"time"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// FacilityCatalog интерфейс read-only каталога объектов
type FacilityCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// AvailabilityIndex интерфейс индекса доступности
type AvailabilityIndex interface {
	IsAvailable(facilityID int64, interval domain.TimeInterval) bool
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
