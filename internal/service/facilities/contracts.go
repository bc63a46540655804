package facilities

import (
	"context"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// FacilityRepository интерфейс репозитория каталога объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	ListActive(ctx context.Context) ([]*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
