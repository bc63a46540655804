package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

var (
	// ErrInvalidInterval возвращается при интервале с неположительной длительностью
	ErrInvalidInterval = errors.New("pricing: interval duration must be positive")

	// ErrNegativeRate возвращается при отрицательной почасовой ставке
	ErrNegativeRate = errors.New("pricing: hourly rate must be non-negative")
)

// minorUnitFactor количество минорных единиц в основной (копейки/центы)
const minorUnitFactor = 100

// ComputeAmount вычисляет стоимость бронирования: ставка * длительность в часах.
// Дробные часы допустимы. Результат округляется до минорной единицы валюты
// по правилу round-half-up. Чистая функция без побочных эффектов.
func ComputeAmount(hourlyRate float64, interval domain.TimeInterval) (float64, error) {
	if hourlyRate < 0 {
		return 0, fmt.Errorf("%w: got %f", ErrNegativeRate, hourlyRate)
	}
	duration := interval.Duration()
	if duration <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	hours := duration.Hours()
	return roundHalfUp(hourlyRate * hours), nil
}

// roundHalfUp округляет до минорной единицы: 0.005 -> 0.01
func roundHalfUp(amount float64) float64 {
	return math.Floor(amount*minorUnitFactor+0.5) / minorUnitFactor
}
