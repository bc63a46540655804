package request_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64     // ID пользователя
	FacilityID     int64     // ID объекта из каталога
	Start          time.Time // Начало интервала (UTC)
	End            time.Time // Конец интервала (UTC)
	NumberOfPeople int       // Число людей
	Purpose        *string   // Цель бронирования (опционально)
	Notes          *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             uuid.UUID
	UserID         int64
	FacilityID     int64
	Start          time.Time
	End            time.Time
	NumberOfPeople int
	TotalAmount    float64
	Status         string
	Purpose        *string
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:             b.ID,
		UserID:         b.UserID,
		FacilityID:     b.FacilityID,
		Start:          b.Interval.Start,
		End:            b.Interval.End,
		NumberOfPeople: b.NumberOfPeople,
		TotalAmount:    b.TotalAmount,
		Status:         string(b.Status),
		Purpose:        b.Purpose,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
