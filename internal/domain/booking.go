package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
)

// allowedTransitions таблица допустимых переходов статусов.
// Любой переход вне таблицы недопустим.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
	},
	StatusCancelled: {},
	StatusRejected:  {},
	StatusCompleted: {},
}

// CanTransition проверяет допустимость перехода from -> to
func CanTransition(from, to BookingStatus) bool {
	return allowedTransitions[from][to]
}

// TransitionSources возвращает статусы, из которых допустим переход в to.
// Используется реестром для условий compare-and-swap в update-запросах.
func TransitionSources(to BookingStatus) []BookingStatus {
	var sources []BookingStatus
	for _, from := range AllStatuses() {
		if allowedTransitions[from][to] {
			sources = append(sources, from)
		}
	}
	return sources
}

// Booking represents a facility reservation in the system
type Booking struct {
	ID             uuid.UUID
	FacilityID     int64
	UserID         int64
	Interval       TimeInterval
	NumberOfPeople int

	// Derived once at creation, never recomputed
	TotalAmount float64

	Status           BookingStatus
	PaymentReference *string
	Purpose          *string
	Notes            *string

	CancellationReason *string
	CancelledAt        *time.Time
	RefundRequestedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo проверяет допустимость перехода бронирования в статус next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	return CanTransition(b.Status, next)
}

// HoldsInterval сообщает, удерживает ли бронирование свой интервал.
// Интервал занят только статусами pending и confirmed.
func (b *Booking) HoldsInterval() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal сообщает, находится ли бронирование в конечном статусе
func (b *Booking) IsTerminal() bool {
	return len(allowedTransitions[b.Status]) == 0
}

// IsPaid сообщает, было ли бронирование оплачено
func (b *Booking) IsPaid() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// AllStatuses возвращает полный набор статусов (для валидации и тестов таблицы переходов)
func AllStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending,
		StatusConfirmed,
		StatusCancelled,
		StatusRejected,
		StatusCompleted,
	}
}

// ValidStatus проверяет, что строка является известным статусом
func ValidStatus(s string) bool {
	for _, status := range AllStatuses() {
		if BookingStatus(s) == status {
			return true
		}
	}
	return false
}

// FacilityBookingsFilter фильтр для получения бронирований объекта
type FacilityBookingsFilter struct {
	FacilityID      int64          // Обязательный параметр
	From            *time.Time     // Начало периода (опционально)
	To              *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли бронирования, не удерживающие интервал
}
