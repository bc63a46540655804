package domain

import "time"

// BookingRules временные бизнес-правила движка бронирования.
// Значения задаются конфигурацией деплоя, дефолты в constants.go.
type BookingRules struct {
	MinLeadTime        time.Duration // минимум от "сейчас" до начала интервала
	MinDuration        time.Duration // минимальная длительность бронирования
	MaxDuration        time.Duration // максимальная длительность бронирования
	CancellationCutoff time.Duration // до какого момента можно отменить оплаченное бронирование
	PendingTTL         time.Duration // сколько pending-бронирование живет без оплаты
}

// DefaultBookingRules возвращает правила с дефолтными значениями
func DefaultBookingRules() BookingRules {
	return BookingRules{
		MinLeadTime:        DefaultMinLeadTime,
		MinDuration:        DefaultMinDuration,
		MaxDuration:        DefaultMaxDuration,
		CancellationCutoff: DefaultCancellationCutoff,
		PendingTTL:         DefaultPendingTTL,
	}
}
