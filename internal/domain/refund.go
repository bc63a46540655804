package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus статус уведомления о возврате в outbox
type RefundStatus string

const (
	RefundQueued     RefundStatus = "queued"
	RefundDispatched RefundStatus = "dispatched"
	RefundFailed     RefundStatus = "failed"
)

// MaxRefundAttempts после этого числа неудачных попыток уведомление помечается failed
const MaxRefundAttempts = 10

// RefundNotification обязательство уведомить платежный шлюз о возврате.
// Создается в одной транзакции с отменой оплаченного бронирования и
// отправляется фоновым диспетчером; отмена на отправку не ждет.
type RefundNotification struct {
	ID           uuid.UUID
	BookingID    uuid.UUID
	Amount       float64
	Status       RefundStatus
	Attempts     int
	CreatedAt    time.Time
	DispatchedAt *time.Time
}
