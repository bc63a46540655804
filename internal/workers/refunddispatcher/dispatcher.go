package refunddispatcher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

const defaultBatchSize = 50

// RefundOutbox интерфейс очереди уведомлений о возвратах
type RefundOutbox interface {
	ListQueued(ctx context.Context, limit int) ([]*domain.RefundNotification, error)
	MarkDispatched(ctx context.Context, id uuid.UUID) error
	RecordFailedAttempt(ctx context.Context, id uuid.UUID) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	NotifyRefund(ctx context.Context, bookingID uuid.UUID, amount float64) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload interface{}) error
}

// Metrics интерфейс метрик диспетчера
type Metrics interface {
	IncRefundsDispatched()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// refundEvent событие, публикуемое после успешной отправки возврата
type refundEvent struct {
	BookingID uuid.UUID `json:"bookingId"`
	Amount    float64   `json:"amount"`
	SentAt    time.Time `json:"sentAt"`
}

// Dispatcher фоновый диспетчер возвратов: порционно вычитывает outbox,
// уведомляет платежный шлюз и публикует событие booking.refund.requested.
// Отправка at-least-once: при падении между уведомлением и MarkDispatched
// возврат будет отправлен повторно.
type Dispatcher struct {
	outbox    RefundOutbox
	gateway   PaymentGateway
	publisher EventPublisher
	metrics   Metrics
	interval  time.Duration
	batchSize int
	logger    Logger
}

// New создает новый экземпляр диспетчера возвратов
func New(
	outbox RefundOutbox,
	gateway PaymentGateway,
	publisher EventPublisher,
	metrics Metrics,
	interval time.Duration,
	logger Logger,
) *Dispatcher {
	return &Dispatcher{
		outbox:    outbox,
		gateway:   gateway,
		publisher: publisher,
		metrics:   metrics,
		interval:  interval,
		batchSize: defaultBatchSize,
		logger:    logger,
	}
}

// Run запускает цикл диспетчеризации. Блокирует до отмены контекста.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("RefundDispatcher: started with interval %s", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("RefundDispatcher: stopped")
			return
		case <-ticker.C:
			d.dispatchBatch(ctx)
		}
	}
}

func (d *Dispatcher) dispatchBatch(ctx context.Context) {
	notifications, err := d.outbox.ListQueued(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("RefundDispatcher: failed to list queued refunds: %v", err)
		return
	}

	for _, n := range notifications {
		if err := d.dispatch(ctx, n); err != nil {
			d.logger.Warn("RefundDispatcher: dispatch failed for refund id=%s booking=%s attempt=%d: %v",
				n.ID, n.BookingID, n.Attempts+1, err)
			if recErr := d.outbox.RecordFailedAttempt(ctx, n.ID); recErr != nil {
				d.logger.Error("RefundDispatcher: failed to record attempt for refund id=%s: %v", n.ID, recErr)
			}
			continue
		}

		if err := d.outbox.MarkDispatched(ctx, n.ID); err != nil {
			d.logger.Error("RefundDispatcher: failed to mark refund id=%s dispatched: %v", n.ID, err)
			continue
		}

		d.metrics.IncRefundsDispatched()
		d.logger.Info("RefundDispatcher: dispatched refund id=%s booking=%s amount=%.2f", n.ID, n.BookingID, n.Amount)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, n *domain.RefundNotification) error {
	if err := d.gateway.NotifyRefund(ctx, n.BookingID, n.Amount); err != nil {
		return err
	}

	event := refundEvent{
		BookingID: n.BookingID,
		Amount:    n.Amount,
		SentAt:    time.Now().UTC(),
	}
	if err := d.publisher.PublishJSON(ctx, "booking.refund.requested", event); err != nil {
		// Шлюз уже уведомлен — событие не должно ронять отправку
		d.logger.Warn("RefundDispatcher: failed to publish refund event for booking=%s: %v", n.BookingID, err)
	}

	return nil
}
