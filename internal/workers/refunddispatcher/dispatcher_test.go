package refunddispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// Фейки

type fakeOutbox struct {
	queued     []*domain.RefundNotification
	dispatched []uuid.UUID
	failed     []uuid.UUID
	listErr    error
}

func (f *fakeOutbox) ListQueued(_ context.Context, limit int) ([]*domain.RefundNotification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.queued) > limit {
		return f.queued[:limit], nil
	}
	return f.queued, nil
}

func (f *fakeOutbox) MarkDispatched(_ context.Context, id uuid.UUID) error {
	f.dispatched = append(f.dispatched, id)
	return nil
}

func (f *fakeOutbox) RecordFailedAttempt(_ context.Context, id uuid.UUID) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeGateway struct {
	notified []uuid.UUID
	failFor  map[uuid.UUID]error
}

func (f *fakeGateway) NotifyRefund(_ context.Context, bookingID uuid.UUID, _ float64) error {
	if err, ok := f.failFor[bookingID]; ok {
		return err
	}
	f.notified = append(f.notified, bookingID)
	return nil
}

type fakePublisher struct {
	published []string
	failWith  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, routingKey string, _ interface{}) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.published = append(f.published, routingKey)
	return nil
}

type countingMetrics struct {
	dispatched int
}

func (m *countingMetrics) IncRefundsDispatched() { m.dispatched++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func notification() *domain.RefundNotification {
	return &domain.RefundNotification{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		Amount:    2000,
		Status:    domain.RefundQueued,
		CreatedAt: time.Now().UTC(),
	}
}

func newDispatcher(outbox *fakeOutbox, gateway *fakeGateway, publisher *fakePublisher, metrics *countingMetrics) *Dispatcher {
	return New(outbox, gateway, publisher, metrics, time.Second, nopLogger{})
}

// Тесты

func TestDispatchBatch(t *testing.T) {
	first := notification()
	second := notification()

	outbox := &fakeOutbox{queued: []*domain.RefundNotification{first, second}}
	gateway := &fakeGateway{}
	publisher := &fakePublisher{}
	metrics := &countingMetrics{}

	d := newDispatcher(outbox, gateway, publisher, metrics)
	d.dispatchBatch(context.Background())

	assert.ElementsMatch(t, []uuid.UUID{first.BookingID, second.BookingID}, gateway.notified)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, outbox.dispatched)
	assert.Empty(t, outbox.failed)
	assert.Equal(t, []string{"booking.refund.requested", "booking.refund.requested"}, publisher.published)
	assert.Equal(t, 2, metrics.dispatched)
}

func TestDispatchBatch_GatewayFailureRecordsAttempt(t *testing.T) {
	good := notification()
	bad := notification()

	outbox := &fakeOutbox{queued: []*domain.RefundNotification{bad, good}}
	gateway := &fakeGateway{failFor: map[uuid.UUID]error{bad.BookingID: errors.New("gateway timeout")}}
	publisher := &fakePublisher{}
	metrics := &countingMetrics{}

	d := newDispatcher(outbox, gateway, publisher, metrics)
	d.dispatchBatch(context.Background())

	// Упавшее уведомление остается в очереди на повтор, остальные проходят
	assert.Equal(t, []uuid.UUID{bad.ID}, outbox.failed)
	assert.Equal(t, []uuid.UUID{good.ID}, outbox.dispatched)
	assert.Equal(t, 1, metrics.dispatched)
}

func TestDispatchBatch_PublisherFailureDoesNotBlockDispatch(t *testing.T) {
	n := notification()

	outbox := &fakeOutbox{queued: []*domain.RefundNotification{n}}
	gateway := &fakeGateway{}
	publisher := &fakePublisher{failWith: errors.New("channel closed")}
	metrics := &countingMetrics{}

	d := newDispatcher(outbox, gateway, publisher, metrics)
	d.dispatchBatch(context.Background())

	// Шлюз уведомлен — недоставленное событие не откатывает отправку
	assert.Equal(t, []uuid.UUID{n.BookingID}, gateway.notified)
	assert.Equal(t, []uuid.UUID{n.ID}, outbox.dispatched)
	assert.Empty(t, outbox.failed)
	assert.Equal(t, 1, metrics.dispatched)
}

func TestDispatchBatch_ListFailure(t *testing.T) {
	outbox := &fakeOutbox{listErr: errors.New("connection refused")}
	gateway := &fakeGateway{}
	publisher := &fakePublisher{}
	metrics := &countingMetrics{}

	d := newDispatcher(outbox, gateway, publisher, metrics)
	d.dispatchBatch(context.Background())

	assert.Empty(t, gateway.notified)
	assert.Equal(t, 0, metrics.dispatched)
}

func TestDispatchBatch_RespectsBatchSize(t *testing.T) {
	outbox := &fakeOutbox{}
	for i := 0; i < defaultBatchSize+10; i++ {
		outbox.queued = append(outbox.queued, notification())
	}

	gateway := &fakeGateway{}
	publisher := &fakePublisher{}
	metrics := &countingMetrics{}

	d := newDispatcher(outbox, gateway, publisher, metrics)
	d.dispatchBatch(context.Background())

	assert.Equal(t, defaultBatchSize, metrics.dispatched)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	outbox := &fakeOutbox{}
	d := New(outbox, &fakeGateway{}, &fakePublisher{}, &countingMetrics{}, 10*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after context cancellation")
	}
}
