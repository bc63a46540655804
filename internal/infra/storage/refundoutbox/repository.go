package refundoutbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
	"github.com/avlasov/PFR-BookingService/pkg/dbmetrics"
	"github.com/avlasov/PFR-BookingService/pkg/psqlbuilder"
)

var outboxColumns = []string{
	"id",
	"booking_id",
	"amount",
	"status",
	"attempts",
	"created_at",
	"dispatched_at",
}

// Repository durable outbox уведомлений о возвратах.
// Запись создается в одной транзакции с отменой бронирования,
// отправкой занимается фоновый диспетчер.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue ставит уведомление о возврате в очередь.
// Если в контексте передана активная транзакция, использует её —
// так постановка возврата атомарна с отменой бронирования.
func (r *Repository) Enqueue(ctx context.Context, n *domain.RefundNotification) (*domain.RefundNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refund_outbox").
		Columns("id", "booking_id", "amount", "status").
		Values(n.ID, n.BookingID, n.Amount, domain.RefundQueued).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	n.Status = domain.RefundQueued
	n.CreatedAt = createdAt.Time
	return n, nil
}

// ListQueued получает очередные уведомления для отправки, порционно
func (r *Repository) ListQueued(ctx context.Context, limit int) ([]*domain.RefundNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(outboxColumns...).
		From("refund_outbox").
		Where(squirrel.Eq{"status": domain.RefundQueued}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListQueued - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListQueued - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.RefundNotification, 0)
	for rows.Next() {
		var n domain.RefundNotification
		var createdAt sql.NullTime
		if err := rows.Scan(
			&n.ID,
			&n.BookingID,
			&n.Amount,
			&n.Status,
			&n.Attempts,
			&createdAt,
			&n.DispatchedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListQueued - scan row: %v", ErrScanRow, err)
		}
		n.CreatedAt = createdAt.Time
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListQueued - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkDispatched помечает уведомление отправленным
func (r *Repository) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("refund_outbox").
		Set("status", domain.RefundDispatched).
		Set("dispatched_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "MarkDispatched", query, args)
}

// RecordFailedAttempt увеличивает счетчик попыток; после MaxRefundAttempts
// уведомление помечается failed и больше не берется диспетчером
func (r *Repository) RecordFailedAttempt(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("refund_outbox").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("status", squirrel.Expr(
			"CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
			domain.MaxRefundAttempts, domain.RefundFailed,
		)).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordFailedAttempt - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "RecordFailedAttempt", query, args)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
