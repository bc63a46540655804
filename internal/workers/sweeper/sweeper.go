package sweeper

import (
	"context"
	"time"
)

// BookingLifecycle интерфейс операций, выполняемых по расписанию
type BookingLifecycle interface {
	CompleteDueBookings(ctx context.Context) (int, error)
	ExpireStalePending(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновый процесс обслуживания жизненного цикла:
// завершает подтвержденные бронирования с истекшим интервалом
// и отклоняет неоплаченные pending-бронирования старше TTL
type Sweeper struct {
	lifecycle BookingLifecycle
	interval  time.Duration
	logger    Logger
}

// New создает новый экземпляр sweeper
func New(lifecycle BookingLifecycle, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		lifecycle: lifecycle,
		interval:  interval,
		logger:    logger,
	}
}

// Run запускает цикл обслуживания. Блокирует до отмены контекста.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Sweeper: started with interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Первый проход сразу после старта, не дожидаясь тика
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.lifecycle.CompleteDueBookings(ctx); err != nil {
		s.logger.Error("Sweeper: complete due bookings failed: %v", err)
	}

	if _, err := s.lifecycle.ExpireStalePending(ctx); err != nil {
		s.logger.Error("Sweeper: expire stale pending failed: %v", err)
	}
}
