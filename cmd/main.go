package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/check_availability"
	confirmBookingHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/confirm_booking"
	createPaymentIntentHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/create_payment_intent"
	getBookingHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/get_booking"
	getFacilityHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/get_facility"
	getFacilityBookingsHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/get_facility_bookings"
	getUserBookingsHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/get_user_bookings"
	listFacilitiesHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/list_facilities"
	rejectBookingHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/reject_booking"
	requestBookingHandler "github.com/avlasov/PFR-BookingService/internal/api/handlers/request_booking"
	"github.com/avlasov/PFR-BookingService/internal/api/middleware"
	"github.com/avlasov/PFR-BookingService/internal/availability"
	"github.com/avlasov/PFR-BookingService/internal/config"
	bookingRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/booking"
	facilityRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/facility"
	refundoutboxRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/refundoutbox"
	"github.com/avlasov/PFR-BookingService/internal/integrations/paymentgw"
	bookingsService "github.com/avlasov/PFR-BookingService/internal/service/bookings"
	facilitiesService "github.com/avlasov/PFR-BookingService/internal/service/facilities"
	checkAvailabilityUC "github.com/avlasov/PFR-BookingService/internal/usecase/check_availability"
	requestBookingUC "github.com/avlasov/PFR-BookingService/internal/usecase/request_booking"
	"github.com/avlasov/PFR-BookingService/internal/workers/refunddispatcher"
	"github.com/avlasov/PFR-BookingService/internal/workers/sweeper"
	"github.com/avlasov/PFR-BookingService/pkg/dbmetrics"
	"github.com/avlasov/PFR-BookingService/pkg/logger"
	"github.com/avlasov/PFR-BookingService/pkg/metrics"
	"github.com/avlasov/PFR-BookingService/pkg/mq"
	"github.com/avlasov/PFR-BookingService/pkg/simpletxmanager"
	"github.com/avlasov/PFR-BookingService/pkg/txmanager"
)

// noopPublisher заглушка публикации событий при выключенном MQ
type noopPublisher struct{}

func (noopPublisher) PublishJSON(ctx context.Context, routingKey string, payload interface{}) error {
	return nil
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PFR-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики всегда создаются: доменные счетчики нужны usecase и сервисам,
	// а HTTP endpoint и middleware включаются флагом
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент платежного шлюза
	gatewayClient := paymentgw.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.APIKey,
		cfg.PaymentGateway.Currency,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout)

	// Публикация событий: RabbitMQ либо заглушка
	var publisher refunddispatcher.EventPublisher = noopPublisher{}
	if cfg.MQ.Enabled {
		mqPublisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher
		log.Info("RabbitMQ publisher initialized (exchange=%s)", cfg.MQ.Exchange)
	}

	// Репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		facilityRepository *facilityRepo.Repository
		outboxRepository   *refundoutboxRepo.Repository
		txMgr              bookingsService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		outboxRepository = refundoutboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		facilityRepository = facilityRepo.NewRepository(db)
		outboxRepository = refundoutboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Восстанавливаем индекс доступности из реестра
	index := availability.NewIndex()
	holding, err := bookingRepository.GetHolding(context.Background(), time.Now().UTC())
	if err != nil {
		log.Fatal("Failed to load holding bookings: %v", err)
	}
	entries := make([]availability.Entry, 0, len(holding))
	for _, b := range holding {
		entries = append(entries, availability.Entry{
			FacilityID: b.FacilityID,
			BookingID:  b.ID,
			Interval:   b.Interval,
		})
	}
	index.Rebuild(entries)
	log.Info("Availability index rebuilt from %d holding bookings", len(entries))

	rules := cfg.Booking.Rules()
	log.Info("Booking rules: lead=%s, duration=[%s, %s], cutoff=%s, pendingTTL=%s",
		rules.MinLeadTime, rules.MinDuration, rules.MaxDuration, rules.CancellationCutoff, rules.PendingTTL)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		gatewayClient,
		outboxRepository,
		index,
		txMgr,
		rules,
		cfg.Admin.UserIDs,
		metricsCollector,
		log,
	)
	facilitySvc := facilitiesService.NewService(facilityRepository, log)

	// Use cases
	requestBookingUseCase := requestBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		index,
		rules,
		metricsCollector,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		facilityRepository,
		index,
		rules,
		log,
	)

	// Handlers
	requestBooking := requestBookingHandler.NewHandler(requestBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	createPaymentIntent := createPaymentIntentHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingSvc, log)
	listFacilities := listFacilitiesHandler.NewHandler(facilitySvc, log)
	getFacility := getFacilityHandler.NewHandler(facilitySvc, log)

	// Фоновые процессы
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	sweep := sweeper.New(bookingSvc, time.Duration(cfg.Workers.SweepInterval)*time.Second, log)
	go sweep.Run(workersCtx)

	dispatcher := refunddispatcher.New(
		outboxRepository,
		gatewayClient,
		publisher,
		metricsCollector,
		time.Duration(cfg.Workers.DispatchInterval)*time.Second,
		log,
	)
	go dispatcher.Run(workersCtx)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/facilities", listFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", requestBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/payment-intent", createPaymentIntent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Административные операции (права проверяет сервис) ---
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые процессы и сбор метрик пула
	stopWorkers()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
