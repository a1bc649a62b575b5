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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_booking"
	editBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/edit_booking"
	getBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_booking"
	getFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_field"
	getScheduleHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_schedule"
	healthHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/health"
	invalidateFieldCacheHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/invalidate_field_cache"
	listBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/events"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/cache/fieldcache"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/memory"
	fieldServiceClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
	bookingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/scheduling"
	createBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	editBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/edit_booking"
	getScheduleUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_schedule"
	listBookingsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/list_bookings"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/mq"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

// bookingStore хранилище бронирований: PostgreSQL или in-memory
type bookingStore interface {
	bookingsService.BookingRepository
	scheduling.BookingReader
}

// fieldProvider источник конфигурации полей: клиент сервиса полей или кэш поверх него
type fieldProvider interface {
	GetField(ctx context.Context, fieldID int64) (*domain.Field, error)
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

	log.Info("Starting SMC-FieldBookingService...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	defaultLocation, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Invalid default timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище бронирований
	var (
		store     bookingStore
		txMgr     bookingsService.TransactionManager
		dbPinger  healthHandler.Pinger
		closeDBFn = func() {}
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = memory.NewRepository()
		txMgr = memory.NewTxManager()
		log.Warn("In-memory storage enabled: bookings are lost on restart")

	default:
		db, err := openDatabase(cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		closeDBFn = func() { _ = db.Close() }
		dbPinger = db
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Plain(db)
		}

		store = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}
	defer closeDBFn()

	// Инициализируем интеграционных клиентов
	fieldClient := fieldServiceClient.NewClient(
		cfg.FieldService.URL,
		time.Duration(cfg.FieldService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (FieldService=%s timeout=%ds)",
		cfg.FieldService.URL, cfg.FieldService.Timeout)

	var (
		fields     fieldProvider = fieldClient
		fieldCache *fieldcache.Cache
	)

	if cfg.Redis.Enabled {
		connectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := fieldcache.NewRedisClient(connectCtx, fieldcache.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		fieldCache = fieldcache.New(rdb, fieldClient, time.Duration(cfg.Redis.TTL)*time.Second, log)
		fields = fieldCache
		log.Info("Field cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.TTL)
	}

	// Публикация событий бронирований
	var publisher bookingsService.EventPublisher = events.Noop{}

	if cfg.RabbitMQ.Enabled {
		broker, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer broker.Close()

		publisher = events.NewPublisher(broker)
		log.Info("Booking events enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
	}

	// Инициализируем сервисы
	clock := scheduling.RealClock{}
	availability := scheduling.NewAvailabilityIndex(store)
	checker := scheduling.NewConflictChecker(availability, clock)

	bookingSvc := bookingsService.NewService(
		store,
		checker,
		txMgr,
		publisher,
		metrics.NewBookingRecorder(metricsCollector, cfg.Metrics.ServiceName),
		clock,
		log,
		bookingsService.Options{
			DefaultLocation:    defaultLocation,
			AdvanceBookingDays: cfg.App.AdvanceBookingDays,
		},
	)

	// Инициализируем use cases
	getScheduleUseCase := getScheduleUC.NewUseCase(
		fields,
		availability,
		log,
		getScheduleUC.Options{
			DefaultLocation:    defaultLocation,
			HidePastSlots:      cfg.App.HidePastSlots,
			AdvanceBookingDays: cfg.App.AdvanceBookingDays,
		},
	)
	createBookingUseCase := createBookingUC.NewUseCase(fields, bookingSvc, log)
	editBookingUseCase := editBookingUC.NewUseCase(fields, bookingSvc, log)
	listBookingsUseCase := listBookingsUC.NewUseCase(fields, bookingSvc, log)

	// Инициализируем handlers
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)
	getField := getFieldHandler.NewHandler(fields, cfg.App.DefaultTimezone, log)
	listBookings := listBookingsHandler.NewHandler(listBookingsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	editBooking := editBookingHandler.NewHandler(editBookingUseCase, log)
	health := healthHandler.NewHandler(dbPinger, cfg.Storage.Driver, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Поля и расписание ---
	api.HandleFunc("/fields/{fieldId}", getField.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}/bookings", listBookings.Handle).Methods(http.MethodGet)

	if fieldCache != nil {
		invalidateFieldCache := invalidateFieldCacheHandler.NewHandler(fieldCache, log)
		api.HandleFunc("/fields/{fieldId}/cache", invalidateFieldCache.Handle).Methods(http.MethodDelete)
	}

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", editBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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

// openDatabase открывает пул соединений PostgreSQL и проверяет доступность
func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
