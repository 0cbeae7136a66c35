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

	createBookingHandler "github.com/m04kA/MDC-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/MDC-BookingService/internal/api/handlers/get_booking"
	getCabinAvailabilityHandler "github.com/m04kA/MDC-BookingService/internal/api/handlers/get_cabin_availability"
	getSlotAvailabilityHandler "github.com/m04kA/MDC-BookingService/internal/api/handlers/get_slot_availability"
	listBookingsHandler "github.com/m04kA/MDC-BookingService/internal/api/handlers/list_bookings"
	"github.com/m04kA/MDC-BookingService/internal/api/middleware"
	"github.com/m04kA/MDC-BookingService/internal/config"
	bookingRepo "github.com/m04kA/MDC-BookingService/internal/infra/storage/booking"
	bookingsService "github.com/m04kA/MDC-BookingService/internal/service/bookings"
	ledgerService "github.com/m04kA/MDC-BookingService/internal/service/ledger"
	createBookingUC "github.com/m04kA/MDC-BookingService/internal/usecase/create_booking"
	getCabinAvailabilityUC "github.com/m04kA/MDC-BookingService/internal/usecase/get_cabin_availability"
	getSlotAvailabilityUC "github.com/m04kA/MDC-BookingService/internal/usecase/get_slot_availability"
	"github.com/m04kA/MDC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MDC-BookingService/pkg/logger"
	"github.com/m04kA/MDC-BookingService/pkg/metrics"
	"github.com/m04kA/MDC-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/MDC-BookingService/pkg/txmanager"
)

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

	log.Info("Starting MDC-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Собираем доменные расписания услуг (дефолты центра + overrides из конфига)
	schedule, err := cfg.Schedule.ToDomain()
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	log.Info("Schedule loaded: procedure %s-%s (%dmin, %d cabins, capacity %d), consultation %s-%s (%dmin, %d cabins, capacity %d)",
		schedule.Procedure.StartTime, schedule.Procedure.EndTime,
		schedule.Procedure.SlotDurationMinutes, schedule.Procedure.CabinCount, schedule.Procedure.CapacityPerSlot,
		schedule.Consultation.StartTime, schedule.Consultation.EndTime,
		schedule.Consultation.SlotDurationMinutes, schedule.Consultation.CabinCount, schedule.Consultation.CapacityPerSlot)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Восстанавливаем леджер занятости из хранилища и проверяем инварианты.
	// Нарушение означает, что данные повреждены - стартовать нельзя.
	ledgerSvc := ledgerService.NewService(bookingRepository, schedule, log)
	if err := ledgerSvc.Audit(context.Background()); err != nil {
		log.Fatal("Capacity ledger audit failed: %v", err)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		schedule,
		txMgr,
		log,
	)

	getCabinAvailabilityUseCase := getCabinAvailabilityUC.NewUseCase(
		bookingRepository,
		schedule,
		log,
	)

	getSlotAvailabilityUseCase := getSlotAvailabilityUC.NewUseCase(
		bookingRepository,
		schedule,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getCabinAvailability := getCabinAvailabilityHandler.NewHandler(getCabinAvailabilityUseCase, log)
	getSlotAvailability := getSlotAvailabilityHandler.NewHandler(getSlotAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Дневная занятость кабинок услуги
	api.HandleFunc("/services/{serviceType}/cabins",
		getCabinAvailability.Handle).Methods(http.MethodGet)

	// Слоты кабинки с остатком вместимости
	api.HandleFunc("/services/{serviceType}/slots",
		getSlotAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID (страница подтверждения)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// Все бронирования, сначала самые свежие
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

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
