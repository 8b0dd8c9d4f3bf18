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

	"github.com/turnate/booking-engine/internal/api/handlers"
	cancelAppointmentHandler "github.com/turnate/booking-engine/internal/api/handlers/cancel_appointment"
	createBookingHandler "github.com/turnate/booking-engine/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/turnate/booking-engine/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/turnate/booking-engine/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/turnate/booking-engine/internal/api/handlers/list_appointments"
	listServicesHandler "github.com/turnate/booking-engine/internal/api/handlers/list_services"
	"github.com/turnate/booking-engine/internal/api/middleware"
	"github.com/turnate/booking-engine/internal/config"
	appointmentRepo "github.com/turnate/booking-engine/internal/infra/storage/appointment"
	catalogRepo "github.com/turnate/booking-engine/internal/infra/storage/catalog"
	"github.com/turnate/booking-engine/internal/integrations/turnosapi"
	"github.com/turnate/booking-engine/internal/service/agenda"
	catalogService "github.com/turnate/booking-engine/internal/service/catalog"
	createBookingUC "github.com/turnate/booking-engine/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/turnate/booking-engine/internal/usecase/get_available_slots"
	"github.com/turnate/booking-engine/pkg/dbmetrics"
	"github.com/turnate/booking-engine/pkg/logger"
	"github.com/turnate/booking-engine/pkg/metrics"
	"github.com/turnate/booking-engine/pkg/txmanager"
)

// dataProvider источник услуг, расписания и бронирований (PostgreSQL или backend Turnate)
type dataProvider interface {
	createBookingUC.DataProvider
	catalogService.DataProvider
}

func main() {
	configPath := os.Getenv("TURNATE_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting Turnate booking engine...")
	log.Info("Configuration loaded from %s", configPath)

	defaultLoc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid default time zone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Выбираем поставщика данных
	var (
		provider  dataProvider
		agendaSvc *agenda.Service
	)

	switch cfg.Provider.Mode {
	case config.ProviderPostgres:
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

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)

		agendaSvc = agenda.NewService(
			catalogRepo.NewRepository(wrappedDB),
			appointmentRepo.NewRepository(wrappedDB),
			txmanager.NewTransactionManager(wrappedDB),
			defaultLoc,
			log,
		)
		provider = agendaSvc

	case config.ProviderHTTP:
		provider = turnosapi.NewClient(
			cfg.Backend.URL,
			time.Duration(cfg.Backend.Timeout)*time.Second,
			log,
		)
		log.Info("Using Turnate backend %s (timeout=%ds)", cfg.Backend.URL, cfg.Backend.Timeout)
	}

	// Инициализируем use cases и сервисы
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(provider, getAvailableSlotsUC.Settings{
		DefaultLocation:    defaultLoc,
		MaxRangeDays:       cfg.Booking.MaxRangeDays,
		AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
	}, log)

	createBookingUseCase := createBookingUC.NewUseCase(provider, createBookingUC.Settings{
		DefaultLocation:    defaultLoc,
		AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
	}, log)

	catalogSvc := catalogService.NewService(provider, defaultLoc, cfg.Booking.MaxRangeDays, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, metricsCollector, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getSchedule := getScheduleHandler.NewHandler(catalogSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Session)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.TrustForwarded,
		)
		go limiter.RunCleanup(stopCh)
		api.Use(limiter.Middleware())
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (страница бронирования бизнеса)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/b/{code}/services", listServices.Handle).Methods(http.MethodGet)

	// Недельное расписание
	api.HandleFunc("/b/{code}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Занятые интервалы
	api.HandleFunc("/b/{code}/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Доступные слоты для услуги
	api.HandleFunc("/b/{code}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/b/{code}/appointments", createBooking.Handle).Methods(http.MethodPost)

	// Отмена доступна только когда бронирования хранятся у нас
	if agendaSvc != nil {
		cancelAppointment := cancelAppointmentHandler.NewHandler(agendaSvc, log)
		api.HandleFunc("/b/{code}/appointments/{appointmentId}/cancel",
			cancelAppointment.Handle).Methods(http.MethodPatch)
	}

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
		log.Info("Starting server on %s (provider=%s)", addr, cfg.Provider.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (статистика пула, очистка лимитера)
	close(stopCh)

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
