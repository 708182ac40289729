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

	cancelReservationHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/create_reservation"
	getDayReservationsHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/get_day_reservations"
	getDaySlotsHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/get_day_slots"
	getOccupancyHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/get_occupancy"
	getReservationHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/get_reservation"
	reassignTablesHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/reassign_tables"
	updateStatusHandler "github.com/avdeev-m/TableReservationService/internal/api/handlers/update_status"
	"github.com/avdeev-m/TableReservationService/internal/api/middleware"
	"github.com/avdeev-m/TableReservationService/internal/config"
	reservationRepo "github.com/avdeev-m/TableReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/avdeev-m/TableReservationService/internal/infra/storage/table"
	venueConfigClient "github.com/avdeev-m/TableReservationService/internal/integrations/venueconfig"
	occupancyService "github.com/avdeev-m/TableReservationService/internal/service/occupancy"
	reservationsService "github.com/avdeev-m/TableReservationService/internal/service/reservations"
	checkAvailabilityUC "github.com/avdeev-m/TableReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/avdeev-m/TableReservationService/internal/usecase/create_reservation"
	getDaySlotsUC "github.com/avdeev-m/TableReservationService/internal/usecase/get_day_slots"
	reassignTablesUC "github.com/avdeev-m/TableReservationService/internal/usecase/reassign_tables"
	"github.com/avdeev-m/TableReservationService/pkg/dbmetrics"
	"github.com/avdeev-m/TableReservationService/pkg/logger"
	"github.com/avdeev-m/TableReservationService/pkg/metrics"
	"github.com/avdeev-m/TableReservationService/pkg/simpletxmanager"
	"github.com/avdeev-m/TableReservationService/pkg/txmanager"
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

	log.Info("Starting TableReservationService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент сервиса конфигурации заведения
	venueClient := venueConfigClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	log.Info("VenueConfigService client initialized (url=%s, timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		tableRepository       *tableRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		tableRepository = tableRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		tableRepository = tableRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, log)
	occupancySvc := occupancyService.NewService(reservationRepository, tableRepository, log)

	// Инициализируем use cases
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(venueClient, log)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		tableRepository,
		venueClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		venueClient,
		txMgr,
		log,
	)

	reassignTablesUseCase := reassignTablesUC.NewUseCase(
		reservationRepository,
		tableRepository,
		venueClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getDayReservations := getDayReservationsHandler.NewHandler(reservationSvc, log)
	updateStatus := updateStatusHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	reassignTables := reassignTablesHandler.NewHandler(reassignTablesUseCase, log)
	getOccupancy := getOccupancyHandler.NewHandler(occupancySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Слоты бронирования на дату
	api.HandleFunc("/venue/day-slots", getDaySlots.Handle).Methods(http.MethodGet)

	// Проверка доступности слота
	api.HandleFunc("/venue/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Срез занятости зала
	api.HandleFunc("/venue/occupancy", getOccupancy.Handle).Methods(http.MethodGet)

	// Создание бронирования: гости создают клиентские бронирования,
	// запросы с заголовком персонала - административные
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирования дня
	protected.HandleFunc("/reservations", getDayReservations.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	protected.HandleFunc("/reservations/{id}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{id}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// Перенос бронирования на другие столы
	protected.HandleFunc("/reservations/{id}/tables", reassignTables.Handle).Methods(http.MethodPut)

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
