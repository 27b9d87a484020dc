package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	availabilityStreamHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/availability_stream"
	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_hours"
	getClientAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_client_appointments"
	getEstablishmentAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_establishment_appointments"
	healthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	listEstablishmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_establishments"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	establishmentsCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/establishments"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/invalidation"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessHoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/businesshours"
	establishmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/establishment"
	staffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/staff"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	establishmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/establishments"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Booking timezone: %s", location)

	// Инициализируем метрики (если включены). nil *metrics.Metrics ничего не записывает
	var metricsCollector *metrics.Metrics
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Подключаемся к Redis (кэш списка заведений и сигналы инвалидации)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Redis не обязателен для бронирования: без него работают запросы, но не кэш и поток
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Successfully connected to Redis (addr=%s)", cfg.Redis.Addr)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	businessHoursRepository := businessHoursRepo.NewRepository(wrappedDB)
	establishmentRepository := establishmentRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)

	listCache := establishmentsCache.NewCache(
		redisClient,
		time.Duration(cfg.Cache.EstablishmentsTTL)*time.Second,
		&establishmentsCache.RealTimeProvider{},
	)
	publisher := invalidation.NewPublisher(redisClient, metricsCollector)
	subscriber := invalidation.NewSubscriber(redisClient, log)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		establishmentRepository,
		publisher,
		log,
	)
	establishmentSvc := establishmentsService.NewService(
		establishmentRepository,
		businessHoursRepository,
		listCache,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		establishmentRepository,
		establishmentSvc,
		staffRepository,
		appointmentRepository,
		metricsCollector,
		location,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		establishmentRepository,
		establishmentSvc,
		staffRepository,
		txMgr,
		publisher,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	listEstablishments := listEstablishmentsHandler.NewHandler(establishmentSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(establishmentSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	availabilityStream := availabilityStreamHandler.NewHandler(
		subscriber,
		time.Duration(cfg.Stream.PingInterval)*time.Second,
		log,
	)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getEstablishmentAppointments := getEstablishmentAppointmentsHandler.NewHandler(appointmentSvc, log)
	health := healthHandler.NewHandler(wrappedDB, redisClient, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Readiness).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог заведений
	api.HandleFunc("/establishments", listEstablishments.Handle).Methods(http.MethodGet)

	// Часы работы на дату
	api.HandleFunc("/establishments/{establishmentId}/business-hours",
		getBusinessHours.Handle).Methods(http.MethodGet)

	// Доступное время для записи
	api.HandleFunc("/establishments/{establishmentId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Websocket поток: сигнал перезапросить доступное время
	api.HandleFunc("/establishments/{establishmentId}/availability/stream",
		availabilityStream.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/users/{userId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Для владельца заведения ---
	protected.HandleFunc("/establishments/{establishmentId}/appointments",
		getEstablishmentAppointments.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Websocket соединения после upgrade не закрываются Shutdown, их останавливает отмена базового контекста
	baseCtx, stopStreams := context.WithCancel(context.Background())
	srv.BaseContext = func(net.Listener) context.Context { return baseCtx }
	srv.RegisterOnShutdown(stopStreams)

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

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
