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
	"github.com/redis/go-redis/v9"

	blockedDatesHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/blocked_dates"
	changeStatusHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/change_appointment_status"
	createAppointmentHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/create_appointment"
	formFieldsHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/form_fields"
	getAppointmentHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/get_available_slots"
	getSettingsHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/get_settings"
	healthHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/list_appointments"
	submitBookingHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/submit_booking"
	updateNoteHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/update_appointment_note"
	updateSettingsHandler "github.com/m04kA/SMC-SiteBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-SiteBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SiteBooking/internal/config"
	"github.com/m04kA/SMC-SiteBooking/internal/infra/ratelimit"
	appointmentRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/appointment"
	blockedDateRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/blockeddate"
	formFieldRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/formfield"
	"github.com/m04kA/SMC-SiteBooking/internal/infra/storage/migrator"
	settingsRepo "github.com/m04kA/SMC-SiteBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/integrations/notifications"
	appointmentsService "github.com/m04kA/SMC-SiteBooking/internal/service/appointments"
	settingsService "github.com/m04kA/SMC-SiteBooking/internal/service/settings"
	getAvailableSlotsUC "github.com/m04kA/SMC-SiteBooking/internal/usecase/get_available_slots"
	submitBookingUC "github.com/m04kA/SMC-SiteBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SiteBooking/migrations"
	"github.com/m04kA/SMC-SiteBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
	"github.com/m04kA/SMC-SiteBooking/pkg/metrics"
	"github.com/m04kA/SMC-SiteBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SiteBooking...")

	// Инициализируем метрики (если включены)
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := m.Up(); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка собирает метрики запросов; при выключенных метриках только прокидывает вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis нужен только для ограничения частоты заявок
	var (
		rdb       *redis.Client
		limiter   submitBookingUC.SubmissionLimiter
		readiness = map[string]healthHandler.Pinger{
			"postgres": healthHandler.PingFunc(wrappedDB.PingContext),
		}
	)
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Ограничитель работает в режиме fail-open, поэтому недоступный Redis не блокирует запуск
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		limiter = ratelimit.NewSubmissionLimiter(rdb, cfg.Booking.RateLimit, cfg.Booking.Window(), cfg.Booking.RateLimitKeyPrefix)
		readiness["redis"] = healthHandler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info("Submission limiter enabled (redis=%s, limit=%d, window=%s)",
			cfg.Redis.Addr, cfg.Booking.RateLimit, cfg.Booking.Window())
	}

	// Уведомления отправляются в фоне; без URL события только логируются
	var sender notifications.Sender
	if cfg.Notifications.URL != "" {
		sender = notifications.NewClient(
			cfg.Notifications.URL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		log.Info("Notifications client initialized (url=%s, timeout=%ds)", cfg.Notifications.URL, cfg.Notifications.Timeout)
	}
	dispatcher := notifications.NewDispatcher(
		sender,
		time.Duration(cfg.Notifications.Timeout)*time.Second,
		metricsCollector,
		log,
	)

	// Инициализируем репозитории
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	formFieldRepository := formFieldRepo.NewRepository(wrappedDB)
	blockedDateRepository := blockedDateRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		settingsRepository,
		formFieldRepository,
		blockedDateRepository,
		txMgr,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		dispatcher,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		settingsSvc,
		blockedDateRepository,
		appointmentRepository,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		settingsSvc,
		blockedDateRepository,
		appointmentRepository,
		txMgr,
		limiter,
		dispatcher,
		metricsCollector,
		cfg.Booking.MinFormFill(),
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(submitBookingUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	changeStatus := changeStatusHandler.NewHandler(appointmentsSvc, log)
	updateNote := updateNoteHandler.NewHandler(appointmentsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	formFields := formFieldsHandler.NewHandler(settingsSvc, log)
	blockedDates := blockedDatesHandler.NewHandler(settingsSvc, log)
	health := healthHandler.NewHandler(readiness, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (виджет записи на сайте)
	// ============================================================

	api.HandleFunc("/projects/{projectId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (кабинет, требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("/projects/{projectId}").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", changeStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/note", updateNote.Handle).Methods(http.MethodPatch)

	// --- Настройки ---
	protected.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Конструктор формы ---
	protected.HandleFunc("/form-fields", formFields.List).Methods(http.MethodGet)
	protected.HandleFunc("/form-fields", formFields.Create).Methods(http.MethodPost)
	protected.HandleFunc("/form-fields/order", formFields.Reorder).Methods(http.MethodPut)
	protected.HandleFunc("/form-fields/{fieldId}", formFields.Update).Methods(http.MethodPut)
	protected.HandleFunc("/form-fields/{fieldId}", formFields.Delete).Methods(http.MethodDelete)

	// --- Исключения из расписания ---
	protected.HandleFunc("/blocked-dates", blockedDates.List).Methods(http.MethodGet)
	protected.HandleFunc("/blocked-dates", blockedDates.Create).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/{exceptionId}", blockedDates.Delete).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уведомлений, отправленных до остановки
	dispatcher.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
