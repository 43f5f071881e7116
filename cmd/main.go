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

	calculatePricingHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/calculate_pricing"
	cancelBookingHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/cancel_booking"
	configureSeatsHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/configure_seats"
	createBookingHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/get_booking"
	getDueTransitionsHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/get_due_transitions"
	getEligibleSeatsHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/get_eligible_seats"
	getLibraryBookingsHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/get_library_bookings"
	getStudentBookingsHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/get_student_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/update_booking_status"
	validateSeatChoiceHandler "github.com/m04kA/SMC-SeatBookingService/internal/api/handlers/validate_seat_choice"
	"github.com/m04kA/SMC-SeatBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBookingService/internal/config"
	seatsCache "github.com/m04kA/SMC-SeatBookingService/internal/infra/cache/seats"
	bookingRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/booking"
	lockerRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/locker"
	planRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/plan"
	promotionRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/promotion"
	seatRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/seat"
	timeSlotRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SeatBookingService/internal/integrations/studentdirectory"
	bookingsService "github.com/m04kA/SMC-SeatBookingService/internal/service/bookings"
	calculatePricingUC "github.com/m04kA/SMC-SeatBookingService/internal/usecase/calculate_pricing"
	configureSeatsUC "github.com/m04kA/SMC-SeatBookingService/internal/usecase/configure_seats"
	createBookingUC "github.com/m04kA/SMC-SeatBookingService/internal/usecase/create_booking"
	getEligibleSeatsUC "github.com/m04kA/SMC-SeatBookingService/internal/usecase/get_eligible_seats"
	validateSeatChoiceUC "github.com/m04kA/SMC-SeatBookingService/internal/usecase/validate_seat_choice"
	"github.com/m04kA/SMC-SeatBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatBookingService/pkg/logger"
	"github.com/m04kA/SMC-SeatBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SeatBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SeatBookingService/pkg/txmanager"
)

const rateLimitCleanupInterval = time.Minute

func main() {
	// Загружаем конфигурацию
	configPath := config.Path("config.toml")
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

	log.Info("Starting SMC-SeatBookingService...")
	log.Info("Configuration loaded from %s", configPath)

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

	// Кэш листингов мест. Без Redis кэш nil и всегда промахивается.
	var seatCache *seatsCache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s, seat listings will be served from the database until it recovers: %v",
				cfg.Redis.Addr, err)
		}
		cancelPing()

		seatCache = seatsCache.NewCache(redisClient, time.Duration(cfg.Redis.SeatsTTL)*time.Second)
		log.Info("Seat cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SeatsTTL)
	}

	// Инициализируем интеграционных клиентов
	studentClient := studentdirectory.NewClient(
		cfg.StudentDirectory.URL,
		time.Duration(cfg.StudentDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("Student directory client initialized (url=%s, timeout=%ds)",
		cfg.StudentDirectory.URL, cfg.StudentDirectory.Timeout)

	// Интерфейс для transaction manager (используется в usecases и сервисе)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		executor dbmetrics.DBExecutor
		txMgr    TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем репозитории
	planRepository := planRepo.NewRepository(executor)
	timeSlotRepository := timeSlotRepo.NewRepository(executor)
	seatRepository := seatRepo.NewRepository(executor)
	lockerRepository := lockerRepo.NewRepository(executor)
	promotionRepository := promotionRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)

	// Инициализируем use cases
	calculatePricingUseCase := calculatePricingUC.NewUseCase(
		planRepository,
		timeSlotRepository,
		lockerRepository,
		promotionRepository,
		studentClient,
		metricsCollector,
		log,
	)

	getEligibleSeatsUseCase := getEligibleSeatsUC.NewUseCase(
		planRepository,
		timeSlotRepository,
		seatRepository,
		bookingRepository,
		seatCache,
		metricsCollector,
		log,
	)

	validateSeatChoiceUseCase := validateSeatChoiceUC.NewUseCase(
		planRepository,
		timeSlotRepository,
		seatRepository,
		bookingRepository,
		log,
	)

	// calculate_pricing считает цену и внутри транзакции создания бронирования
	createBookingUseCase := createBookingUC.NewUseCase(
		planRepository,
		timeSlotRepository,
		seatRepository,
		lockerRepository,
		bookingRepository,
		calculatePricingUseCase,
		seatCache,
		metricsCollector,
		txMgr,
		cfg.Booking.ConflictRetries,
		log,
	)

	configureSeatsUseCase := configureSeatsUC.NewUseCase(
		seatRepository,
		planRepository,
		lockerRepository,
		seatCache,
		txMgr,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		seatCache,
		log,
	)

	// Инициализируем handlers
	getEligibleSeats := getEligibleSeatsHandler.NewHandler(getEligibleSeatsUseCase, log)
	validateSeatChoice := validateSeatChoiceHandler.NewHandler(validateSeatChoiceUseCase, log)
	calculatePricing := calculatePricingHandler.NewHandler(calculatePricingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getLibraryBookings := getLibraryBookingsHandler.NewHandler(bookingSvc, log)
	getDueTransitions := getDueTransitionsHandler.NewHandler(bookingSvc, log)
	configureSeats := configureSeatsHandler.NewHandler(configureSeatsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с лимитом запросов на IP)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	stopLimiterCh := make(chan struct{})
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		go limiter.RunCleanup(rateLimitCleanupInterval, stopLimiterCh)
		public.Use(limiter.Limit)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Места ---
	// Свободные места плана на период
	public.HandleFunc("/libraries/{libraryId}/plans/{planId}/eligible-seats",
		getEligibleSeats.Handle).Methods(http.MethodGet)

	// Проверка выбранного места
	public.HandleFunc("/libraries/{libraryId}/plans/{planId}/seats/{seatId}/validate",
		validateSeatChoice.Handle).Methods(http.MethodGet)

	// --- Цены ---
	public.HandleFunc("/libraries/{libraryId}/pricing/quote",
		calculatePricing.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Создание бронирования (X-Librarian-ID необязателен, нужен для немедленной активации)
	public.Handle("/bookings",
		middleware.OptionalLibrarian(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)

	// Получение бронирования по ID
	public.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подписки студента
	public.HandleFunc("/students/{studentId}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// LIBRARIAN ROUTES (требуют X-Librarian-ID header)
	// ============================================================

	librarian := api.PathPrefix("").Subrouter()
	librarian.Use(middleware.LibrarianAuth)

	// Отмена бронирования
	librarian.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса бронирования
	librarian.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Назревшие переходы статусов (для планировщика)
	librarian.HandleFunc("/libraries/{libraryId}/bookings/due-transitions",
		getDueTransitions.Handle).Methods(http.MethodGet)

	// Список бронирований библиотеки
	librarian.HandleFunc("/libraries/{libraryId}/bookings", getLibraryBookings.Handle).Methods(http.MethodGet)

	// Массовое создание мест
	librarian.HandleFunc("/libraries/{libraryId}/seats/bulk", configureSeats.Handle).Methods(http.MethodPost)

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

	close(stopLimiterCh)

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
