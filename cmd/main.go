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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	availabilityHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/availability"
	cafeteriaBookingsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/cafeteria_bookings"
	homescreenHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/homescreen"
	overallBookingsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/overall_bookings"
	roomBookingsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/room_bookings"
	seatBookingsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/seat_bookings"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/config"
	cafeteriaBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/cafeteriabooking"
	floorRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/floor"
	ledgerRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/ledger"
	roomRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/room"
	roomBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/roombooking"
	seatBookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/seatbooking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/floorservice"
	availabilityService "github.com/m04kA/SMC-FacilityBooking/internal/service/availability"
	cafeteriaBookingsService "github.com/m04kA/SMC-FacilityBooking/internal/service/cafeteriabookings"
	ledgerService "github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/occupancy"
	roomBookingsService "github.com/m04kA/SMC-FacilityBooking/internal/service/roombookings"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/seatallocation"
	seatBookingsService "github.com/m04kA/SMC-FacilityBooking/internal/service/seatbookings"
	createCafeteriaBookingUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_cafeteria_booking"
	createRoomBookingUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_room_booking"
	createSeatBookingUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_seat_booking"
	updateSeatBookingUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/update_seat_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

// eventPublisher издатель событий журнала (RabbitMQ или заглушка)
type eventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
	Close() error
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

	log.Info("Starting SMC-FacilityBooking...")

	// Метрики. nil - выключены, все потребители это допускают.
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.New(wrappedDB)

	// Публикация событий
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		publisher = events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, events.DialAMQP)
		log.Info("Booking events enabled (exchange=%s)", cfg.Events.Exchange)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close event publisher: %v", err)
		}
	}()

	// Справочник этажей: таблица floors или внешний сервис, в обоих случаях через кэш
	var floorSource floorRepo.Source = floorRepo.NewRepository(wrappedDB)
	if cfg.FloorService.Enabled {
		floorSource = floorservice.NewClient(
			cfg.FloorService.URL,
			time.Duration(cfg.FloorService.Timeout)*time.Second,
			log,
		)
		log.Info("Floor reference data from FloorService=%s timeout=%ds", cfg.FloorService.URL, cfg.FloorService.Timeout)
	}

	// Репозитории
	floors := floorRepo.NewCachedRepository(
		floorSource,
		time.Duration(cfg.Cache.FloorTTL)*time.Second,
		time.Duration(cfg.Cache.CleanupInterval)*time.Second,
	)
	rooms := roomRepo.NewRepository(wrappedDB)
	seatBookings := seatBookingRepo.NewRepository(wrappedDB)
	roomBookings := roomBookingRepo.NewRepository(wrappedDB)
	cafeteriaBookings := cafeteriaBookingRepo.NewRepository(wrappedDB)
	ledgerEntries := ledgerRepo.NewRepository(wrappedDB)

	// Сервисы
	engine := availabilityService.NewEngine(
		floors,
		rooms,
		seatBookings,
		roomBookings,
		cafeteriaBookings,
		cfg.Cafeteria.FloorNumber,
		log,
	)
	allocator := seatallocation.NewAllocator(occupancy.NewResolver(seatBookings))

	ledgerSvc := ledgerService.NewService(
		ledgerEntries,
		seatBookings,
		roomBookings,
		cafeteriaBookings,
		engine,
		publisher,
		txMgr,
		log,
	)
	seatBookingsSvc := seatBookingsService.NewService(seatBookings, ledgerSvc, txMgr, log)
	roomBookingsSvc := roomBookingsService.NewService(roomBookings, ledgerSvc, txMgr, log)
	cafeteriaBookingsSvc := cafeteriaBookingsService.NewService(cafeteriaBookings, floors, ledgerSvc, txMgr, log)

	// Use cases
	createSeatBooking := createSeatBookingUC.NewUseCase(
		floors,
		allocator,
		seatBookings,
		ledgerSvc,
		txMgr,
		metricsCollector,
		log,
	)
	updateSeatBooking := updateSeatBookingUC.NewUseCase(
		seatBookings,
		createSeatBooking,
		ledgerSvc,
		txMgr,
		log,
	)
	createRoomBooking := createRoomBookingUC.NewUseCase(
		rooms,
		floors,
		roomBookings,
		ledgerSvc,
		txMgr,
		metricsCollector,
		log,
	)
	createCafeteriaBooking := createCafeteriaBookingUC.NewUseCase(
		floors,
		cafeteriaBookings,
		ledgerSvc,
		txMgr,
		metricsCollector,
		cfg.Cafeteria.FloorNumber,
		log,
	)

	// Handlers
	seatHandler := seatBookingsHandler.NewHandler(createSeatBooking, updateSeatBooking, seatBookingsSvc, log)
	roomHandler := roomBookingsHandler.NewHandler(createRoomBooking, roomBookingsSvc, log)
	cafeteriaHandler := cafeteriaBookingsHandler.NewHandler(createCafeteriaBooking, cafeteriaBookingsSvc, log)
	overallHandler := overallBookingsHandler.NewHandler(ledgerSvc, log)
	availability := availabilityHandler.NewHandler(engine, log)
	homescreen := homescreenHandler.NewHandler(ledgerSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Identify)
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (токен необязателен)
	// ============================================================

	// --- Доступность ---
	api.HandleFunc("/availability/seats", availability.Seats).Methods(http.MethodGet)
	api.HandleFunc("/availability/seats/floors", availability.SeatsByFloor).Methods(http.MethodGet)
	api.HandleFunc("/availability/rooms", availability.Rooms).Methods(http.MethodGet)
	api.HandleFunc("/availability/rooms/now", availability.RoomsNow).Methods(http.MethodGet)
	api.HandleFunc("/availability/cafeteria", availability.Cafeteria).Methods(http.MethodGet)
	api.HandleFunc("/availability/cafeteria/today", availability.CafeteriaToday).Methods(http.MethodGet)

	// --- Создание броней (владелец из тела или X-User-Token) ---
	api.HandleFunc("/seat-bookings", seatHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/room-bookings", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/cafeteria-bookings", cafeteriaHandler.Create).Methods(http.MethodPost)

	// --- Чтение ---
	api.HandleFunc("/seat-bookings", seatHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/seat-bookings/{bookingId}", seatHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/room-bookings", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/room-bookings/{bookingId}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/cafeteria-bookings", cafeteriaHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/cafeteria-bookings/{bookingId}", cafeteriaHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/overall-bookings", overallHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/overall-bookings/{id}", overallHandler.Get).Methods(http.MethodGet)

	// --- Брони пользователя ---
	api.HandleFunc("/users/{token}/seat-bookings", seatHandler.Upcoming).Methods(http.MethodGet)
	api.HandleFunc("/users/{token}/room-bookings", roomHandler.Upcoming).Methods(http.MethodGet)
	api.HandleFunc("/users/{token}/cafeteria-bookings", cafeteriaHandler.Upcoming).Methods(http.MethodGet)
	api.HandleFunc("/homescreen/{token}", homescreen.Handle).Methods(http.MethodGet)
	api.HandleFunc("/overall-bookings", overallHandler.Rollup).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Token)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/seat-bookings/{bookingId}", seatHandler.Replace).Methods(http.MethodPut)
	protected.HandleFunc("/seat-bookings/{bookingId}", seatHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/room-bookings/{bookingId}", roomHandler.Patch).Methods(http.MethodPatch)
	protected.HandleFunc("/room-bookings/{bookingId}", roomHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/cafeteria-bookings/{bookingId}", cafeteriaHandler.Patch).Methods(http.MethodPatch)
	protected.HandleFunc("/cafeteria-bookings/{bookingId}", cafeteriaHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/overall-bookings/{amenity}/{bookingId}", overallHandler.UpdateWindow).Methods(http.MethodPatch)
	protected.HandleFunc("/overall-bookings/{id}", overallHandler.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	// Останавливаем сбор статистики connection pool
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
