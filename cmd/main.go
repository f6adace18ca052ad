package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SchedulingService/internal/api"
	confirmBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/confirm_booking"
	createHoldHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_hold"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getCalendarDayHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_calendar_day"
	listBranchServicesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_branch_services"
	listBranchesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_branches"
	updateBookingStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/branch"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	holdRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/hold"
	outboxRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/outbox"
	staffRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/staff"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
	catalogService "github.com/m04kA/SMC-SchedulingService/internal/service/catalog"
	eligibilityService "github.com/m04kA/SMC-SchedulingService/internal/service/eligibility"
	confirmBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/confirm_booking"
	createHoldUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_hold"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/internal/worker/holdsweeper"
	outboxWorker "github.com/m04kA/SMC-SchedulingService/internal/worker/outbox"
	"github.com/m04kA/SMC-SchedulingService/migrations"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/tracing"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulingService...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Трейсинг (no-op провайдер, если выключен)
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Metrics.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Метрики (nil, если выключены: все методы *metrics.Metrics безопасны для nil)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Миграции
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.Database.URL()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
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
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	branchRepository := branchRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	holdRepository := holdRepo.NewRepository(wrappedDB)
	outboxRepository := outboxRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	eligibilitySvc := eligibilityService.NewService(staffRepository, log)
	catalogSvc := catalogService.NewService(branchRepository, catalogRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	calendarSvc := calendarService.NewService(
		branchRepository,
		staffRepository,
		calendarRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		branchRepository,
		catalogRepository,
		eligibilitySvc,
		calendarRepository,
		bookingRepository,
		holdRepository,
		metricsCollector,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		getAvailableSlotsUseCase,
		holdRepository,
		bookingRepository,
		txMgr,
		metricsCollector,
		cfg.Booking.HoldTTL(),
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		holdRepository,
		bookingRepository,
		outboxRepository,
		txMgr,
		metricsCollector,
		cfg.Booking.DefaultPhoneRegion,
		log,
	)

	// Инициализируем handlers
	handlers := api.Handlers{
		GetAvailableSlots:   getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log).Handle,
		CreateHold:          createHoldHandler.NewHandler(createHoldUseCase, log).Handle,
		ConfirmBooking:      confirmBookingHandler.NewHandler(confirmBookingUseCase, log).Handle,
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log).Handle,
		ListBranches:        listBranchesHandler.NewHandler(catalogSvc, log).Handle,
		ListBranchServices:  listBranchServicesHandler.NewHandler(catalogSvc, log).Handle,
		GetCalendarDay:      getCalendarDayHandler.NewHandler(calendarSvc, log).Handle,
		UpdateBookingStatus: updateBookingStatusHandler.NewHandler(bookingSvc, log).Handle,
	}

	routerOpts := api.RouterOptions{
		Logger:      log,
		ServiceName: cfg.Metrics.ServiceName,
	}
	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
	}

	// Ограничение частоты создания холдов
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		routerOpts.HoldLimiter = middleware.NewRateLimiter(
			rdb,
			cfg.RateLimit.HoldPerWindow,
			cfg.RateLimit.Window(),
			"rl:hold",
			cfg.RateLimit.FailOpen,
			log,
		)
		log.Info("Hold rate limit enabled: %d per %s (redis=%s, fail_open=%v)",
			cfg.RateLimit.HoldPerWindow, cfg.RateLimit.Window(), cfg.Redis.Addr, cfg.RateLimit.FailOpen)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(handlers, routerOpts),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Очистка давно истекших холдов
	sweeper := holdsweeper.NewSweeper(
		holdRepository,
		metricsCollector,
		cfg.Booking.HoldSweepCron,
		cfg.Booking.SweepGrace(),
		log,
	)
	g.Go(func() error {
		return sweeper.Run(gctx)
	})

	// Публикация событий outbox в Kafka
	if cfg.Outbox.Enabled {
		writer := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Kafka.NormalizedBrokers()...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		}
		defer writer.Close()

		publisher := outboxWorker.NewPublisher(
			outboxRepository,
			writer,
			txMgr,
			metricsCollector,
			cfg.Kafka.Topic,
			cfg.Outbox.BatchSize,
			cfg.Outbox.PollInterval(),
			log,
		)
		g.Go(func() error {
			return publisher.Run(gctx)
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}

		close(stopMetricsCh)

		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("Failed to flush traces: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}
