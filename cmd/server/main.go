package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"restaurant_pos_backend/internal/broadcast"
	"restaurant_pos_backend/internal/config"
	"restaurant_pos_backend/internal/database"
	"restaurant_pos_backend/internal/metrics"
	"restaurant_pos_backend/internal/queue"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/router"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/internal/syncer"
	"restaurant_pos_backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	utils.InitLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
	utils.LogInfo("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	var (
		adapter repositories.StoreAdapter
		staff   = repositories.NewMemoryStaffRepository()
	)
	if cfg.DB.Enabled {
		db, err := database.InitDB(ctx, cfg.DB.DSN(), cfg.DB.SchemaPath)
		if err != nil {
			return err
		}
		defer closeDB(db)
		adapter = repositories.NewPostgresAdapter(db)
		staff = adapter
		utils.LogInfo("Persistent store attached", map[string]interface{}{"host": cfg.DB.Host, "db": cfg.DB.Name})
	} else {
		utils.LogDebug("No persistent store configured, running in memory")
	}

	st := store.New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	posMetrics := metrics.NewPOSMetrics(reg)
	st.Subscribe(posMetrics.HandleEvent)

	var (
		cache         services.ConfirmationCache
		historySource syncer.HistorySource
	)
	if cfg.Redis.Enabled() {
		rdb, err := broadcast.Connect(ctx, broadcast.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			utils.LogWarn(err, "Redis unavailable, continuing without shared registry")
		} else {
			defer rdb.Close()
			relay := broadcast.NewRelay(rdb, st, uuid.NewString())
			st.Subscribe(relay.HandleEvent)
			go relay.Run(ctx)
			cache = broadcast.NewConfirmationCache(rdb, cfg.Redis.IdempotencyTTL)
			historySource = broadcast.NewRedisHistorySource(rdb)
		}
	} else {
		utils.LogDebug("No Redis configured, shared registry disabled")
	}

	if cfg.AMQP.Enabled() {
		publisher, err := queue.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, st)
		if err != nil {
			utils.LogWarn(err, "Kitchen queue unavailable, tickets will not be published")
		} else {
			defer publisher.Close()
			st.Subscribe(publisher.HandleEvent)
			go publisher.Run(ctx)
		}
	} else {
		utils.LogDebug("No AMQP URL configured, kitchen tickets disabled")
	}

	menuService := services.NewMenuService(st, adapter)
	tableService := services.NewTableService(st, adapter)
	orderService := services.NewOrderService(st, adapter, posMetrics, cache)
	historyService := services.NewOrderHistoryService(st, adapter)
	reservationService := services.NewReservationService(st, adapter)
	authService := services.NewAuthService(staff)

	if err := menuService.LoadMenu(ctx, cfg.App.SeedMenu); err != nil {
		return err
	}
	if err := tableService.LoadTables(ctx, cfg.App.TableCount); err != nil {
		return err
	}
	if err := historyService.LoadHistory(ctx); err != nil {
		return err
	}
	if err := reservationService.LoadReservations(ctx); err != nil {
		return err
	}
	if err := authService.BootstrapManager(ctx, cfg.Bootstrap.ManagerUsername, cfg.Bootstrap.ManagerPassword); err != nil {
		return err
	}

	// Picks up orders completed on other terminals; a no-op without Redis.
	go syncer.NewPoller(historySource, st, cfg.Sync.PollInterval).Run(ctx)

	engine := router.New(router.Deps{
		Menu:           menuService,
		Tables:         tableService,
		Orders:         orderService,
		History:        historyService,
		Reservations:   reservationService,
		Auth:           authService,
		Gatherer:       reg,
		AllowedOrigins: cfg.App.AllowedOrigins(),
	})

	srv := &http.Server{Addr: ":" + cfg.App.Port, Handler: engine}
	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.App.Port})
	return serve(ctx, srv)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		utils.LogError(err, "Failed to close database")
	}
}
