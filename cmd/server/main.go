package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"kingbandits/internal/config"
	"kingbandits/internal/logging"
	"kingbandits/internal/network"
	"kingbandits/internal/services/cluster"
	"kingbandits/internal/services/feed"
	"kingbandits/internal/services/gameroom"
	"kingbandits/internal/session"
)

func main() {
	// 1. CONFIGURATION
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("listen", cfg.ListenAddr),
		zap.Duration("reset_delay", cfg.ResetDelay),
		zap.String("consul", cfg.ConsulAddr),
		zap.String("nats", cfg.NATSURL),
	)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := cluster.NewHealthAggregator()
	opts := []session.Option{
		session.WithResetDelay(cfg.ResetDelay),
		session.WithLogger(logger),
	}

	// 2. EVENT FEED (optional)
	if cfg.NATSURL != "" {
		pub, err := feed.Connect(cfg.NATSURL, cfg.FeedSubject, logger)
		if err != nil {
			return fmt.Errorf("event feed: %w", err)
		}
		defer func() {
			if err := pub.Close(); err != nil {
				logger.Warn("event feed drain failed", zap.Error(err))
			}
		}()
		opts = append(opts, session.WithFeed(pub))
		health.AddCheck("nats", pub.Check)
	}

	// 3. GAME LOGIC ON THE EVENT LOOP
	hub := network.NewHub(logger)
	rooms := gameroom.NewRegistry(logger)
	handler := session.NewGameHandler(rooms, hub, opts...)
	go hub.Run(ctx, handler)

	health.AddCheck("event_loop", func() error {
		select {
		case <-hub.Done():
			return network.ErrHubStopped
		default:
			return nil
		}
	})

	// 4. HTTP ROUTES: /ws, /health, /rooms
	srv := network.NewServer(hub, cfg.AllowedOrigins, logger)
	srv.Handle("/health", health.Handler())
	gameroom.RegisterHandlers(srv, rooms, hub, logger)

	// 5. SERVICE REGISTRATION (optional)
	if cfg.ConsulAddr != "" {
		client, err := cluster.NewConsulClient(cfg.ConsulAddr, logger)
		if err != nil {
			return fmt.Errorf("consul client: %w", err)
		}
		serviceID, err := cluster.Register(client, cluster.Registration{
			ServiceName: cfg.ServiceName,
			Host:        cfg.AdvertiseHost,
			Port:        cfg.ListenPort(),
		}, logger)
		if err != nil {
			return fmt.Errorf("consul registration: %w", err)
		}
		defer func() {
			if err := cluster.Deregister(client, serviceID); err != nil {
				logger.Warn("consul deregistration failed", zap.String("service_id", serviceID), zap.Error(err))
			}
		}()
	}

	// 6. SERVE UNTIL SIGNALLED
	err := srv.ListenAndServe(ctx, cfg.ListenAddr)
	stop()
	<-hub.Done()
	return err
}
