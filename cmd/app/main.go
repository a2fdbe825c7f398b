package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ups/cmd"
	"ups/internal/adapters/in/peer"
	"ups/internal/adapters/out/postgres"
	"ups/internal/core/application/usecases/commands"
	"ups/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:   "ups",
	Short: "Truck dispatch coordinator between the world simulator and the order source",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "path to an optional .env file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("ups: %v", err)
	}
}

func run(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := cmd.NewCompositionRoot(cfg, db, m, logger)

	dialer := net.Dialer{Timeout: cfg.IOTimeout}
	worldConn, err := dialer.DialContext(ctx, "tcp", cfg.WorldAddr)
	if err != nil {
		return fmt.Errorf("dial world %s: %w", cfg.WorldAddr, err)
	}
	defer worldConn.Close()

	peerConn, err := dialer.DialContext(ctx, "tcp", cfg.PeerAddr)
	if err != nil {
		return fmt.Errorf("dial order source %s: %w", cfg.PeerAddr, err)
	}
	defer peerConn.Close()

	worldClient := app.CreateWorldClient(worldConn)

	createWorld, err := commands.NewCreateWorldCommand(cfg.InitialTrucks)
	if err != nil {
		return err
	}
	worldID, err := app.CreateCreateWorldCommandHandler(worldClient).Handle(ctx, createWorld)
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}

	announce := app.CreateAnnounceWorldCommandHandler(app.CreatePeerGateway(peerConn))
	if err := announce.Handle(ctx, commands.NewAnnounceWorldCommand(worldID)); err != nil {
		return fmt.Errorf("announce world %d: %w", worldID, err)
	}

	jobManager := app.CreateJobManager(worldID)
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	sendTruck := app.CreateSendTruckCommandHandler(worldClient, worldID)

	var listener *peer.Listener
	if cfg.PeerListenAddr != "" {
		ln, err := net.Listen("tcp", cfg.PeerListenAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.PeerListenAddr, err)
		}
		listener = peer.NewListener(ln, sendTruck, logger)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	// The process lives as long as the order source connection it announced the world to.
	g.Go(func() error {
		defer cancel()
		return peer.NewSession(peerConn, sendTruck, logger).Serve(gctx)
	})

	if listener != nil {
		logger.Info("Accepting order source connections", "addr", listener.Addr().String())
		g.Go(func() error {
			return listener.Serve(gctx)
		})
	}

	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer(worldID).Register(e, registry)

	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	logger.Info("Coordinator running", "world_id", int64(worldID), "http_port", cfg.HTTPPort)

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Coordinator stopped")
	return nil
}
