package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/syncscope/syncscope/compare"
	compareapi "github.com/syncscope/syncscope/compare/api"
	comparemw "github.com/syncscope/syncscope/compare/middleware"
	"github.com/syncscope/syncscope/monitor"
	monitormw "github.com/syncscope/syncscope/monitor/middleware"
	"github.com/syncscope/syncscope/pkg/metrics"
	"github.com/syncscope/syncscope/pkg/procwatch"
	"github.com/syncscope/syncscope/pkg/progress"
	"github.com/syncscope/syncscope/pkg/server"
	"github.com/syncscope/syncscope/pkg/storage/sqlite"
	"github.com/syncscope/syncscope/pkg/tracing"
)

const (
	svcName       = "syncscope"
	defHTTPPort   = "7070"
	envPrefixHTTP = "SYNCSCOPE_HTTP_"
)

func NewMonitorCmd() *cobra.Command {
	var (
		environment string
		syncVersion string
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Start the sampling daemon",
		Long:  `Sample the watched db-sync process every interval and record memory and CPU series keyed by sync progress.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			cfg, err := loadConfig()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			if environment != "" {
				cfg.Environment = environment
			}
			if syncVersion != "" {
				cfg.SyncVersion = syncVersion
			}
			cfg.finalize()

			if cfg.Environment == "" || cfg.SyncVersion == "" {
				logErrorCmd(*cmd, errors.New("environment name and db-sync version are required"))

				return
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			if err := runMonitor(ctx, cancel, cfg, noProgress); err != nil {
				cmd.PrintErrf("failed to start monitor: %s", err.Error())
			}
			cancel()
		},
	}

	cmd.Flags().StringVar(&environment, "env", "", "Environment name (e.g. preview, preprod, mainnet)")
	cmd.Flags().StringVar(&syncVersion, "db-sync-ver", "", "db-sync version (e.g. 13.6.0.5)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Key samples by wall clock instead of sync progress")

	return cmd
}

func runMonitor(ctx context.Context, cancel context.CancelFunc, cfg config, noProgress bool) error {
	g, ctx := errgroup.WithContext(ctx)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("failed to parse log level: %s", err.Error())
	}
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}

	var tp trace.TracerProvider
	switch {
	case cfg.OTELURL == (url.URL{}):
		tp = noop.NewTracerProvider()
	default:
		sdktp, err := tracing.NewProvider(ctx, svcName, cfg.OTELURL, cfg.InstanceID, cfg.TraceRatio)
		if err != nil {
			return fmt.Errorf("failed to initialize opentelemetry: %s", err.Error())
		}
		defer func() {
			if err := sdktp.Shutdown(ctx); err != nil {
				logger.Error("error shutting down tracer provider", slog.Any("error", err))
			}
		}()
		tp = sdktp
	}
	tracer := tp.Tracer(svcName)

	db, err := sqlite.NewDatabase(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	store := sqlite.NewStore(db)
	defer store.Close()

	var source progress.Source
	if !noProgress {
		pg, err := progress.Connect(cfg.PGHost, cfg.PGPort, cfg.PGUser, cfg.PGPassword, cfg.PGDatabase, cfg.PGSSLMode)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pg.Close()
		source = pg
	}

	svc := monitor.NewService(
		procwatch.NewLocator(cfg.ProcessName),
		procwatch.NewExtractor(),
		source,
		store,
		cfg.versionTag(),
		logger,
	)
	svc = monitormw.Logging(logger, svc)
	svc = monitormw.Tracing(tracer, svc)
	counter, latency := metrics.MakeMetrics(svcName, "monitor")
	svc = monitormw.Metrics(counter, latency, svc)

	runner := monitor.NewRunner(svc, logger, cfg.Interval)

	compareSvc := compare.NewService(store)
	compareSvc = comparemw.Logging(logger, compareSvc)
	compareSvc = comparemw.Tracing(tracer, compareSvc)
	ccounter, clatency := metrics.MakeMetrics(svcName, "compare")
	compareSvc = comparemw.Metrics(ccounter, clatency, compareSvc)

	httpServerConfig := server.Config{Port: defHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		return fmt.Errorf("failed to load %s HTTP server configuration: %s", svcName, err.Error())
	}
	hs := server.NewHTTPServer(ctx, cancel, svcName, httpServerConfig, compareapi.MakeHandler(compareSvc, logger, cfg.InstanceID), logger)

	g.Go(func() error {
		if err := runner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service exited with error: %s", svcName, err))
	}

	return nil
}
