package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cartapp "github.com/dwikikusuma/shopping-cart/internal/cart/app"
	"github.com/dwikikusuma/shopping-cart/internal/cart/httpapi"
	"github.com/dwikikusuma/shopping-cart/pkg/config"
	"github.com/dwikikusuma/shopping-cart/pkg/logger"
	"github.com/dwikikusuma/shopping-cart/pkg/shutdown"
	"github.com/dwikikusuma/shopping-cart/pkg/telemetry"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const stopTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   cfg.ServiceName,
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := telemetry.InitTracer(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Env:         cfg.AppEnv,
		Version:     version,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Error("tracer init failed", slog.Any("err", err))
		os.Exit(1)
	}

	cartSvc := cartapp.NewService(cartapp.NewRegistry(),
		cartapp.WithLogger(log),
		cartapp.WithSessionTTL(cfg.SessionTTL),
	)

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           httpapi.NewServer(cartSvc, log).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	if cfg.SessionTTL > 0 && cfg.SweepInterval > 0 {
		g.Go(func() error {
			return cartSvc.RunSweeper(gctx, cfg.SweepInterval)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested", slog.Any("cause", context.Cause(gctx)))
		healthSrv.Shutdown()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
		defer stopCancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopCtx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	exitCode := 0
	if err := g.Wait(); err != nil {
		log.Error("server exited", slog.Any("err", err))
		exitCode = 1
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer flushCancel()
	if err := tp.Shutdown(flushCtx); err != nil {
		log.Warn("tracer shutdown error", slog.Any("err", err))
	}

	log.Info("bye")
	if exitCode != 0 {
		flushCancel()
		cancel()
		os.Exit(exitCode)
	}
}
