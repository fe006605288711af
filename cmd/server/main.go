package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/db"
	monitorGrpc "liyu1981.xyz/maternity-monitor-service/pkg/grpc"
	monitorHttp "liyu1981.xyz/maternity-monitor-service/pkg/http"
	"liyu1981.xyz/maternity-monitor-service/pkg/monitor"
	"liyu1981.xyz/maternity-monitor-service/pkg/notify"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "maternity-monitor",
		Short: "Maternal vitals and counting session monitor",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file loaded, copy .env.example to .env first if in development")
			}
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dialector, _ := cfg.dialector()
			// GetInstance migrates on first open
			db.GetInstance(dialector)
			fmt.Println("Migrations applied successfully.")
			return nil
		},
	}
}

func buildNotifier(ctx context.Context, cfg *config) (monitor.INotifier, func(), error) {
	logNotifier := notify.NewLogNotifier()
	if cfg.RedisAddr == "" {
		return logNotifier, func() {}, nil
	}

	client, err := notify.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	fanout := notify.Fanout{logNotifier, notify.NewRedisNotifier(client, cfg.RedisChannel)}
	return fanout, func() { _ = client.Close() }, nil
}

// newTransports builds the REST and gRPC fronts over one core. They share a
// limiter store so a limit set over REST also applies to gRPC calls.
func newTransports(cfg *config, core *monitor.Monitor, engine *gin.Engine) (*monitorHttp.RestfulServer, *monitorGrpc.MonitorServer) {
	limiterStore := monitor.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst)

	rs := &monitorHttp.RestfulServer{
		Server:           engine,
		Monitor:          core,
		RateLimiterStore: limiterStore,
	}
	rs.Setup()

	gs := &monitorGrpc.MonitorServer{
		Monitor:          core,
		RateLimiterStore: limiterStore,
	}
	return rs, gs
}

func runServer(cfg *config) error {
	logger := common.GetLogger()

	dialector, _ := cfg.dialector()
	dbInstance := db.GetInstance(dialector)

	notifier, closeNotifier, err := buildNotifier(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer closeNotifier()

	monitorCore := monitor.New(*dbInstance, common.SystemClock, notifier)
	rs, monitorGrpcServer := newTransports(cfg, monitorCore, gin.Default())

	limiterConfig := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))

	var grpcServer *grpc.Server
	if cfg.GrpcHostPort != "" {
		grpcServer = monitorGrpcServer.NewServer()
		logger.Info("gRPC server created with:", limiterConfig)

		listener, err := net.Listen("tcp", cfg.GrpcHostPort)
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		go func() {
			logger.Info("Starting gRPC server on: " + cfg.GrpcHostPort)
			if err := grpcServer.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	logger.Info("http server created with:", limiterConfig)

	httpServer := &http.Server{Addr: cfg.HttpHostPort, Handler: rs.Server}
	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runPendingDelivery(sweepCtx, monitorCore.Alert, pendingDeliveryInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if grpcServer != nil {
		monitorGrpcServer.Shutdown()
		grpcServer.GracefulStop()
	}
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	logger.Info("Servers stopped")
	return nil
}

const pendingDeliveryInterval = 30 * time.Second

// runPendingDelivery retries alert notifications that failed after their
// write committed, until ctx is cancelled.
func runPendingDelivery(ctx context.Context, alerts monitor.IAlert, interval time.Duration) {
	logger := common.GetLogger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := alerts.DeliverPendingAlerts(ctx, monitor.DefaultPendingDeliveryLimit); err != nil {
				logger.Warn("Pending alert delivery failed", zap.Error(err))
			}
		}
	}
}
