package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/monitoring"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

const (
	maxHeaderBytes  = 1 << 20
	shutdownTimeout = 30 * time.Second
)

type Server struct {
	echo          *echo.Echo
	cfg           *config.Config
	db            *sqlx.DB
	redisClient   *redis.Client
	s3Client      *s3.Client
	preSignClient *s3.PresignClient
	logger        logger.Logger

	// set by MapHandlers
	scheduler    monitoring.Scheduler
	monitoringUC monitoring.UseCase
	downloadsUC  downloads.UseCase
}

// NewServer builds the API server. The S3 clients may be nil when archival is disabled.
func NewServer(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, s3Client *s3.Client, preSignClient *s3.PresignClient, logger logger.Logger) *Server {
	return &Server{
		echo:          echo.New(),
		cfg:           cfg,
		db:            db,
		redisClient:   redisClient,
		s3Client:      s3Client,
		preSignClient: preSignClient,
		logger:        logger,
	}
}

func (s *Server) Run() error {
	if err := s.MapHandlers(s.echo); err != nil {
		return err
	}
	s.echo.HideBanner = true

	server := &http.Server{
		Addr:           s.cfg.Server.Port,
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		MaxHeaderBytes: maxHeaderBytes,
	}
	go func() {
		s.logger.Infof("Server is listening on PORT: %s", s.cfg.Server.Port)
		if err := s.echo.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatalf("Error starting Server: %v", err)
		}
	}()

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		s.scheduler.Run(schedCtx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit

	ctx, shutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdown()
	s.logger.Info("Server is shutting down")

	if err := s.echo.Server.Shutdown(ctx); err != nil {
		s.logger.Errorf("HTTP shutdown error: %v", err)
	}
	stopScheduler()
	select {
	case <-schedDone:
	case <-ctx.Done():
	}
	// runs first, so their transfers are cancelled as interrupted rather than failed
	if err := s.monitoringUC.Shutdown(ctx); err != nil {
		s.logger.Errorf("Monitoring shutdown error: %v", err)
	}
	return s.downloadsUC.Shutdown(ctx)
}
