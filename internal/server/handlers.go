package server

import (
	"net/http"

	authHttp "github.com/amankumarsingh77/channel-monitor/internal/auth/delivery/http"
	authRepository "github.com/amankumarsingh77/channel-monitor/internal/auth/repository"
	authUsecase "github.com/amankumarsingh77/channel-monitor/internal/auth/usecase"
	channelsHttp "github.com/amankumarsingh77/channel-monitor/internal/channels/delivery/http"
	channelsRepository "github.com/amankumarsingh77/channel-monitor/internal/channels/repository"
	channelsUsecase "github.com/amankumarsingh77/channel-monitor/internal/channels/usecase"
	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/downloads/broadcast"
	downloadsHttp "github.com/amankumarsingh77/channel-monitor/internal/downloads/delivery/http"
	"github.com/amankumarsingh77/channel-monitor/internal/downloads/engine"
	downloadsRepository "github.com/amankumarsingh77/channel-monitor/internal/downloads/repository"
	downloadsUsecase "github.com/amankumarsingh77/channel-monitor/internal/downloads/usecase"
	"github.com/amankumarsingh77/channel-monitor/internal/middleware"
	monitoringHttp "github.com/amankumarsingh77/channel-monitor/internal/monitoring/delivery/http"
	monitoringRepository "github.com/amankumarsingh77/channel-monitor/internal/monitoring/repository"
	"github.com/amankumarsingh77/channel-monitor/internal/monitoring/scheduler"
	monitoringUsecase "github.com/amankumarsingh77/channel-monitor/internal/monitoring/usecase"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube/dataapi"
	youtubeRepository "github.com/amankumarsingh77/channel-monitor/internal/youtube/repository"
	youtubeUsecase "github.com/amankumarsingh77/channel-monitor/internal/youtube/usecase"
	"github.com/amankumarsingh77/channel-monitor/pkg/secret"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	box, err := secret.NewBox(s.cfg.Security.EncryptionKey)
	if err != nil {
		return errors.Wrap(err, "secret.NewBox")
	}

	aRepo := authRepository.NewAuthRepo(s.db)
	cRepo := channelsRepository.NewChannelsRepository(s.db)
	mRepo := monitoringRepository.NewMonitoringRepository(s.db)
	mRedisRepo := monitoringRepository.NewMonitoringRedisRepo(s.redisClient)
	dRepo := downloadsRepository.NewDownloadsRepository(s.db)
	dRedisRepo := downloadsRepository.NewDownloadsRedisRepo(s.redisClient)
	ytCache := youtubeRepository.NewYoutubeRedisRepo(s.redisClient)

	var dAWSRepo downloads.AWSRepository
	if s.cfg.S3.Enabled && s.s3Client != nil {
		dAWSRepo = downloadsRepository.NewAwsRepository(s.s3Client, s.preSignClient)
	}

	providers := youtubeUsecase.NewCachedFactory(dataapi.NewClientFactory(s.cfg.YouTube, s.logger), ytCache, s.logger)
	broadcaster := broadcast.NewBroadcaster()

	authUC := authUsecase.NewAuthUseCase(s.cfg, aRepo, s.logger)
	channelsUC := channelsUsecase.NewChannelsUseCase(cRepo, providers, ytCache, box, s.logger)
	downloadsUC := downloadsUsecase.NewAcquisitionUseCase(
		s.cfg, dRepo, dRedisRepo, dAWSRepo,
		engine.NewYtdlpEngine(s.cfg.Downloader, s.logger),
		broadcaster, channelsUC, s.logger,
	)
	monitoringUC := monitoringUsecase.NewMonitoringUseCase(s.cfg, mRepo, channelsUC, downloadsUC, s.logger)
	sched := scheduler.NewScheduler(s.cfg, mRepo, mRedisRepo, cRepo, channelsUC, monitoringUC, s.logger)

	s.scheduler = sched
	s.monitoringUC = monitoringUC
	s.downloadsUC = downloadsUC

	authHandlers := authHttp.NewAuthHandler(s.cfg, authUC, s.logger)
	channelsHandlers := channelsHttp.NewChannelsHandlers(channelsUC, s.logger)
	monitoringHandlers := monitoringHttp.NewMonitoringHandlers(monitoringUC, sched, s.logger)
	downloadsHandlers := downloadsHttp.NewDownloadsHandlers(downloadsUC, broadcaster, s.cfg.Server.AllowOrigins, s.logger)

	mw := middleware.NewMiddlewareManager(authUC, s.cfg, s.cfg.Server.AllowOrigins, s.logger)

	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(mw.RequestLoggerMiddleware)
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     s.cfg.Server.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	e.Use(echoMiddleware.RecoverWithConfig(echoMiddleware.RecoverConfig{
		StackSize:         1 << 10,
		DisablePrintStack: true,
		DisableStackAll:   true,
	}))
	e.Use(echoMiddleware.BodyLimit("2M"))

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	authGroup := v1.Group("/auth")
	channelsGroup := v1.Group("/channels")
	monitoringGroup := v1.Group("/monitoring")
	videosGroup := v1.Group("/videos")

	authHttp.MapAuthRoutes(authGroup, authHandlers, mw)
	channelsHttp.MapChannelsRoutes(channelsGroup, channelsHandlers, mw)
	monitoringHttp.MapMonitoringRoutes(monitoringGroup, monitoringHandlers, mw)
	downloadsHttp.MapDownloadsRoutes(videosGroup, downloadsHandlers, mw)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		accepting, usage := utils.CheckCPUUsage(s.cfg.Worker.MaxCPUUsage)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":         "OK",
			"cpu_usage":      usage,
			"accepting_jobs": accepting,
		})
	})
	return nil
}
