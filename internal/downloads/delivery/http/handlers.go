package http

import (
	"net/http"

	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/downloads/broadcast"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type downloadsHandlers struct {
	downloadsUC downloads.UseCase
	broadcaster *broadcast.Broadcaster
	upgrader    websocket.Upgrader
	logger      logger.Logger
}

func NewDownloadsHandlers(downloadsUC downloads.UseCase, broadcaster *broadcast.Broadcaster, allowOrigins []string, log logger.Logger) downloads.Handlers {
	return &downloadsHandlers{
		downloadsUC: downloadsUC,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowOrigins),
		},
		logger: log,
	}
}

func (h *downloadsHandlers) Download() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.DownloadRequest{}
		if err := utils.ReadRequest(c, input); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		ctx := c.Request().Context()
		if err := h.downloadsUC.Authorize(ctx, input.VideoID, models.PermissionEdit); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		desc, err := h.downloadsUC.Download(ctx, input)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, desc)
	}
}

func (h *downloadsHandlers) GetProgress() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := h.authorizedVideo(c)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		snapshot, err := h.downloadsUC.GetProgress(c.Request().Context(), videoID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, snapshot)
	}
}

func (h *downloadsHandlers) ArchiveURL() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := h.authorizedVideo(c)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		url, err := h.downloadsUC.ArchiveURL(c.Request().Context(), videoID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"url": url})
	}
}

func (h *downloadsHandlers) authorizedVideo(c echo.Context) (int64, error) {
	videoID, err := utils.GetInt64Param(c, "id")
	if err != nil {
		return 0, err
	}
	if err := h.downloadsUC.Authorize(c.Request().Context(), videoID, models.PermissionView); err != nil {
		return 0, err
	}
	return videoID, nil
}
