package http

import (
	"net/http"

	"github.com/amankumarsingh77/channel-monitor/internal/channels"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/labstack/echo/v4"
)

type channelsHandlers struct {
	channelsUC channels.UseCase
	logger     logger.Logger
}

func NewChannelsHandlers(channelsUC channels.UseCase, log logger.Logger) channels.Handlers {
	return &channelsHandlers{channelsUC: channelsUC, logger: log}
}

func (h *channelsHandlers) Create() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.CreateChannelInput{}
		if err := utils.ReadRequest(c, input); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		channel, err := h.channelsUC.Create(c.Request().Context(), input)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusCreated, channel)
	}
}

func (h *channelsHandlers) List() echo.HandlerFunc {
	return func(c echo.Context) error {
		pq, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		list, err := h.channelsUC.List(c.Request().Context(), pq)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *channelsHandlers) GetByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		channelID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		channel, err := h.channelsUC.GetByID(c.Request().Context(), channelID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, channel)
	}
}

func (h *channelsHandlers) Update() echo.HandlerFunc {
	return func(c echo.Context) error {
		channelID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		input := &models.UpdateChannelInput{}
		if err := utils.ReadRequest(c, input); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		channel, err := h.channelsUC.Update(c.Request().Context(), channelID, input)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, channel)
	}
}

func (h *channelsHandlers) Delete() echo.HandlerFunc {
	return func(c echo.Context) error {
		channelID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		if err := h.channelsUC.Delete(c.Request().Context(), channelID); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, utils.MessageResponse("channel %d deleted", channelID))
	}
}

func (h *channelsHandlers) Sync() echo.HandlerFunc {
	return func(c echo.Context) error {
		channelID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		channel, err := h.channelsUC.Sync(c.Request().Context(), channelID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, channel)
	}
}

func (h *channelsHandlers) GrantAccess() echo.HandlerFunc {
	return func(c echo.Context) error {
		channelID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		input := &models.GrantAccessInput{}
		if err := utils.ReadRequest(c, input); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		access, err := h.channelsUC.GrantAccess(c.Request().Context(), channelID, input)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, access)
	}
}

func (h *channelsHandlers) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		channelID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		pq, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		list, err := h.channelsUC.ListVideos(c.Request().Context(), channelID, pq)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *channelsHandlers) ListPlaylists() echo.HandlerFunc {
	return func(c echo.Context) error {
		channelID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		playlists, err := h.channelsUC.ListPlaylists(c.Request().Context(), channelID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, playlists)
	}
}
