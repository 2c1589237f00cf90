package http

import (
	"net/http"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/monitoring"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/labstack/echo/v4"
)

type monitoringHandlers struct {
	monitoringUC monitoring.UseCase
	scheduler    monitoring.Scheduler
	logger       logger.Logger
}

func NewMonitoringHandlers(monitoringUC monitoring.UseCase, scheduler monitoring.Scheduler, log logger.Logger) monitoring.Handlers {
	return &monitoringHandlers{monitoringUC: monitoringUC, scheduler: scheduler, logger: log}
}

func (h *monitoringHandlers) Create() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.CreateMonitoringInput{}
		if err := utils.ReadRequest(c, input); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		job, err := h.monitoringUC.Create(c.Request().Context(), input)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *monitoringHandlers) List() echo.HandlerFunc {
	return func(c echo.Context) error {
		pq, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		var status *models.MonitoringStatus
		if raw := c.QueryParam("status"); raw != "" {
			st, err := models.ParseMonitoringStatus(raw)
			if err != nil {
				return utils.ErrResponseWithLog(c, h.logger, apperrors.Wrap(apperrors.KindValidation, err.Error(), err))
			}
			status = &st
		}

		list, err := h.monitoringUC.List(c.Request().Context(), status, pq)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *monitoringHandlers) GetByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		monitoringID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		details, err := h.monitoringUC.GetByID(c.Request().Context(), monitoringID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, details)
	}
}

func (h *monitoringHandlers) Update() echo.HandlerFunc {
	return func(c echo.Context) error {
		monitoringID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		input := &models.UpdateMonitoringInput{}
		if err := utils.ReadRequest(c, input); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		job, err := h.monitoringUC.Update(c.Request().Context(), monitoringID, input)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *monitoringHandlers) Delete() echo.HandlerFunc {
	return func(c echo.Context) error {
		monitoringID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		if err := h.monitoringUC.Delete(c.Request().Context(), monitoringID); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, utils.MessageResponse("monitoring %d deleted", monitoringID))
	}
}

func (h *monitoringHandlers) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		monitoringID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		videos, err := h.monitoringUC.ListVideos(c.Request().Context(), monitoringID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, videos)
	}
}

// Start returns as soon as the run is registered; processing continues in the background.
func (h *monitoringHandlers) Start() echo.HandlerFunc {
	return func(c echo.Context) error {
		monitoringID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		if err := h.monitoringUC.Start(c.Request().Context(), monitoringID); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, utils.MessageResponse("monitoring %d started", monitoringID))
	}
}

func (h *monitoringHandlers) Stop() echo.HandlerFunc {
	return func(c echo.Context) error {
		monitoringID, err := utils.GetInt64Param(c, "id")
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		if err := h.monitoringUC.Stop(c.Request().Context(), monitoringID); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, utils.MessageResponse("monitoring %d stopped", monitoringID))
	}
}

func (h *monitoringHandlers) Sweep() echo.HandlerFunc {
	return func(c echo.Context) error {
		report, err := h.scheduler.Sweep(c.Request().Context())
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, report)
	}
}
