package http

import (
	"net/http"

	"github.com/amankumarsingh77/channel-monitor/internal/auth"
	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type authHandler struct {
	cfg    *config.Config
	authUc auth.UseCase
	logger logger.Logger
}

func NewAuthHandler(cfg *config.Config, authUc auth.UseCase, logger logger.Logger) auth.Handler {
	return &authHandler{
		cfg:    cfg,
		authUc: authUc,
		logger: logger,
	}
}

func (h *authHandler) Register() echo.HandlerFunc {
	return func(c echo.Context) error {
		user := &models.User{}
		if err := utils.ReadRequest(c, user); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		createdUser, err := h.authUc.Register(c.Request().Context(), user)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusCreated, createdUser)
	}
}

func (h *authHandler) Login() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.LoginInput{}
		if err := utils.ReadRequest(c, input); err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}

		loginUser, err := h.authUc.Login(c.Request().Context(), input)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, loginUser)
	}
}

func (h *authHandler) GetMe() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := utils.GetUserFromCtx(c.Request().Context())
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

func (h *authHandler) GetUserByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		uID, err := uuid.Parse(c.Param("user_id"))
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, apperrors.Validation("invalid user id"))
		}

		user, err := h.authUc.GetByID(c.Request().Context(), uID)
		if err != nil {
			return utils.ErrResponseWithLog(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}
