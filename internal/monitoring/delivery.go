package monitoring

import "github.com/labstack/echo/v4"

type Handlers interface {
	Create() echo.HandlerFunc
	List() echo.HandlerFunc
	GetByID() echo.HandlerFunc
	Update() echo.HandlerFunc
	Delete() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	Start() echo.HandlerFunc
	Stop() echo.HandlerFunc
	Sweep() echo.HandlerFunc
}
