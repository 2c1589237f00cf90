package channels

import "github.com/labstack/echo/v4"

type Handlers interface {
	Create() echo.HandlerFunc
	List() echo.HandlerFunc
	GetByID() echo.HandlerFunc
	Update() echo.HandlerFunc
	Delete() echo.HandlerFunc
	Sync() echo.HandlerFunc
	GrantAccess() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	ListPlaylists() echo.HandlerFunc
}
