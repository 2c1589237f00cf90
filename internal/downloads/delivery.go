package downloads

import "github.com/labstack/echo/v4"

type Handlers interface {
	Download() echo.HandlerFunc
	GetProgress() echo.HandlerFunc
	ArchiveURL() echo.HandlerFunc
	ProgressStream() echo.HandlerFunc
}
