package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Identity headers are set by the authenticating gateway in front of the service.
const (
	HeaderEmployeeID   = "X-Employee-ID"
	HeaderEmployeeRole = "X-Employee-Role"
)

type requester struct {
	ID   int64
	Role string
}

func requesterFrom(c echo.Context) (requester, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Request().Header.Get(HeaderEmployeeID)), 10, 64)
	if err != nil || id <= 0 {
		return requester{}, false
	}
	return requester{ID: id, Role: c.Request().Header.Get(HeaderEmployeeRole)}, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Message: "missing or invalid " + HeaderEmployeeID + " header",
	})
}
