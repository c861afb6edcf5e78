package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the context key the Auth middleware stores the caller under.
const UserIDKey = "user_id"

// ctxUserID returns the authenticated caller. An empty id means the route was
// mounted without the Auth middleware.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(UserIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}
