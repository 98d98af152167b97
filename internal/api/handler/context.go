package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/9rib/marketplace-api/internal/api/middleware"
	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// actorFrom builds the caller identity from the claims injected by the Auth
// middleware. Requests that passed OptionalAuth anonymously yield the zero Actor.
func actorFrom(c echo.Context) ports.Actor {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	email, _ := c.Get(middleware.ContextEmail).(string)
	return ports.Actor{
		UserID: userID,
		Role:   domain.Role(role),
		Email:  email,
	}
}

// bindAndValidate decodes the request body into req and runs the struct
// validator. Both failures render as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

// queryBool parses an optional boolean query parameter; absent means nil.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a boolean")
	}
	return &v, nil
}

func queryFloat(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return v, nil
}
