package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ReferenceHandler serves the category and city lookup tables.
type ReferenceHandler struct {
	service ports.ReferenceService
}

func NewReferenceHandler(service ports.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// Categories handles GET /v1/categories.
//
// @Summary      Active categories
// @Tags         reference
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *ReferenceHandler) Categories(c echo.Context) error {
	items, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Cities handles GET /v1/cities.
//
// @Summary      Active cities
// @Tags         reference
// @Produce      json
// @Success      200  {array}  domain.City
// @Router       /v1/cities [get]
func (h *ReferenceHandler) Cities(c echo.Context) error {
	items, err := h.service.Cities(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
