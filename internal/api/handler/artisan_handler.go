package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/9rib/marketplace-api/internal/core/ports"
)

// viewerHeader lets anonymous clients keep a stable viewer identity.
const viewerHeader = "X-Viewer-Id"

// ArtisanHandler exposes the public artisan directory.
type ArtisanHandler struct {
	service ports.ArtisanService
}

func NewArtisanHandler(service ports.ArtisanService) *ArtisanHandler {
	return &ArtisanHandler{service: service}
}

// List handles GET /v1/artisans.
//
// @Summary      Search the artisan directory
// @Tags         artisans
// @Produce      json
// @Param        search       query     string   false  "Substring over name, description, address and owner"
// @Param        category_id  query     string   false  "Category filter"
// @Param        city_id      query     string   false  "City filter"
// @Param        min_rating   query     number   false  "Minimum rating (0-5)"
// @Param        verified     query     boolean  false  "Verified only"
// @Param        page         query     int      false  "Page (1-based)"
// @Param        limit        query     int      false  "Page size (max 100)"
// @Success      200          {object}  listArtisansResponse
// @Failure      400          {object}  errorResponse
// @Router       /v1/artisans [get]
func (h *ArtisanHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	minRating, err := queryFloat(c, "min_rating")
	if err != nil {
		return err
	}
	verified, err := queryBool(c, "verified")
	if err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), ports.ListArtisansInput{
		Search:     c.QueryParam("search"),
		CategoryID: c.QueryParam("category_id"),
		CityID:     c.QueryParam("city_id"),
		MinRating:  minRating,
		Verified:   verified,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListArtisansResponse(res))
}

// Top handles GET /v1/artisans/top.
//
// @Summary      Top rated artisans
// @Tags         artisans
// @Produce      json
// @Param        limit  query     int  false  "Number of artisans (default 6, max 24)"
// @Success      200    {array}   domain.ArtisanListing
// @Router       /v1/artisans/top [get]
func (h *ArtisanHandler) Top(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	items, err := h.service.Top(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/artisans/:id.
//
// @Summary      Get an artisan listing
// @Tags         artisans
// @Produce      json
// @Param        id   path      string  true  "Artisan profile ID"
// @Success      200  {object}  domain.ArtisanListing
// @Failure      404  {object}  errorResponse
// @Router       /v1/artisans/{id} [get]
func (h *ArtisanHandler) Get(c echo.Context) error {
	listing, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// UpdateOwn handles PATCH /v1/artisans/me.
//
// @Summary      Update the caller's artisan listing
// @Tags         artisans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateArtisanRequest  true  "Fields to change"
// @Success      200   {object}  domain.ArtisanProfile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/artisans/me [patch]
func (h *ArtisanHandler) UpdateOwn(c echo.Context) error {
	var req updateArtisanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.UpdateOwn(c.Request().Context(), actorFrom(c), toUpdateArtisanInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// SetStatus handles PATCH /v1/admin/artisans/:id/status.
//
// @Summary      Toggle an artisan's active and featured flags
// @Tags         artisans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Artisan profile ID"
// @Param        body  body      setArtisanStatusRequest  true  "Flags to change"
// @Success      200   {object}  domain.ArtisanListing
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/artisans/{id}/status [patch]
func (h *ArtisanHandler) SetStatus(c echo.Context) error {
	var req setArtisanStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	listing, err := h.service.SetStatus(c.Request().Context(), actorFrom(c), c.Param("id"), ports.SetArtisanStatusInput{
		IsActive:   req.IsActive,
		IsFeatured: req.IsFeatured,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// TrackView handles POST /v1/functions/track-view.
//
// @Summary      Count a profile view
// @Tags         functions
// @Accept       json
// @Produce      json
// @Param        body  body      trackViewRequest  true  "artisanId"
// @Success      200   {object}  trackViewResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/functions/track-view [post]
func (h *ArtisanHandler) TrackView(c echo.Context) error {
	var req trackViewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.RecordView(c.Request().Context(), req.ArtisanID, viewerKey(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackViewResponse{Success: true, Counted: res.Counted})
}

// viewerKey identifies the viewer: the user id when signed in, then the
// client-provided viewer header, then the remote address.
func viewerKey(c echo.Context) string {
	if actor := actorFrom(c); actor.Authenticated() {
		return "user:" + actor.UserID
	}
	if v := c.Request().Header.Get(viewerHeader); v != "" {
		return "anon:" + v
	}
	return "ip:" + c.RealIP()
}
