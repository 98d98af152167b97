package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/9rib/marketplace-api/internal/api/metrics"
	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ApplicationHandler exposes the artisan application workflow.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// ProcessFunction handles POST /v1/functions/process-application.
//
// @Summary      Apply an admin decision to an artisan application
// @Tags         functions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      processApplicationRequest  true  "applicationId, action and optional adminNotes"
// @Success      200   {object}  processApplicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/functions/process-application [post]
func (h *ApplicationHandler) ProcessFunction(c echo.Context) error {
	var req processApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.process(c, ports.ProcessApplicationInput{
		ApplicationID: req.ApplicationID,
		Action:        req.Action,
		AdminNotes:    req.AdminNotes,
	})
}

// Process handles POST /v1/admin/applications/:id/process.
//
// @Summary      Apply an admin decision to an artisan application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Application ID"
// @Param        body  body      processDecisionRequest  true  "action and optional admin_notes"
// @Success      200   {object}  processApplicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/applications/{id}/process [post]
func (h *ApplicationHandler) Process(c echo.Context) error {
	var req processDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.process(c, ports.ProcessApplicationInput{
		ApplicationID: c.Param("id"),
		Action:        req.Action,
		AdminNotes:    req.AdminNotes,
	})
}

func (h *ApplicationHandler) process(c echo.Context, in ports.ProcessApplicationInput) error {
	label := actionLabel(in.Action)
	start := time.Now()
	res, err := h.service.Process(c.Request().Context(), actorFrom(c), in)
	metrics.ApplicationProcessingDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ApplicationsErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		return err
	}

	metrics.ApplicationsProcessedTotal.WithLabelValues(label).Inc()
	return c.JSON(http.StatusOK, processApplicationResponse{Success: res.Success, Message: res.Message})
}

// Submit handles POST /v1/applications.
//
// @Summary      Submit an artisan application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      submitApplicationRequest  true  "Application details"
// @Success      201   {object}  submitApplicationResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor := actorFrom(c)
	res, err := h.service.Submit(c.Request().Context(), actor, toSubmitInput(req))
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.WithLabelValues(strconv.FormatBool(!actor.Authenticated())).Inc()
	return c.JSON(http.StatusCreated, submitApplicationResponse{
		ID:        res.ID,
		Status:    res.Status,
		CreatedAt: res.CreatedAt.UTC(),
	})
}

// List handles GET /v1/admin/applications.
//
// @Summary      List artisan applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "not_read, in_progress, validated or rejected"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listApplicationsResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/admin/applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), actorFrom(c), ports.ListApplicationsInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListApplicationsResponse(res))
}

// Get handles GET /v1/admin/applications/:id.
//
// @Summary      Get an artisan application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.Application
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	app, err := h.service.Get(c.Request().Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// History handles GET /v1/admin/applications/:id/history.
//
// @Summary      Decision history of an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {array}   applicationEventResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/applications/{id}/history [get]
func (h *ApplicationHandler) History(c echo.Context) error {
	events, err := h.service.History(c.Request().Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// actionLabel bounds the metric label set to the known actions.
func actionLabel(raw string) string {
	action, err := domain.ParseAction(raw)
	if err != nil {
		return "unknown"
	}
	return string(action)
}

// errorReason labels a processing failure for the errors counter.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrApplicationNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrApplicationWithoutUser):
		return "no_user"
	default:
		return "internal"
	}
}
