package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/9rib/marketplace-api/internal/core/ports"
)

// NotificationHandler exposes in-app notifications and the contact form.
type NotificationHandler struct {
	notifications ports.NotificationService
	contact       ports.ContactService
}

func NewNotificationHandler(notifications ports.NotificationService, contact ports.ContactService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, contact: contact}
}

// Create handles POST /v1/functions/create-notification.
//
// @Summary      Send an in-app notification to a user
// @Tags         functions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNotificationRequest  true  "Notification"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/functions/create-notification [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	var req createNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	n, err := h.notifications.Create(c.Request().Context(), actorFrom(c), toNotificationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Success: true, ID: n.ID})
}

// List handles GET /v1/notifications.
//
// @Summary      Caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread  query     boolean  false  "Unread only"
// @Success      200     {array}   domain.Notification
// @Failure      401     {object}  errorResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	unread, err := queryBool(c, "unread")
	if err != nil {
		return err
	}
	items, err := h.notifications.ListForUser(c.Request().Context(), actorFrom(c), unread != nil && *unread)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// MarkRead handles POST /v1/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notifications.MarkRead(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification marked as read"})
}

// Contact handles POST /v1/functions/contact-message.
//
// @Summary      Leave a contact message
// @Tags         functions
// @Accept       json
// @Produce      json
// @Param        body  body      contactMessageRequest  true  "Message"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/functions/contact-message [post]
func (h *NotificationHandler) Contact(c echo.Context) error {
	var req contactMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := h.contact.Submit(c.Request().Context(), toContactInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Success: true, ID: m.ID})
}
