package handlers

import (
	"errors"
	"net/http"
	"time"

	"cookhub/internal/errs"
	"cookhub/internal/middleware"
	"cookhub/internal/models"
	"cookhub/internal/realtime"
	"cookhub/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// latestNotifications caps the recipient-scoped listing.
const latestNotifications = 5

type NotificationHandler struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	pub           Publisher
	log           *zap.Logger
}

func NewNotificationHandler(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	pub Publisher,
	log *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, users: users, pub: pub, log: log}
}

// List returns the caller's latest notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifications.LatestForUser(c.Request.Context(), middleware.Identity(c), latestNotifications)
	if err != nil {
		serverError(c, h.log, "list notifications", err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// Create records a notification for a recipient and emits it to them. When
// no message is given it defaults to the commented-on-your-post text.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req struct {
		Message     string `json:"message"`
		UserID      string `json:"userId"`
		CommenterID string `json:"commenterId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		fail(c, http.StatusBadRequest, "Recipient user ID is required")
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Recipient user ID is required")
		return
	}

	message := req.Message
	if message == "" {
		commenterID, err := primitive.ObjectIDFromHex(req.CommenterID)
		if err != nil {
			fail(c, http.StatusBadRequest, "Commenter not found")
			return
		}
		commenter, err := h.users.GetByID(c.Request.Context(), commenterID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				fail(c, http.StatusBadRequest, "Commenter not found")
				return
			}
			serverError(c, h.log, "load commenter", err)
			return
		}
		message = commenter.Name + " commented on your post"
	}

	n := &models.Notification{
		UserID:    recipientID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := h.notifications.Create(c.Request.Context(), n); err != nil {
		serverError(c, h.log, "create notification", err)
		return
	}

	h.pub.EmitTo(recipientID, realtime.EventNewNotification, n)
	c.JSON(http.StatusCreated, n)
}
