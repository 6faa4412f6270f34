package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cookhub/internal/models"
	"cookhub/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type notificationEnv struct {
	users         *fakeUsers
	notifications *fakeNotifications
	pub           *fakePublisher
	handler       *NotificationHandler
}

func newNotificationEnv() *notificationEnv {
	gin.SetMode(gin.TestMode)
	env := &notificationEnv{
		users:         newFakeUsers(),
		notifications: newFakeNotifications(),
		pub:           &fakePublisher{},
	}
	env.handler = NewNotificationHandler(env.notifications, env.users, env.pub, zap.NewNop())
	return env
}

func (e *notificationEnv) router(caller primitive.ObjectID) *gin.Engine {
	r := gin.New()
	auth := identityAs(caller)
	r.GET("/api/notifications", auth, e.handler.List)
	r.POST("/api/notifications", auth, e.handler.Create)
	return r
}

func TestCreateNotificationExplicitMessage(t *testing.T) {
	env := newNotificationEnv()
	recipient := env.users.seed(modelUser("Alice", "alice@example.com"))
	sender := env.users.seed(modelUser("Bob", "bob@example.com"))

	w := postJSON(t, env.router(sender.ID), http.MethodPost, "/api/notifications", gin.H{
		"userId": recipient.ID.Hex(), "message": "your dish won the weekly pick",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	stored := env.notifications.forUser(recipient.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, "your dish won the weekly pick", stored[0].Message)

	scoped := env.pub.byEvent(realtime.EventNewNotification)
	require.Len(t, scoped, 1)
	assert.Equal(t, recipient.ID.Hex(), scoped[0].userID)
}

func TestCreateNotificationDefaultMessage(t *testing.T) {
	env := newNotificationEnv()
	recipient := env.users.seed(modelUser("Alice", "alice@example.com"))
	commenter := env.users.seed(modelUser("Bob", "bob@example.com"))

	w := postJSON(t, env.router(commenter.ID), http.MethodPost, "/api/notifications", gin.H{
		"userId": recipient.ID.Hex(), "commenterId": commenter.ID.Hex(),
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	stored := env.notifications.forUser(recipient.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, "Bob commented on your post", stored[0].Message)
}

func TestCreateNotificationMissingRecipient(t *testing.T) {
	env := newNotificationEnv()
	sender := env.users.seed(modelUser("Bob", "bob@example.com"))

	w := postJSON(t, env.router(sender.ID), http.MethodPost, "/api/notifications", gin.H{
		"message": "hello",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Recipient user ID is required")
}

func TestCreateNotificationUnknownCommenter(t *testing.T) {
	env := newNotificationEnv()
	recipient := env.users.seed(modelUser("Alice", "alice@example.com"))
	sender := env.users.seed(modelUser("Bob", "bob@example.com"))

	w := postJSON(t, env.router(sender.ID), http.MethodPost, "/api/notifications", gin.H{
		"userId": recipient.ID.Hex(), "commenterId": primitive.NewObjectID().Hex(),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Commenter not found")
	assert.Empty(t, env.notifications.forUser(recipient.ID))
}

func TestListReturnsLatestFiveNewestFirst(t *testing.T) {
	env := newNotificationEnv()
	me := env.users.seed(modelUser("Alice", "alice@example.com"))
	other := env.users.seed(modelUser("Bob", "bob@example.com"))

	for i := 0; i < 7; i++ {
		env.notifications.Create(context.Background(), &models.Notification{
			UserID:    me.ID,
			Message:   string(rune('a' + i)),
			CreatedAt: at(time.Duration(i) * time.Minute),
		})
	}
	env.notifications.Create(context.Background(), &models.Notification{
		UserID: other.ID, Message: "not yours", CreatedAt: at(time.Hour),
	})

	w := do(env.router(me.ID), httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, "g", got[0].Message)
	assert.Equal(t, "c", got[4].Message)
	for _, n := range got {
		assert.Equal(t, me.ID, n.UserID)
	}
}
