// Package handlers contains the REST handlers. Every handler follows the
// same pipeline: auth guard, input validation, store mutation, re-read with
// references resolved, best-effort fan-out, JSON response.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Publisher is the fan-out surface the handlers publish through. It is
// injected at construction; emission never fails a request.
type Publisher interface {
	Broadcast(event string, data any)
	EmitTo(userID primitive.ObjectID, event string, data any)
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

func serverError(c *gin.Context, log *zap.Logger, action string, err error) {
	log.Error(action, zap.Error(err))
	fail(c, http.StatusInternalServerError, "Server error")
}
