package repository

import (
	"context"

	"cookhub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// LatestForUser returns the recipient's newest notifications,
	// newest first.
	LatestForUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error)
}
