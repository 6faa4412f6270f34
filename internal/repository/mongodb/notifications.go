package mongodb

import (
	"context"

	"cookhub/internal/models"
	"cookhub/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo struct {
	col *mongo.Collection
}

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{col: db.collection("notifications")}
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *NotificationRepo) LatestForUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user": userID},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	notifications := []models.Notification{}
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
