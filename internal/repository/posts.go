package repository

import (
	"context"

	"cookhub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// All returns every post, newest first.
	All(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncVotes atomically bumps the up- or downvote counter.
	IncVotes(ctx context.Context, id primitive.ObjectID, up bool) error
	AddComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) error
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error
}
