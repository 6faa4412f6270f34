package repository

import (
	"context"

	"cookhub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeSet selects which membership set a toggle operates on.
type RecipeSet string

const (
	SetLikes    RecipeSet = "likes"
	SetReshares RecipeSet = "reshares"
)

type RecipeRepository interface {
	Create(ctx context.Context, r *models.Recipe) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	All(ctx context.Context) ([]models.Recipe, error)
	ByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Recipe, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddToSet / RemoveFromSet adjust like/reshare membership atomically;
	// AddToSet is a no-op when the user is already present.
	AddToSet(ctx context.Context, id primitive.ObjectID, set RecipeSet, userID primitive.ObjectID) error
	RemoveFromSet(ctx context.Context, id primitive.ObjectID, set RecipeSet, userID primitive.ObjectID) error
}
