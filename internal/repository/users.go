// Package repository defines the store interfaces the handlers depend on.
// Driver-specific implementations live in subpackages.
package repository

import (
	"context"

	"cookhub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Create inserts a new user; returns errs.ErrEmailTaken when the email
	// already has an account.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfile changes name, email and avatar and returns the updated
	// user.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email, avatar string) (*models.User, error)
	// IncPostedRecipes atomically adjusts the posted-recipe counter and
	// returns the new count.
	IncPostedRecipes(ctx context.Context, id primitive.ObjectID, delta int) (int, error)
	SetRank(ctx context.Context, id primitive.ObjectID, rank string) error
	// NamesByID resolves display names for a set of user ids.
	NamesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}
