package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash
	Avatar        string             `bson:"avatar" json:"avatar"`
	PostedRecipes int                `bson:"postedRecipes" json:"postedRecipes"`
	LikedRecipes  int                `bson:"likedRecipes" json:"likedRecipes"`
	Rank          string             `bson:"rank" json:"rank"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserRef is the resolved owner/author shape embedded in responses.
type UserRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}
