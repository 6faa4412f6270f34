package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe holds like/reshare membership as ID sets, one entry per user
// (toggle semantics).
type Recipe struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title     string               `bson:"title" json:"title"`
	Image     string               `bson:"image" json:"image"`
	PrepTime  string               `bson:"prepTime" json:"prepTime"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Reshares  []primitive.ObjectID `bson:"reshares" json:"reshares"`
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"-"`
	// Creator is populated in responses only.
	Creator   *UserRef  `bson:"-" json:"createdBy,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Liked reports whether userID is in the like set.
func (r *Recipe) Liked(userID primitive.ObjectID) bool {
	for _, id := range r.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Reshared reports whether userID is in the reshare set.
func (r *Recipe) Reshared(userID primitive.ObjectID) bool {
	for _, id := range r.Reshares {
		if id == userID {
			return true
		}
	}
	return false
}
