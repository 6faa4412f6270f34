package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives embedded in its parent post; it has no independent
// lifecycle. The ID only exists so a comment can be deleted.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	UserID primitive.ObjectID `bson:"user" json:"-"`
	// Author is populated in responses only.
	Author    *UserRef  `bson:"-" json:"user,omitempty"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Post struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"user" json:"-"`
	// Author is populated in responses only.
	Author    *UserRef  `bson:"-" json:"user,omitempty"`
	Content   string    `bson:"content" json:"content"`
	Image     string    `bson:"image" json:"image"`
	Video     string    `bson:"video" json:"video"`
	Upvotes   int       `bson:"upvotes" json:"upvotes"`
	Downvotes int       `bson:"downvotes" json:"downvotes"`
	Comments  []Comment `bson:"comments" json:"comments"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// FindComment returns the embedded comment with the given id, or nil.
func (p *Post) FindComment(id primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}
