package mongodb

import (
	"context"
	"errors"

	"cookhub/internal/errs"
	"cookhub/internal/models"
	"cookhub/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo struct {
	col *mongo.Collection
}

var _ repository.PostRepository = (*PostRepo)(nil)

func NewPostRepo(db *DB) *PostRepo {
	return &PostRepo{col: db.collection("posts")}
}

func (r *PostRepo) Create(ctx context.Context, p *models.Post) error {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) All(ctx context.Context) ([]models.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *PostRepo) IncVotes(ctx context.Context, id primitive.ObjectID, up bool) error {
	field := "downvotes"
	if up {
		field = "upvotes"
	}
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *PostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) error {
	res, err := r.col.UpdateByID(ctx, postID, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *PostRepo) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, postID,
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
