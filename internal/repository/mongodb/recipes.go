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
)

type RecipeRepo struct {
	col *mongo.Collection
}

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

func NewRecipeRepo(db *DB) *RecipeRepo {
	return &RecipeRepo{col: db.collection("recipes")}
}

func (r *RecipeRepo) Create(ctx context.Context, rec *models.Recipe) error {
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	rec.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *RecipeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var rec models.Recipe
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepo) All(ctx context.Context) ([]models.Recipe, error) {
	return r.find(ctx, bson.M{})
}

func (r *RecipeRepo) ByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Recipe, error) {
	return r.find(ctx, bson.M{"createdBy": userID})
}

func (r *RecipeRepo) find(ctx context.Context, filter bson.M) ([]models.Recipe, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recipes := []models.Recipe{}
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *RecipeRepo) AddToSet(ctx context.Context, id primitive.ObjectID, set repository.RecipeSet, userID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{string(set): userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *RecipeRepo) RemoveFromSet(ctx context.Context, id primitive.ObjectID, set repository.RecipeSet, userID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$pull": bson.M{string(set): userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
