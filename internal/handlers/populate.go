package handlers

import (
	"context"

	"cookhub/internal/models"
	"cookhub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The store keeps raw references between documents; responses carry the
// owner and author names resolved. These helpers do the resolution in one
// lookup per request.

func resolveRecipes(ctx context.Context, users repository.UserRepository, recipes []models.Recipe) error {
	ids := make([]primitive.ObjectID, 0, len(recipes))
	for i := range recipes {
		ids = append(ids, recipes[i].CreatedBy)
	}

	names, err := users.NamesByID(ctx, dedupe(ids))
	if err != nil {
		return err
	}

	for i := range recipes {
		r := &recipes[i]
		r.Creator = &models.UserRef{ID: r.CreatedBy, Name: names[r.CreatedBy]}
	}
	return nil
}

func resolveRecipe(ctx context.Context, users repository.UserRepository, r *models.Recipe) error {
	one := []models.Recipe{*r}
	if err := resolveRecipes(ctx, users, one); err != nil {
		return err
	}
	*r = one[0]
	return nil
}

func resolvePosts(ctx context.Context, users repository.UserRepository, posts []models.Post) error {
	var ids []primitive.ObjectID
	for i := range posts {
		ids = append(ids, posts[i].UserID)
		for j := range posts[i].Comments {
			ids = append(ids, posts[i].Comments[j].UserID)
		}
	}

	names, err := users.NamesByID(ctx, dedupe(ids))
	if err != nil {
		return err
	}

	for i := range posts {
		p := &posts[i]
		p.Author = &models.UserRef{ID: p.UserID, Name: names[p.UserID]}
		for j := range p.Comments {
			cm := &p.Comments[j]
			cm.Author = &models.UserRef{ID: cm.UserID, Name: names[cm.UserID]}
		}
	}
	return nil
}

func resolvePost(ctx context.Context, users repository.UserRepository, p *models.Post) error {
	one := []models.Post{*p}
	if err := resolvePosts(ctx, users, one); err != nil {
		return err
	}
	*p = one[0]
	return nil
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
