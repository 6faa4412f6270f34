package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cookhub/internal/errs"
	"cookhub/internal/middleware"
	"cookhub/internal/models"
	"cookhub/internal/realtime"
	"cookhub/internal/repository"
	"cookhub/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type RecipeHandler struct {
	recipes       repository.RecipeRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	pub           Publisher
	media         *services.MediaStore
	log           *zap.Logger
}

func NewRecipeHandler(
	recipes repository.RecipeRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	pub Publisher,
	media *services.MediaStore,
	log *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:       recipes,
		users:         users,
		notifications: notifications,
		pub:           pub,
		media:         media,
		log:           log,
	}
}

// List returns every recipe with the owner name resolved.
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.recipes.All(c.Request.Context())
	if err != nil {
		serverError(c, h.log, "list recipes", err)
		return
	}
	if err := resolveRecipes(c.Request.Context(), h.users, recipes); err != nil {
		serverError(c, h.log, "resolve recipe owners", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Mine returns the caller's recipes.
func (h *RecipeHandler) Mine(c *gin.Context) {
	userID := middleware.Identity(c)
	recipes, err := h.recipes.ByCreator(c.Request.Context(), userID)
	if err != nil {
		serverError(c, h.log, "list user recipes", err)
		return
	}
	if err := resolveRecipes(c.Request.Context(), h.users, recipes); err != nil {
		serverError(c, h.log, "resolve recipe owners", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Create stores a recipe from a multipart form (title, prepTime, optional
// image file), bumps the owner's posted-recipe count and recomputes their
// rank.
func (h *RecipeHandler) Create(c *gin.Context) {
	userID := middleware.Identity(c)

	title := c.PostForm("title")
	prepTime := c.PostForm("prepTime")
	if title == "" || prepTime == "" {
		fail(c, http.StatusBadRequest, "Title and prepTime are required")
		return
	}

	image := ""
	if fh, err := c.FormFile("image"); err == nil {
		path, kind, err := h.media.SaveUpload(fh, "recipe")
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		if kind != services.MediaImage {
			fail(c, http.StatusBadRequest, "Recipe media must be an image")
			return
		}
		image = path
	}

	recipe := &models.Recipe{
		Title:     title,
		Image:     image,
		PrepTime:  prepTime,
		Likes:     []primitive.ObjectID{},
		Reshares:  []primitive.ObjectID{},
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	if err := h.recipes.Create(c.Request.Context(), recipe); err != nil {
		serverError(c, h.log, "create recipe", err)
		return
	}

	h.recomputeRank(c, userID, 1)

	if err := resolveRecipe(c.Request.Context(), h.users, recipe); err != nil {
		serverError(c, h.log, "resolve recipe owner", err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// Delete removes an owned recipe and recomputes the owner's rank.
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID := middleware.Identity(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Recipe not found")
		return
	}

	recipe, err := h.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "Recipe not found")
			return
		}
		serverError(c, h.log, "load recipe", err)
		return
	}

	if recipe.CreatedBy != userID {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		serverError(c, h.log, "delete recipe", err)
		return
	}

	h.recomputeRank(c, userID, -1)

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// Like toggles the caller's membership in the like set.
func (h *RecipeHandler) Like(c *gin.Context) {
	h.toggle(c, repository.SetLikes, "liked")
}

// Reshare toggles the caller's membership in the reshare set.
func (h *RecipeHandler) Reshare(c *gin.Context) {
	h.toggle(c, repository.SetReshares, "reshared")
}

// toggle adds the caller to the set if absent, removes them if present.
// Only the add branch notifies the owner, and only for someone else's
// recipe. The updated recipe is always broadcast and returned.
func (h *RecipeHandler) toggle(c *gin.Context, set repository.RecipeSet, verb string) {
	userID := middleware.Identity(c)
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Recipe not found")
		return
	}

	recipe, err := h.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "Recipe not found")
			return
		}
		serverError(c, h.log, "load recipe", err)
		return
	}

	member := recipe.Liked(userID)
	if set == repository.SetReshares {
		member = recipe.Reshared(userID)
	}

	if member {
		err = h.recipes.RemoveFromSet(ctx, id, set, userID)
	} else {
		err = h.recipes.AddToSet(ctx, id, set, userID)
	}
	if err != nil {
		serverError(c, h.log, "toggle recipe set", err)
		return
	}

	if !member && recipe.CreatedBy != userID {
		h.notifyOwner(c, recipe, userID, verb)
	}

	updated, err := h.recipes.GetByID(ctx, id)
	if err != nil {
		serverError(c, h.log, "reload recipe", err)
		return
	}
	if err := resolveRecipe(ctx, h.users, updated); err != nil {
		serverError(c, h.log, "resolve recipe owner", err)
		return
	}

	h.pub.Broadcast(realtime.EventRecipeUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

// notifyOwner records and emits the like/reshare notification. The toggle
// has already been persisted, so failures here are logged, not surfaced.
func (h *RecipeHandler) notifyOwner(c *gin.Context, recipe *models.Recipe, actorID primitive.ObjectID, verb string) {
	actor, err := h.users.GetByID(c.Request.Context(), actorID)
	if err != nil {
		h.log.Warn("load actor for notification", zap.Error(err))
		return
	}

	n := &models.Notification{
		UserID:    recipe.CreatedBy,
		Message:   fmt.Sprintf("%s %s your recipe: \"%s\"", actor.Name, verb, recipe.Title),
		CreatedAt: time.Now(),
	}
	if err := h.notifications.Create(c.Request.Context(), n); err != nil {
		h.log.Warn("create notification", zap.Error(err))
		return
	}

	h.pub.EmitTo(recipe.CreatedBy, realtime.EventNewNotification, n)
}

func (h *RecipeHandler) recomputeRank(c *gin.Context, userID primitive.ObjectID, delta int) {
	count, err := h.users.IncPostedRecipes(c.Request.Context(), userID, delta)
	if err != nil {
		h.log.Warn("adjust posted recipes", zap.Error(err))
		return
	}
	if err := h.users.SetRank(c.Request.Context(), userID, services.RankForCount(count)); err != nil {
		h.log.Warn("set rank", zap.Error(err))
	}
}
