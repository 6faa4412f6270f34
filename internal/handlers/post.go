package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
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

type PostHandler struct {
	posts         repository.PostRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	pub           Publisher
	media         *services.MediaStore
	log           *zap.Logger
}

func NewPostHandler(
	posts repository.PostRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	pub Publisher,
	media *services.MediaStore,
	log *zap.Logger,
) *PostHandler {
	return &PostHandler{
		posts:         posts,
		users:         users,
		notifications: notifications,
		pub:           pub,
		media:         media,
		log:           log,
	}
}

// List returns every post newest first, with owner and comment authors
// resolved.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.All(c.Request.Context())
	if err != nil {
		serverError(c, h.log, "list posts", err)
		return
	}
	if err := resolvePosts(c.Request.Context(), h.users, posts); err != nil {
		serverError(c, h.log, "resolve post authors", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create stores a community post. The media slot is an explicit choice:
// an uploaded image/video file, an external URL, or nothing.
func (h *PostHandler) Create(c *gin.Context) {
	userID := middleware.Identity(c)

	content := c.PostForm("content")
	if content == "" {
		fail(c, http.StatusBadRequest, "Content is required")
		return
	}

	var fh *multipart.FileHeader
	field := ""
	if f, err := c.FormFile("image"); err == nil {
		fh, field = f, "image"
	} else if f, err := c.FormFile("video"); err == nil {
		fh, field = f, "video"
	}

	mediaURL := c.PostForm("mediaUrl")
	if fh != nil && mediaURL != "" {
		fail(c, http.StatusBadRequest, "Provide either an uploaded file or a media URL, not both")
		return
	}

	image, video := "", ""
	switch {
	case fh != nil:
		path, kind, err := h.media.SaveUpload(fh, field)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		if kind == services.MediaImage {
			image = path
		} else {
			video = path
		}
	case mediaURL != "":
		if services.ClassifyURL(mediaURL) == services.MediaImage {
			image = mediaURL
		} else {
			video = mediaURL
		}
	}

	post := &models.Post{
		UserID:    userID,
		Content:   content,
		Image:     image,
		Video:     video,
		Comments:  []models.Comment{},
		CreatedAt: time.Now(),
	}
	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		serverError(c, h.log, "create post", err)
		return
	}

	if err := resolvePost(c.Request.Context(), h.users, post); err != nil {
		serverError(c, h.log, "resolve post author", err)
		return
	}

	h.pub.Broadcast(realtime.EventNewPost, post)
	c.JSON(http.StatusCreated, post)
}

// Upvote bumps the upvote counter.
func (h *PostHandler) Upvote(c *gin.Context) {
	h.vote(c, true)
}

// Downvote bumps the downvote counter.
func (h *PostHandler) Downvote(c *gin.Context) {
	h.vote(c, false)
}

func (h *PostHandler) vote(c *gin.Context, up bool) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.posts.IncVotes(ctx, id, up); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, h.log, "update votes", err)
		return
	}

	h.respondUpdated(c, id)
}

// Comment appends a comment to the post. A comment on someone else's post
// creates a notification for the owner, emitted to the owner only.
func (h *PostHandler) Comment(c *gin.Context) {
	userID := middleware.Identity(c)
	ctx := c.Request.Context()

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		fail(c, http.StatusBadRequest, "Comment text is required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, h.log, "load post", err)
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	if err := h.posts.AddComment(ctx, id, comment); err != nil {
		serverError(c, h.log, "add comment", err)
		return
	}

	if post.UserID != userID {
		h.notifyPostOwner(c, post, userID, req.Text)
	}

	h.respondUpdated(c, id)
}

// Delete removes an owned post.
func (h *PostHandler) Delete(c *gin.Context) {
	userID := middleware.Identity(c)
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, h.log, "load post", err)
		return
	}

	if post.UserID != userID {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	if err := h.posts.Delete(ctx, id); err != nil {
		serverError(c, h.log, "delete post", err)
		return
	}

	h.pub.Broadcast(realtime.EventPostDeleted, id.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// DeleteComment removes an embedded comment; only its author may do so.
func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID := middleware.Identity(c)
	ctx := c.Request.Context()

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		fail(c, http.StatusNotFound, "Comment not found")
		return
	}

	post, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, h.log, "load post", err)
		return
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		fail(c, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.UserID != userID {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	if err := h.posts.RemoveComment(ctx, postID, commentID); err != nil {
		serverError(c, h.log, "remove comment", err)
		return
	}

	h.respondUpdated(c, postID)
}

// respondUpdated re-reads the mutated post with authors resolved,
// broadcasts it and returns it to the caller.
func (h *PostHandler) respondUpdated(c *gin.Context, id primitive.ObjectID) {
	ctx := c.Request.Context()

	updated, err := h.posts.GetByID(ctx, id)
	if err != nil {
		serverError(c, h.log, "reload post", err)
		return
	}
	if err := resolvePost(ctx, h.users, updated); err != nil {
		serverError(c, h.log, "resolve post authors", err)
		return
	}

	h.pub.Broadcast(realtime.EventPostUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

// notifyPostOwner records and emits the comment notification. The comment
// is already persisted, so failures are logged, not surfaced.
func (h *PostHandler) notifyPostOwner(c *gin.Context, post *models.Post, commenterID primitive.ObjectID, text string) {
	commenter, err := h.users.GetByID(c.Request.Context(), commenterID)
	if err != nil {
		h.log.Warn("load commenter for notification", zap.Error(err))
		return
	}

	n := &models.Notification{
		UserID:    post.UserID,
		Message:   fmt.Sprintf("%s commented on your post: \"%s\"", commenter.Name, text),
		CreatedAt: time.Now(),
	}
	if err := h.notifications.Create(c.Request.Context(), n); err != nil {
		h.log.Warn("create notification", zap.Error(err))
		return
	}

	h.pub.EmitTo(post.UserID, realtime.EventNewNotification, n)
}
