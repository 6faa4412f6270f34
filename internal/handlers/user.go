package handlers

import (
	"errors"
	"net/http"
	"time"

	"cookhub/internal/errs"
	"cookhub/internal/middleware"
	"cookhub/internal/models"
	"cookhub/internal/repository"
	"cookhub/internal/token"
	"cookhub/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	users  repository.UserRepository
	tokens *token.Manager
	log    *zap.Logger
}

func NewUserHandler(users repository.UserRepository, tokens *token.Manager, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, log: log}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Avatar   string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		serverError(c, h.log, "hash password", err)
		return
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Avatar:    req.Avatar,
		Rank:      "Beginner",
		CreatedAt: time.Now(),
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, errs.ErrEmailTaken) {
			fail(c, http.StatusBadRequest, "User already exists")
			return
		}
		serverError(c, h.log, "create user", err)
		return
	}

	raw, err := h.tokens.Issue(user.ID)
	if err != nil {
		serverError(c, h.log, "issue token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": raw, "userId": user.ID.Hex()})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// same response as a wrong password, no account enumeration
			fail(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		serverError(c, h.log, "load user", err)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		fail(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	raw, err := h.tokens.Issue(user.ID)
	if err != nil {
		serverError(c, h.log, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": raw, "userId": user.ID.Hex()})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, h.log, "load user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" {
		fail(c, http.StatusBadRequest, "Name and email are required")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.Identity(c), req.Name, req.Email, req.Avatar)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, h.log, "update user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
