package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tempobudget/budget-api/auth"
	"github.com/tempobudget/budget-api/models"
	"github.com/tempobudget/budget-api/utils"
)

type AuthHandler struct {
	DB    *sql.DB
	Codec *auth.Codec
}

// Register creates a user account and returns a signed token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", req.Email).Scan(&exists)
	if err != nil {
		serviceError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	user := models.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err = h.DB.Exec(`
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Email, user.Name, passwordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := h.Codec.Issue(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SafeInfo("user registered: %s", utils.MaskEmail(user.Email))
	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	var passwordHash string
	err := h.DB.QueryRow(`
		SELECT id, email, name, password_hash, COALESCE(avatar, ''), COALESCE(phone, ''), created_at, updated_at
		FROM users
		WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Email, &user.Name, &passwordHash,
		&user.Avatar, &user.Phone, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		serviceError(c, err)
		return
	}

	if !utils.CheckPassword(req.Password, passwordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Codec.Issue(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
}
