package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/middleware"
	"github.com/agoralabs/agora/backend/internal/models"
)

type UserHandler struct {
	db          *gorm.DB
	maxPageSize int
}

// Register stores a user on first authenticated contact. Subsequent calls
// for the same email are no-ops; existing records are never overwritten.
func (h *UserHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	var user models.User
	err := h.db.Where("email = ?", input.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:    input.Email,
			Name:     input.Name,
			PhotoURL: input.PhotoURL,
			Role:     models.RoleMember,
			Badge:    models.BadgeBronze,
			Banned:   false,
		}
		if err := h.db.Create(&user).Error; err != nil {
			// Lost the race with a concurrent first contact; the row exists
			// now, so re-read it instead of failing.
			if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
				return
			}
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User stored successfully", "user": user})
}

// GetUsers is the admin user search: optional name substring, caller
// excluded, paginated.
func (h *UserHandler) GetUsers(c *gin.Context) {
	principal, _ := middleware.PrincipalEmail(c)
	page, limit, skip := pagination(c, 10, h.maxPageSize)
	search := strings.TrimSpace(c.Query("search"))

	query := h.db.Model(&models.User{}).Where("email <> ?", principal)
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	var users []models.User
	if err := query.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"total":      total,
		"page":       page,
		"totalPages": totalPages(total, limit),
	})
}

// GetUser returns the caller's own stored record.
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserRole returns just the caller's role.
func (h *UserHandler) GetUserRole(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.Role})
}

// GetUserProfile is the public profile: the user plus their 3 most recent
// posts.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	email := c.Param("email")

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var posts []models.Post
	if err := h.db.Where("author_email = ?", email).Order("created_at DESC").Limit(3).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "recentPosts": posts})
}

// BanUser sets or clears the ban flag (admin only). The field must be an
// explicit boolean.
func (h *UserHandler) BanUser(c *gin.Context) {
	id := c.Param("id")

	var input models.BanRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Banned == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "banned must be a boolean"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found or not updated"})
		return
	}

	if err := h.db.Model(&user).Update("banned", *input.Banned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "banned": *input.Banned})
}

// MakeAdmin promotes a user to the admin role.
func (h *UserHandler) MakeAdmin(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if err := h.db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpgradeBadge flips the caller's badge to gold after payment completion.
func (h *UserHandler) UpgradeBadge(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if err := h.db.Model(&user).Update("badge", models.BadgeGold).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upgrade badge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
