package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/models"
)

type AnnouncementHandler struct {
	db *gorm.DB
}

// GetAnnouncements lists every announcement, newest first.
func (h *AnnouncementHandler) GetAnnouncements(c *gin.Context) {
	var announcements []models.Announcement
	if err := h.db.Order("created_at DESC").Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch announcements"})
		return
	}

	if announcements == nil {
		announcements = []models.Announcement{}
	}
	c.JSON(http.StatusOK, announcements)
}

// CountAnnouncements returns the total number of announcements.
func (h *AnnouncementHandler) CountAnnouncements(c *gin.Context) {
	var count int64
	if err := h.db.Model(&models.Announcement{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count announcements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// CreateAnnouncement publishes a broadcast (admin only).
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var input models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	announcement := models.Announcement{
		AuthorImage: input.AuthorImage,
		AuthorName:  input.AuthorName,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := h.db.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, announcement)
}
