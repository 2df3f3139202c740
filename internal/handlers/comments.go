package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/models"
)

type CommentHandler struct {
	db          *gorm.DB
	maxPageSize int
}

// CreateComment adds a comment to a post (authenticated, not banned). The
// commenter's email comes from the self-matched query parameter; the display
// name is snapshotted onto the row.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing user or text"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:    post.ID,
		UserEmail: c.Query("email"),
		UserName:  input.UserName,
		Text:      input.Text,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

// GetComments returns a post's comments, newest first, paginated.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("postId")
	page, limit, skip := pagination(c, 5, h.maxPageSize)

	var total int64
	if err := h.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	var comments []models.Comment
	err := h.db.Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"hasMore":  int64(page*limit) < total,
	})
}

// ReportComment flags a comment for moderation with a free-text reason.
// Banned users may still report; only self-match is required here.
func (h *CommentHandler) ReportComment(c *gin.Context) {
	id := c.Param("id")

	var input models.ReportCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}

	err := h.db.Model(&comment).Updates(map[string]interface{}{
		"reported": true,
		"feedback": input.Feedback,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetReportedComments is the admin moderation queue, newest first.
func (h *CommentHandler) GetReportedComments(c *gin.Context) {
	page, limit, skip := pagination(c, 10, h.maxPageSize)

	var total int64
	if err := h.db.Model(&models.Comment{}).Where("reported = ?", true).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reported comments"})
		return
	}

	var comments []models.Comment
	err := h.db.Where("reported = ?", true).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reported comments"})
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"comments":   comments,
		"total":      total,
		"page":       page,
		"totalPages": totalPages(total, limit),
	})
}

// DismissReport clears a comment's reported state; the comment itself stays.
func (h *CommentHandler) DismissReport(c *gin.Context) {
	id := c.Param("id")

	var comment models.Comment
	if err := h.db.First(&comment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}

	err := h.db.Model(&comment).Updates(map[string]interface{}{
		"reported": false,
		"feedback": "",
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteComment removes a comment entirely (admin only).
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id := c.Param("id")

	var comment models.Comment
	if err := h.db.First(&comment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
