package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/middleware"
	"github.com/agoralabs/agora/backend/internal/models"
)

type PostHandler struct {
	db          *gorm.DB
	maxPageSize int
}

const postViewColumns = "posts.*, " +
	"posts.up_vote_count - posts.down_vote_count AS vote_difference, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// filteredPosts returns a fresh query over posts, optionally narrowed by a
// case-insensitive tag substring.
func (h *PostHandler) filteredPosts(search string) *gorm.DB {
	query := h.db.Model(&models.Post{})
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(tag) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return query
}

// GetPosts returns the joined, sorted, paginated post listing.
// ?sortBy=popularity orders by vote difference; anything else means newest.
func (h *PostHandler) GetPosts(c *gin.Context) {
	page, limit, skip := pagination(c, 5, h.maxPageSize)
	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}

	var total int64
	if err := h.filteredPosts(search).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch posts"})
		return
	}

	// Ties on vote difference break by recency then id so repeated queries
	// return the same order.
	order := "created_at DESC, id DESC"
	if c.Query("sortBy") == "popularity" {
		order = "vote_difference DESC, " + order
	}

	var posts []models.PostView
	err := h.filteredPosts(search).
		Select(postViewColumns).
		Order(order).
		Offset(skip).
		Limit(limit).
		Scan(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch posts"})
		return
	}

	if posts == nil {
		posts = []models.PostView{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        posts,
		"total":       total,
		"currentPage": page,
		"totalPages":  totalPages(total, limit),
	})
}

// GetPost returns a single post with its derived fields and all comments,
// newest first.
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	var post models.PostView
	result := h.db.Model(&models.Post{}).
		Select(postViewColumns).
		Where("posts.id = ?", id).
		Scan(&post)
	if result.Error != nil || result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var comments []models.Comment
	if err := h.db.Where("post_id = ?", id).Order("created_at DESC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost creates a new post (authenticated, not banned). The author
// name/avatar are stored as a snapshot and never re-joined against users.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	if input.AuthorEmail == "" || input.Title == "" || input.Description == "" || input.Tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	post := models.Post{
		AuthorImage: input.AuthorImage,
		AuthorName:  input.AuthorName,
		AuthorEmail: input.AuthorEmail,
		Title:       input.Title,
		Description: input.Description,
		Tag:         input.Tag,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "postId": post.ID})
}

// DeletePost removes a post (author only). The stored author is re-checked
// against the caller-declared email; the self-match middleware alone is not
// trusted for a destructive operation.
func (h *PostHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	email := c.Query("email")

	var post models.Post
	if err := h.db.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	if post.AuthorEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden Access!"})
		return
	}

	// The ledger belongs to the post; both deletes commit together or not at
	// all, so the counter/ledger invariant survives a storage failure.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// VotePost applies one vote transition (?type=upvote|downvote).
func (h *PostHandler) VotePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	voter, ok := middleware.PrincipalEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access!"})
		return
	}

	post, err := ApplyVote(h.db, id, voter, c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upVoteCount":    post.UpVoteCount,
		"downVoteCount":  post.DownVoteCount,
		"voteDifference": post.UpVoteCount - post.DownVoteCount,
	})
}

// GetPostsByUser returns the caller's own posts, newest first.
func (h *PostHandler) GetPostsByUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
		return
	}

	page, limit, skip := pagination(c, 5, h.maxPageSize)

	var total int64
	if err := h.db.Model(&models.Post{}).Where("author_email = ?", email).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	var posts []models.Post
	err := h.db.Where("author_email = ?", email).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":   posts,
		"total":   total,
		"hasMore": int64(page*limit) < total,
	})
}

// CountUserPosts returns how many posts an author has.
func (h *PostHandler) CountUserPosts(c *gin.Context) {
	email := c.Param("email")

	var count int64
	if err := h.db.Model(&models.Post{}).Where("author_email = ?", email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
