package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/models"
)

type StatsHandler struct {
	db *gorm.DB
}

// Fixed caps for the derived community views.
const (
	topContributorsCap = 6
	trendingTagsCap    = 10
	featuredMembersCap = 10
)

// AdminStats returns the moderation dashboard counts.
func (h *StatsHandler) AdminStats(c *gin.Context) {
	var posts, comments, users int64
	if err := h.db.Model(&models.Post{}).Count(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}
	if err := h.db.Model(&models.Comment{}).Count(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}
	if err := h.db.Model(&models.User{}).Count(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "comments": comments, "users": users})
}

type contributorRow struct {
	AuthorEmail string `json:"authorEmail"`
	AuthorName  string `json:"authorName"`
	AuthorImage string `json:"authorImage"`
	PostCount   int    `json:"postCount"`
	TotalVotes  int    `json:"totalVotes"`
}

// TopContributors groups posts by author and ranks by post count, then by
// total votes received.
func (h *StatsHandler) TopContributors(c *gin.Context) {
	var rows []contributorRow
	err := h.db.Model(&models.Post{}).
		Select("author_email, MAX(author_name) AS author_name, MAX(author_image) AS author_image, " +
			"COUNT(*) AS post_count, SUM(up_vote_count + down_vote_count) AS total_votes").
		Group("author_email").
		Order("post_count DESC, total_votes DESC, author_email ASC").
		Limit(topContributorsCap).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if rows == nil {
		rows = []contributorRow{}
	}
	c.JSON(http.StatusOK, rows)
}

type tagCountRow struct {
	Tag       string `json:"tag"`
	PostCount int    `json:"count"`
}

// TrendingTags ranks tags by how many posts carry them.
func (h *StatsHandler) TrendingTags(c *gin.Context) {
	var rows []tagCountRow
	err := h.db.Model(&models.Post{}).
		Select("tag, COUNT(*) AS post_count").
		Group("tag").
		Order("post_count DESC, tag ASC").
		Limit(trendingTagsCap).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if rows == nil {
		rows = []tagCountRow{}
	}
	c.JSON(http.StatusOK, rows)
}

type featuredMemberRow struct {
	models.User
	PostCount int `json:"postCount"`
}

// FeaturedMembers surfaces non-banned users who either hold a gold badge or
// have posted at least once, gold first.
func (h *StatsHandler) FeaturedMembers(c *gin.Context) {
	var rows []featuredMemberRow
	err := h.db.Model(&models.User{}).
		Select("users.*, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.author_email = users.email").
		Where("users.banned = ?", false).
		Group("users.id").
		Having("users.badge = ? OR COUNT(posts.id) >= 1", models.BadgeGold).
		Order("CASE WHEN users.badge = 'gold' THEN 0 ELSE 1 END, post_count DESC, users.id ASC").
		Limit(featuredMembersCap).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if rows == nil {
		rows = []featuredMemberRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// CommunityImpact summarizes the platform: non-banned members, posts, total
// upvotes given, and how many distinct authors have posted.
func (h *StatsHandler) CommunityImpact(c *gin.Context) {
	var members, posts int64
	if err := h.db.Model(&models.User{}).Where("banned = ?", false).Count(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if err := h.db.Model(&models.Post{}).Count(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	var totals struct {
		TotalUpvotes    int
		DistinctAuthors int
	}
	err := h.db.Model(&models.Post{}).
		Select("COALESCE(SUM(up_vote_count), 0) AS total_upvotes, COUNT(DISTINCT author_email) AS distinct_authors").
		Scan(&totals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members":         members,
		"posts":           posts,
		"totalUpvotes":    totals.TotalUpvotes,
		"distinctAuthors": totals.DistinctAuthors,
	})
}
