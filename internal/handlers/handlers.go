package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/apperr"
	"github.com/agoralabs/agora/backend/internal/payments"
)

// Handler combines all handler types
type Handler struct {
	User         *UserHandler
	Post         *PostHandler
	Comment      *CommentHandler
	Tag          *TagHandler
	Announcement *AnnouncementHandler
	Stats        *StatsHandler
	Payment      *PaymentHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, provider payments.Provider, maxPageSize int) *Handler {
	return &Handler{
		User:         &UserHandler{db: db, maxPageSize: maxPageSize},
		Post:         &PostHandler{db: db, maxPageSize: maxPageSize},
		Comment:      &CommentHandler{db: db, maxPageSize: maxPageSize},
		Tag:          &TagHandler{db: db},
		Announcement: &AnnouncementHandler{db: db},
		Stats:        &StatsHandler{db: db},
		Payment:      &PaymentHandler{provider: provider},
	}
}

// pagination reads 1-indexed ?page and ?limit, clamping limit to maxLimit.
func pagination(c *gin.Context, defaultLimit, maxLimit int) (page, limit, skip int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"message": apperr.PublicMessage(err)})
}
