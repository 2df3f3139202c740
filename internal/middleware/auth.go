package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/auth"
	"github.com/agoralabs/agora/backend/internal/models"
)

// Context keys set by RequireAuth.
const (
	ContextEmail  = "email"
	ContextClaims = "claims"
)

// PrincipalEmail returns the verified email of the current request, if any.
func PrincipalEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(ContextEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok && s != ""
}

// RequireAuth verifies the bearer credential and stores the principal on the
// context. Missing or malformed headers are rejected before the verifier is
// called, so no verification round-trip happens for garbage requests.
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access!"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access!"})
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// SelfMatch requires the email query parameter to equal the verified
// principal. Used wherever a user acts on their own resources.
func SelfMatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalEmail(c)
		if !ok || c.Query("email") != principal {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access!"})
			return
		}
		c.Next()
	}
}

// RequireAdmin checks the stored role of the principal. A known user without
// the admin role gets 403; a principal with no stored record gets 401, since
// we cannot establish who they are in this system.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalEmail(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", principal).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}

		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

// RequireNotBanned rejects banned principals. A principal with no stored
// record passes; the ban flag can only be read off an existing user row.
func RequireNotBanned(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalEmail(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var user models.User
		err := db.Where("email = ?", principal).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}

		if user.Banned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Your account is banned."})
			return
		}
		c.Next()
	}
}
