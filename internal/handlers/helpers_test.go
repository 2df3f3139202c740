package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agoralabs/agora/backend/internal/database"
	"github.com/agoralabs/agora/backend/internal/middleware"
	"github.com/agoralabs/agora/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testDB opens a fresh in-memory database for one test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// asPrincipal injects a verified principal the way RequireAuth would.
func asPrincipal(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextEmail, email)
		c.Next()
	}
}

func perform(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func seedUser(t *testing.T, db *gorm.DB, email string, opts ...func(*models.User)) models.User {
	t.Helper()

	user := models.User{
		Email: email,
		Name:  email,
		Role:  models.RoleMember,
		Badge: models.BadgeBronze,
	}
	for _, opt := range opts {
		opt(&user)
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorEmail, title, tag string) models.Post {
	t.Helper()

	post := models.Post{
		AuthorEmail: authorEmail,
		AuthorName:  authorEmail,
		Title:       title,
		Description: "body of " + title,
		Tag:         tag,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, postID int, email, text string) models.Comment {
	t.Helper()

	comment := models.Comment{PostID: postID, UserEmail: email, UserName: email, Text: text}
	require.NoError(t, db.Create(&comment).Error)
	return comment
}
