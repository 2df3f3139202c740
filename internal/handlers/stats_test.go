package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/models"
)

func statsRouter(db *gorm.DB) *gin.Engine {
	h := &StatsHandler{db: db}
	r := gin.New()
	r.GET("/admin/stats", h.AdminStats)
	r.GET("/community/top-contributors", h.TopContributors)
	r.GET("/tags/trending", h.TrendingTags)
	r.GET("/community/featured", h.FeaturedMembers)
	r.GET("/community/impact", h.CommunityImpact)
	return r
}

func TestAdminStats(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "a@agora.dev")
	seedUser(t, db, "b@agora.dev")
	post := seedPost(t, db, "a@agora.dev", "p", "go")
	seedComment(t, db, post.ID, "b@agora.dev", "c")

	rr := perform(t, statsRouter(db), http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.EqualValues(t, 1, body["posts"])
	assert.EqualValues(t, 1, body["comments"])
	assert.EqualValues(t, 2, body["users"])
}

func TestTopContributors_OrderAndCap(t *testing.T) {
	db := testDB(t)

	// Seven authors: author-i writes i+1 posts, so the cap of six drops the
	// single-post author.
	for i := 0; i < 7; i++ {
		email := fmt.Sprintf("author-%d@agora.dev", i)
		for j := 0; j <= i; j++ {
			seedPost(t, db, email, fmt.Sprintf("a%d-p%d", i, j), "go")
		}
	}

	rr := perform(t, statsRouter(db), http.MethodGet, "/community/top-contributors", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var rows []contributorRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 6)
	assert.Equal(t, "author-6@agora.dev", rows[0].AuthorEmail)
	assert.Equal(t, 7, rows[0].PostCount)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].PostCount, rows[i].PostCount)
	}
}

func TestTopContributors_VoteTieBreak(t *testing.T) {
	db := testDB(t)
	seedPost(t, db, "quiet@agora.dev", "q", "go")
	loud := seedPost(t, db, "loud@agora.dev", "l", "go")

	// Same post count; "loud" has received votes and ranks first.
	_, err := ApplyVote(db, loud.ID, "v1@x", models.VoteUp)
	require.NoError(t, err)
	_, err = ApplyVote(db, loud.ID, "v2@x", models.VoteDown)
	require.NoError(t, err)

	rr := perform(t, statsRouter(db), http.MethodGet, "/community/top-contributors", nil)
	var rows []contributorRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "loud@agora.dev", rows[0].AuthorEmail)
	assert.Equal(t, 2, rows[0].TotalVotes)
}

func TestTrendingTags(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 3; i++ {
		seedPost(t, db, "a@agora.dev", fmt.Sprintf("go%d", i), "go")
	}
	seedPost(t, db, "a@agora.dev", "r1", "rust")

	rr := perform(t, statsRouter(db), http.MethodGet, "/tags/trending", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var rows []tagCountRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "go", rows[0].Tag)
	assert.Equal(t, 3, rows[0].PostCount)
}

func TestFeaturedMembers_RulesAndOrder(t *testing.T) {
	db := testDB(t)

	seedUser(t, db, "gold-no-posts@agora.dev", func(u *models.User) { u.Badge = models.BadgeGold })
	seedUser(t, db, "bronze-poster@agora.dev")
	seedUser(t, db, "bronze-lurker@agora.dev")
	seedUser(t, db, "banned-gold@agora.dev", func(u *models.User) {
		u.Badge = models.BadgeGold
		u.Banned = true
	})
	seedPost(t, db, "bronze-poster@agora.dev", "p1", "go")
	seedPost(t, db, "bronze-poster@agora.dev", "p2", "go")

	rr := perform(t, statsRouter(db), http.MethodGet, "/community/featured", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var rows []featuredMemberRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2, "lurkers and banned users are excluded")

	// Gold badge outranks post count.
	assert.Equal(t, "gold-no-posts@agora.dev", rows[0].Email)
	assert.Equal(t, "bronze-poster@agora.dev", rows[1].Email)
	assert.Equal(t, 2, rows[1].PostCount)
}

func TestCommunityImpact(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "a@agora.dev")
	seedUser(t, db, "b@agora.dev")
	seedUser(t, db, "banned@agora.dev", func(u *models.User) { u.Banned = true })

	p1 := seedPost(t, db, "a@agora.dev", "p1", "go")
	seedPost(t, db, "a@agora.dev", "p2", "go")
	p3 := seedPost(t, db, "b@agora.dev", "p3", "rust")

	_, err := ApplyVote(db, p1.ID, "b@agora.dev", models.VoteUp)
	require.NoError(t, err)
	_, err = ApplyVote(db, p3.ID, "a@agora.dev", models.VoteUp)
	require.NoError(t, err)
	_, err = ApplyVote(db, p3.ID, "b@agora.dev", models.VoteDown)
	require.NoError(t, err)

	rr := perform(t, statsRouter(db), http.MethodGet, "/community/impact", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)

	assert.EqualValues(t, 2, body["members"], "banned members do not count")
	assert.EqualValues(t, 3, body["posts"])
	assert.EqualValues(t, 2, body["totalUpvotes"])
	assert.EqualValues(t, 2, body["distinctAuthors"])
}
