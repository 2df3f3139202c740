package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agoralabs/agora/backend/internal/apperr"
	"github.com/agoralabs/agora/backend/internal/models"
)

// assertLedgerInvariant checks that the cached counters match the ledger
// projection and that no voter holds more than one entry.
func assertLedgerInvariant(t *testing.T, db *gorm.DB, postID int) {
	t.Helper()

	var post models.Post
	require.NoError(t, db.First(&post, postID).Error)

	var up, down int64
	require.NoError(t, db.Model(&models.Vote{}).Where("post_id = ? AND kind = ?", postID, models.VoteUp).Count(&up).Error)
	require.NoError(t, db.Model(&models.Vote{}).Where("post_id = ? AND kind = ?", postID, models.VoteDown).Count(&down).Error)

	assert.Equal(t, int(up), post.UpVoteCount, "upVoteCount diverged from ledger")
	assert.Equal(t, int(down), post.DownVoteCount, "downVoteCount diverged from ledger")

	var voters []string
	require.NoError(t, db.Model(&models.Vote{}).Where("post_id = ?", postID).Pluck("voter_email", &voters).Error)
	seen := make(map[string]bool, len(voters))
	for _, v := range voters {
		assert.False(t, seen[v], "voter %s has multiple ledger entries", v)
		seen[v] = true
	}
}

func TestApplyVote_NewVote(t *testing.T) {
	db := testDB(t)
	post := seedPost(t, db, "author@agora.dev", "first", "go")

	updated, err := ApplyVote(db, post.ID, "voter@agora.dev", models.VoteUp)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.UpVoteCount)
	assert.Equal(t, 0, updated.DownVoteCount)
	assertLedgerInvariant(t, db, post.ID)
}

func TestApplyVote_ToggleOffRoundTrip(t *testing.T) {
	db := testDB(t)
	post := seedPost(t, db, "author@agora.dev", "first", "go")

	_, err := ApplyVote(db, post.ID, "voter@agora.dev", models.VoteDown)
	require.NoError(t, err)
	assertLedgerInvariant(t, db, post.ID)

	updated, err := ApplyVote(db, post.ID, "voter@agora.dev", models.VoteDown)
	require.NoError(t, err)

	// Same vote twice returns the post to its pre-vote counters exactly.
	assert.Equal(t, 0, updated.UpVoteCount)
	assert.Equal(t, 0, updated.DownVoteCount)
	assertLedgerInvariant(t, db, post.ID)

	var entries int64
	require.NoError(t, db.Model(&models.Vote{}).Where("post_id = ?", post.ID).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestApplyVote_SwitchVote(t *testing.T) {
	db := testDB(t)
	post := seedPost(t, db, "author@agora.dev", "first", "go")

	_, err := ApplyVote(db, post.ID, "voter@agora.dev", models.VoteUp)
	require.NoError(t, err)

	updated, err := ApplyVote(db, post.ID, "voter@agora.dev", models.VoteDown)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.UpVoteCount)
	assert.Equal(t, 1, updated.DownVoteCount)
	assertLedgerInvariant(t, db, post.ID)

	var vote models.Vote
	require.NoError(t, db.Where("post_id = ? AND voter_email = ?", post.ID, "voter@agora.dev").First(&vote).Error)
	assert.Equal(t, models.VoteDown, vote.Kind)
}

func TestApplyVote_TwoVoters(t *testing.T) {
	db := testDB(t)
	post := seedPost(t, db, "a@agora.dev", "rust post", "rust")

	// B upvotes, then A downvotes their own post.
	_, err := ApplyVote(db, post.ID, "b@agora.dev", models.VoteUp)
	require.NoError(t, err)
	updated, err := ApplyVote(db, post.ID, "a@agora.dev", models.VoteDown)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.UpVoteCount)
	assert.Equal(t, 1, updated.DownVoteCount)
	assert.Equal(t, 0, updated.UpVoteCount-updated.DownVoteCount)

	var entries int64
	require.NoError(t, db.Model(&models.Vote{}).Where("post_id = ?", post.ID).Count(&entries).Error)
	assert.EqualValues(t, 2, entries)
	assertLedgerInvariant(t, db, post.ID)
}

func TestApplyVote_InvariantAfterEveryTransition(t *testing.T) {
	db := testDB(t)
	post := seedPost(t, db, "author@agora.dev", "first", "go")

	sequence := []struct {
		voter string
		kind  string
	}{
		{"v1@agora.dev", models.VoteUp},
		{"v2@agora.dev", models.VoteUp},
		{"v1@agora.dev", models.VoteDown}, // switch
		{"v3@agora.dev", models.VoteDown},
		{"v2@agora.dev", models.VoteUp},   // toggle off
		{"v1@agora.dev", models.VoteDown}, // toggle off
		{"v3@agora.dev", models.VoteUp},   // switch
	}

	for i, step := range sequence {
		_, err := ApplyVote(db, post.ID, step.voter, step.kind)
		require.NoError(t, err, "step %d", i)
		assertLedgerInvariant(t, db, post.ID)
	}

	var final models.Post
	require.NoError(t, db.First(&final, post.ID).Error)
	assert.Equal(t, 1, final.UpVoteCount)
	assert.Equal(t, 0, final.DownVoteCount)
}

func TestApplyVote_InvalidKind(t *testing.T) {
	db := testDB(t)
	post := seedPost(t, db, "author@agora.dev", "first", "go")

	_, err := ApplyVote(db, post.ID, "voter@agora.dev", "sideways")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestApplyVote_PostNotFound(t *testing.T) {
	db := testDB(t)

	_, err := ApplyVote(db, 9999, "voter@agora.dev", models.VoteUp)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
