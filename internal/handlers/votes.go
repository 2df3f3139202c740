package handlers

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agoralabs/agora/backend/internal/apperr"
	"github.com/agoralabs/agora/backend/internal/models"
)

func counterColumn(kind string) string {
	if kind == models.VoteUp {
		return "up_vote_count"
	}
	return "down_vote_count"
}

func oppositeKind(kind string) string {
	if kind == models.VoteUp {
		return models.VoteDown
	}
	return models.VoteUp
}

// ApplyVote runs one transition of the per-(post, voter) vote machine:
//
//	no vote      + kind           -> voted, counter +1
//	same vote    + kind           -> no vote, counter -1 (toggle off)
//	opposite     + kind           -> switched, old -1, new +1
//
// Ledger row and counters change inside a single transaction so concurrent
// voters can never leave the counters out of step with the ledger. On
// Postgres the post row is locked for the duration of the transition.
func ApplyVote(db *gorm.DB, postID int, voterEmail, kind string) (*models.Post, error) {
	if kind != models.VoteUp && kind != models.VoteDown {
		return nil, apperr.New(apperr.InvalidArgument, "Invalid vote type")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		postQuery := tx
		if tx.Dialector.Name() == "postgres" {
			postQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var post models.Post
		if err := postQuery.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Post not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to vote", err)
		}

		var existing models.Vote
		err := tx.Where("post_id = ? AND voter_email = ?", postID, voterEmail).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// New vote.
			vote := models.Vote{PostID: post.ID, VoterEmail: voterEmail, Kind: kind}
			if err := tx.Create(&vote).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to vote", err)
			}
			return incrementCounter(tx, post.ID, counterColumn(kind), +1)

		case err != nil:
			return apperr.Wrap(apperr.Internal, "Failed to vote", err)

		case existing.Kind == kind:
			// Same vote again: toggle off.
			if err := tx.Delete(&existing).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to vote", err)
			}
			return incrementCounter(tx, post.ID, counterColumn(kind), -1)

		default:
			// Opposite vote: switch the ledger entry and move one count over.
			if err := tx.Model(&existing).Update("kind", kind).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to vote", err)
			}
			if err := incrementCounter(tx, post.ID, counterColumn(oppositeKind(kind)), -1); err != nil {
				return err
			}
			return incrementCounter(tx, post.ID, counterColumn(kind), +1)
		}
	})
	if err != nil {
		return nil, err
	}

	var updated models.Post
	if err := db.First(&updated, postID).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to vote", err)
	}
	return &updated, nil
}

func incrementCounter(tx *gorm.DB, postID int, column string, delta int) error {
	err := tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to vote", err)
	}
	return nil
}
