package services

import (
	"errors"

	"gareddit/internal/models"

	"gorm.io/gorm"
)

// Direction is a requested vote direction.
type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidDirection = errors.New("invalid vote direction")
)

// transition describes the ledger mutation a vote request resolves to.
type transition int

const (
	insertVote transition = iota
	updateVote
	deleteVote
)

// VoteService applies vote transitions: the ledger row and the post's
// denormalized score always change together, inside one transaction.
type VoteService struct {
	conn *gorm.DB
}

func NewVoteService(conn *gorm.DB) *VoteService {
	return &VoteService{conn: conn}
}

// resolve maps (current ledger value, requested direction) to the ledger
// action and score delta. current == 0 means no existing row.
//
//	none     + up   -> insert +1, delta +1
//	none     + down -> insert -1, delta -1
//	upvoted  + up   -> delete,    delta -1   (toggle off)
//	upvoted  + down -> update -1, delta -2   (flip: remove +1, add -1)
//	downvoted+ down -> delete,    delta +1   (toggle off)
//	downvoted+ up   -> update +1, delta +2   (flip)
func resolve(current int, dir Direction) (action transition, delta int) {
	v := int(dir)
	switch current {
	case 0:
		return insertVote, v
	case v:
		return deleteVote, -v
	default:
		return updateVote, 2 * v
	}
}

// Cast records userID's vote on postID. Repeating a direction retracts the
// vote; switching directions flips it. Any failure rolls the whole transition
// back, so the score and the ledger never drift apart.
func (s *VoteService) Cast(postID, userID uint, dir Direction) error {
	if dir != Up && dir != Down {
		return ErrInvalidDirection
	}

	return s.conn.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		action, delta := resolve(existing.Value, dir)

		switch action {
		case insertVote:
			vote := models.Vote{UserID: userID, PostID: postID, Value: int(dir)}
			if err := tx.Create(&vote).Error; err != nil {
				// Covers the concurrent duplicate insert losing at the
				// composite primary key.
				return err
			}
		case updateVote:
			if err := tx.Model(&models.Vote{}).
				Where("user_id = ? AND post_id = ?", userID, postID).
				Update("value", int(dir)).Error; err != nil {
				return err
			}
		case deleteVote:
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.Vote{}).Error; err != nil {
				return err
			}
		}

		return applyScoreDelta(tx, postID, delta)
	})
}

// applyScoreDelta bumps the post's score by delta as a single atomic SQL
// increment. Concurrent deltas commute at the database; there is no
// read-modify-write window. A post that does not exist surfaces as
// ErrPostNotFound and aborts the enclosing transaction.
func applyScoreDelta(tx *gorm.DB, postID uint, delta int) error {
	res := tx.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("score", gorm.Expr("score + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Status returns the viewer's current vote value for a post: 1, -1, or 0 when
// no vote exists.
func (s *VoteService) Status(postID, userID uint) (int, error) {
	var vote models.Vote
	err := s.conn.Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return vote.Value, nil
}
