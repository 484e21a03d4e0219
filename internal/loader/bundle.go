package loader

import (
	"gareddit/internal/models"

	"gorm.io/gorm"
)

// VoteKey identifies one ledger row for the vote-status loader.
type VoteKey struct {
	UserID uint
	PostID uint
}

// Bundle holds the per-request loaders. Middleware builds a fresh Bundle for
// every inbound request; nothing here survives the request.
type Bundle struct {
	Creators *Loader[uint, models.User]
	Votes    *Loader[VoteKey, models.Vote]
}

func NewBundle(conn *gorm.DB) *Bundle {
	return &Bundle{
		Creators: New(func(ids []uint) (map[uint]models.User, error) {
			var users []models.User
			if err := conn.Where("id IN ?", ids).Find(&users).Error; err != nil {
				return nil, err
			}
			byID := make(map[uint]models.User, len(users))
			for _, u := range users {
				byID[u.ID] = u
			}
			return byID, nil
		}),
		Votes: New(func(keys []VoteKey) (map[VoteKey]models.Vote, error) {
			// One multi-row fetch for every (user, post) pair in the batch.
			// The pairs all share a viewer in practice, but the query keys on
			// the full composite anyway.
			pairs := make([][]interface{}, len(keys))
			for i, k := range keys {
				pairs[i] = []interface{}{k.UserID, k.PostID}
			}
			var votes []models.Vote
			if err := conn.Where("(user_id, post_id) IN ?", pairs).Find(&votes).Error; err != nil {
				return nil, err
			}
			byKey := make(map[VoteKey]models.Vote, len(votes))
			for _, v := range votes {
				byKey[VoteKey{UserID: v.UserID, PostID: v.PostID}] = v
			}
			return byKey, nil
		}),
	}
}
