package services

import (
	"gareddit/internal/config"
	"gareddit/internal/utils"

	"github.com/google/uuid"
)

// TokenService issues and redeems single-use password-reset tokens. Tokens
// live in a TTL'd key-value store under a prefixed key mapping to the user id,
// and are deleted on redemption.
type TokenService struct {
	store *utils.Cache
}

func NewTokenService(store *utils.Cache) *TokenService {
	return &TokenService{store: store}
}

// IssueResetToken creates a reset token for userID, valid for the configured
// expiration window.
func (s *TokenService) IssueResetToken(userID uint) string {
	token := uuid.NewString()
	s.store.Set(config.ForgetPasswordKeyPrefix+token, userID, config.ForgetPasswordTokenTTL)
	return token
}

// LookupResetToken resolves a token to its user id. Unknown and expired
// tokens are indistinguishable.
func (s *TokenService) LookupResetToken(token string) (uint, bool) {
	val := s.store.Get(config.ForgetPasswordKeyPrefix + token)
	if val == nil {
		return 0, false
	}
	userID, ok := val.(uint)
	return userID, ok
}

// ConsumeResetToken invalidates a token after a successful password change.
func (s *TokenService) ConsumeResetToken(token string) {
	s.store.Delete(config.ForgetPasswordKeyPrefix + token)
}
