package services

import (
	"testing"

	"gareddit/internal/utils"
)

func TestResetTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(utils.NewCache(10))

	token := svc.IssueResetToken(7)
	if token == "" {
		t.Fatal("empty token issued")
	}

	userID, ok := svc.LookupResetToken(token)
	if !ok || userID != 7 {
		t.Errorf("LookupResetToken = (%d, %v), want (7, true)", userID, ok)
	}
}

func TestResetTokenSingleUse(t *testing.T) {
	svc := NewTokenService(utils.NewCache(10))

	token := svc.IssueResetToken(7)
	svc.ConsumeResetToken(token)

	if _, ok := svc.LookupResetToken(token); ok {
		t.Error("consumed token still resolves")
	}
}

func TestUnknownTokenRejected(t *testing.T) {
	svc := NewTokenService(utils.NewCache(10))

	if _, ok := svc.LookupResetToken("not-issued"); ok {
		t.Error("unknown token resolved")
	}
}

func TestTokensAreUnique(t *testing.T) {
	svc := NewTokenService(utils.NewCache(10))

	if svc.IssueResetToken(1) == svc.IssueResetToken(1) {
		t.Error("two issued tokens collided")
	}
}
