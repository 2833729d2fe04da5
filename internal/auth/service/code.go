package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/cryptox"
)

const (
	codeDigits = 6
	codeTTL    = 15 * time.Minute
)

// CodeService issues and checks the one-time numeric codes behind email
// verification and password reset. Codes are single-use rows with a short
// TTL; delivery (email) is the caller's problem.
type CodeService struct {
	Store    store.Store
	Users    *UserService
	Sessions *SessionService
}

// IssueVerificationCode mints the code a user must echo back to prove they
// own their email address. Reissuing replaces any pending code.
func (s *CodeService) IssueVerificationCode(ctx context.Context, clientID, userID string) (string, error) {
	return s.issue(ctx, store.VerificationCodeKey(clientID, userID))
}

// IssueForgotPasswordCode mints the code behind a password reset.
func (s *CodeService) IssueForgotPasswordCode(ctx context.Context, clientID, userID string) (string, error) {
	return s.issue(ctx, store.ForgotPasswordCodeKey(clientID, userID))
}

func (s *CodeService) issue(ctx context.Context, key string) (string, error) {
	code, err := cryptox.GenerateCode(codeDigits)
	if err != nil {
		return "", err
	}
	if err := s.Store.Put(ctx, key, []byte(code), store.PutOptions{TTL: codeTTL}); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyEmail consumes a pending verification code and marks the user's email
// verified. ErrInvalidCode when the code is wrong, expired or never issued.
func (s *CodeService) VerifyEmail(ctx context.Context, clientID, userID, code string) error {
	key := store.VerificationCodeKey(clientID, userID)
	if err := s.consume(ctx, key, code); err != nil {
		return err
	}
	return s.Users.MarkEmailVerified(ctx, clientID, userID)
}

// ResetPassword consumes a pending forgot-password code and replaces the
// user's password. Existing sessions are archived so stolen tokens die with
// the old password; the caller is expected to issue a fresh session after.
func (s *CodeService) ResetPassword(ctx context.Context, clientID, userID, code, newPassword string) error {
	key := store.ForgotPasswordCodeKey(clientID, userID)
	if err := s.consume(ctx, key, code); err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, clientID, userID, newPassword); err != nil {
		return err
	}
	return s.Sessions.ClearSessions(ctx, clientID, userID)
}

// consume checks a presented code against the stored one and deletes it on
// match. One shot either way: a mismatch leaves the code in place until TTL.
func (s *CodeService) consume(ctx context.Context, key, code string) error {
	entry, err := s.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if subtle.ConstantTimeCompare(entry.Value, []byte(code)) != 1 {
		return ErrInvalidCode
	}
	return s.Store.Delete(ctx, key)
}
