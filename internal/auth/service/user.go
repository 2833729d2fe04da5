package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/cryptox"
	"github.com/aussiebroadwan/authabl/pkg/idx"
)

// UserService is the per-client user registry. Email and username are unique
// within one client via secondary index rows; across clients they are
// unrelated namespaces.
type UserService struct {
	Store    store.Store
	Sessions *SessionService
}

// Register creates a user and its email/username index rows. Passwords are
// stored as argon2id hashes only.
func (s *UserService) Register(ctx context.Context, clientID string, u domain.User, password string) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)

	if u.Email != "" {
		if _, err := s.Store.Get(ctx, store.EmailIndexKey(clientID, u.Email)); err == nil {
			return domain.User{}, ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}
	}
	if u.Username != "" {
		if _, err := s.Store.Get(ctx, store.UsernameIndexKey(clientID, u.Username)); err == nil {
			return domain.User{}, ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u.ID = idx.New().String()
	u.CreatedAt = time.Now().UnixMilli()
	u.EmailVerified = false

	err = store.PutJSON(ctx, s.Store, store.UserKey(clientID, u.ID),
		domain.UserValue{Password: hash},
		store.PutOptions{Metadata: s.metadata(u)},
	)
	if err != nil {
		return domain.User{}, err
	}

	if u.Email != "" {
		if err := s.Store.Put(ctx, store.EmailIndexKey(clientID, u.Email), []byte(u.ID), store.PutOptions{}); err != nil {
			return domain.User{}, err
		}
	}
	if u.Username != "" {
		if err := s.Store.Put(ctx, store.UsernameIndexKey(clientID, u.Username), []byte(u.ID), store.PutOptions{}); err != nil {
			return domain.User{}, err
		}
	}

	return u, nil
}

func (s *UserService) metadata(u domain.User) domain.UserMetadata {
	return domain.UserMetadata{
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// GetByID returns a user's public profile. store.ErrNotFound when absent.
func (s *UserService) GetByID(ctx context.Context, clientID, userID string) (domain.User, error) {
	entry, err := s.Store.Get(ctx, store.UserKey(clientID, userID))
	if err != nil {
		return domain.User{}, err
	}
	var meta domain.UserMetadata
	if err := entry.UnmarshalMetadata(&meta); err != nil {
		return domain.User{}, err
	}
	return domain.CombineUser(userID, meta), nil
}

// GetByEmail resolves a user through the email index.
func (s *UserService) GetByEmail(ctx context.Context, clientID, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	index, err := s.Store.Get(ctx, store.EmailIndexKey(clientID, email))
	if err != nil {
		return domain.User{}, err
	}
	return s.GetByID(ctx, clientID, string(index.Value))
}

// GetByUsername resolves a user through the username index.
func (s *UserService) GetByUsername(ctx context.Context, clientID, username string) (domain.User, error) {
	index, err := s.Store.Get(ctx, store.UsernameIndexKey(clientID, strings.TrimSpace(username)))
	if err != nil {
		return domain.User{}, err
	}
	return s.GetByID(ctx, clientID, string(index.Value))
}

// List returns every user registered under a client.
func (s *UserService) List(ctx context.Context, clientID string) ([]domain.User, error) {
	entries, err := s.Store.List(ctx, store.UsersPrefix(clientID))
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(entries))
	for _, entry := range entries {
		var meta domain.UserMetadata
		if err := entry.UnmarshalMetadata(&meta); err != nil {
			return nil, err
		}
		id := entry.Key[len(store.UsersPrefix(clientID)):]
		users = append(users, domain.CombineUser(id, meta))
	}
	return users, nil
}

// VerifyCredentials authenticates a login. The login field is matched against
// the email index when it looks like an address, the username index
// otherwise. ErrInvalidCredentials on any mismatch; the caller cannot tell an
// unknown user from a wrong password.
func (s *UserService) VerifyCredentials(ctx context.Context, clientID, login, password string) (domain.User, error) {
	var u domain.User
	var err error
	if strings.Contains(login, "@") {
		u, err = s.GetByEmail(ctx, clientID, login)
	} else {
		u, err = s.GetByUsername(ctx, clientID, login)
	}
	if err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	entry, err := s.Store.Get(ctx, store.UserKey(clientID, u.ID))
	if err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	var value domain.UserValue
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		return domain.User{}, err
	}
	if err := cryptox.VerifyPassword(password, value.Password); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdatePassword replaces a user's password hash, leaving profile and
// verification state untouched.
func (s *UserService) UpdatePassword(ctx context.Context, clientID, userID, newPassword string) error {
	entry, err := s.Store.Get(ctx, store.UserKey(clientID, userID))
	if err != nil {
		return err
	}
	var value domain.UserValue
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	value.Password = hash

	return store.PutJSON(ctx, s.Store, store.UserKey(clientID, userID), value, store.PutOptions{
		Metadata: json.RawMessage(entry.Metadata),
	})
}

// MarkEmailVerified flips the verified flag in both stored halves.
func (s *UserService) MarkEmailVerified(ctx context.Context, clientID, userID string) error {
	entry, err := s.Store.Get(ctx, store.UserKey(clientID, userID))
	if err != nil {
		return err
	}
	var value domain.UserValue
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		return err
	}
	var meta domain.UserMetadata
	if err := entry.UnmarshalMetadata(&meta); err != nil {
		return err
	}

	value.EmailVerified = true
	meta.EmailVerified = true

	return store.PutJSON(ctx, s.Store, store.UserKey(clientID, userID), value, store.PutOptions{
		Metadata: meta,
	})
}

// Delete archives every session the user has, then removes the user and its
// index rows. Archival first: the audit trail must survive the account.
func (s *UserService) Delete(ctx context.Context, clientID, userID string) error {
	u, err := s.GetByID(ctx, clientID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.Sessions.ClearSessions(ctx, clientID, userID); err != nil {
		return err
	}

	if u.Email != "" {
		if err := s.Store.Delete(ctx, store.EmailIndexKey(clientID, u.Email)); err != nil {
			return err
		}
	}
	if u.Username != "" {
		if err := s.Store.Delete(ctx, store.UsernameIndexKey(clientID, u.Username)); err != nil {
			return err
		}
	}
	return s.Store.Delete(ctx, store.UserKey(clientID, userID))
}
