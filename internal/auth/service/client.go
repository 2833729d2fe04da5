package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
	"github.com/aussiebroadwan/authabl/internal/auth/store"
	"github.com/aussiebroadwan/authabl/pkg/cryptox"
	"github.com/aussiebroadwan/authabl/pkg/idx"
)

// ClientService is the client registry: one row per registered application,
// carrying its token-validity policy and API secret.
type ClientService struct {
	Store store.Store
}

// Get resolves a client id to its full registration. store.ErrNotFound when
// absent.
func (s *ClientService) Get(ctx context.Context, clientID string) (domain.Client, error) {
	entry, err := s.Store.Get(ctx, store.ClientKey(clientID))
	if err != nil {
		return domain.Client{}, err
	}

	var value domain.ClientValue
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		return domain.Client{}, err
	}
	var meta domain.ClientMetadata
	if err := entry.UnmarshalMetadata(&meta); err != nil {
		return domain.Client{}, err
	}
	return domain.CombineClient(clientID, value, meta), nil
}

// Create registers a client. A missing id or secret is generated; missing
// validity windows fall back to the defaults.
func (s *ClientService) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	if c.ID == "" {
		c.ID = idx.New().String()
	}
	if c.Secret == "" {
		secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return domain.Client{}, err
		}
		c.Secret = secret
	}
	if c.AccessTokenValidity <= 0 {
		c.AccessTokenValidity = domain.DefaultAccessTokenValidity
	}
	if c.RefreshTokenValidity <= 0 {
		c.RefreshTokenValidity = domain.DefaultRefreshTokenValidity
	}

	value, meta := c.Split()
	err := store.PutJSON(ctx, s.Store, store.ClientKey(c.ID), value, store.PutOptions{Metadata: meta})
	if err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

// List returns every registered client.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	entries, err := s.Store.List(ctx, store.ClientsPrefix())
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(entries))
	for _, entry := range entries {
		id := entry.Key[len(store.ClientsPrefix()):]
		client, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// Delete removes a client registration. Its users and sessions are left to
// their own lifecycles.
func (s *ClientService) Delete(ctx context.Context, clientID string) error {
	return s.Store.Delete(ctx, store.ClientKey(clientID))
}

// VerifySecret checks a presented API secret against the client's registered
// one. ErrInvalidClient on unknown client or mismatch.
func (s *ClientService) VerifySecret(ctx context.Context, clientID, secret string) error {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return ErrInvalidClient
	}
	if subtle.ConstantTimeCompare([]byte(client.Secret), []byte(secret)) != 1 {
		return ErrInvalidClient
	}
	return nil
}
