package domain

// Default token validity windows in seconds, applied when a client is created
// without explicit values.
const (
	DefaultAccessTokenValidity  = 3600
	DefaultRefreshTokenValidity = 1209600 // 14 days
)

// Client is a registered application with its own token policy. The core reads
// clients only to resolve that policy; all mutation goes through the registry.
type Client struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
	Name   string `json:"name"`

	AccessTokenValidity  int64 `json:"accessTokenValidity"`  // seconds
	RefreshTokenValidity int64 `json:"refreshTokenValidity"` // seconds
	DisableRefreshToken  bool  `json:"disableRefreshToken"`

	// RefreshRefreshToken exists on the wire schema but nothing reads it.
	RefreshRefreshToken bool `json:"refreshRefreshToken"`

	RedirectURIs []string `json:"redirectUris,omitempty"`
}

// ClientValue is the policy half stored as the KV value.
type ClientValue struct {
	AccessTokenValidity  int64    `json:"accessTokenValidity"`
	RefreshTokenValidity int64    `json:"refreshTokenValidity"`
	DisableRefreshToken  bool     `json:"disableRefreshToken"`
	RefreshRefreshToken  bool     `json:"refreshRefreshToken"`
	RedirectURIs         []string `json:"redirectUris,omitempty"`
}

// ClientMetadata is the identity half stored as the KV metadata blob.
type ClientMetadata struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// Split separates a client into its stored value and metadata halves.
func (c Client) Split() (ClientValue, ClientMetadata) {
	return ClientValue{
			AccessTokenValidity:  c.AccessTokenValidity,
			RefreshTokenValidity: c.RefreshTokenValidity,
			DisableRefreshToken:  c.DisableRefreshToken,
			RefreshRefreshToken:  c.RefreshRefreshToken,
			RedirectURIs:         c.RedirectURIs,
		}, ClientMetadata{
			Name:   c.Name,
			Secret: c.Secret,
		}
}

// CombineClient reassembles a client from its stored halves.
func CombineClient(id string, v ClientValue, m ClientMetadata) Client {
	return Client{
		ID:                   id,
		Secret:               m.Secret,
		Name:                 m.Name,
		AccessTokenValidity:  v.AccessTokenValidity,
		RefreshTokenValidity: v.RefreshTokenValidity,
		DisableRefreshToken:  v.DisableRefreshToken,
		RefreshRefreshToken:  v.RefreshRefreshToken,
		RedirectURIs:         v.RedirectURIs,
	}
}
