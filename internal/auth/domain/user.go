package domain

// User is a registered account within one client's registry. Users are scoped
// to a client; the same email under two clients is two unrelated users.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email,omitempty"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     int64  `json:"createdAt"` // unix ms
}

// UserValue is the secret-bearing half stored as the KV value. It never leaves
// the service.
type UserValue struct {
	Password      string `json:"password"` // argon2id hash
	EmailVerified bool   `json:"emailVerified"`
}

// UserMetadata is the profile half stored as the KV metadata blob.
type UserMetadata struct {
	Email         string `json:"email,omitempty"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     int64  `json:"createdAt"`
}

// CombineUser reassembles the public user from its stored halves.
func CombineUser(id string, m UserMetadata) User {
	return User{
		ID:            id,
		Email:         m.Email,
		Username:      m.Username,
		Role:          m.Role,
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt,
	}
}
