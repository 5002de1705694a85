package auth

import "time"

// TokenService abstracts token creation and validation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenService interface {
	Issue(subjectID int64, ttl time.Duration) (string, error)
	Validate(token string) (int64, error)
}

// PasswordHasher hides the hashing algorithm from the use cases.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	// Dummy returns a digest of a fixed placeholder. Login verifies against
	// it when the email is unknown and discards the result.
	Dummy() string
}
