package auth

import "golang.org/x/crypto/bcrypt"

// SecretVerifier checks a presented secret against a stored hash.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a mismatch is reported as ErrBadCredentials; any other
//   error is an internal failure.
type SecretVerifier interface {
	// VerifySecret compares the presented secret against the stored hash.
	VerifySecret(hash, secret string) error
}

// BcryptVerifier verifies secrets against bcrypt hashes. The comparison
// has constant structure regardless of where the mismatch occurs.
type BcryptVerifier struct{}

// VerifySecret compares the presented secret against the stored bcrypt
// hash. Any mismatch, including an unparseable hash, is reported as
// ErrBadCredentials.
func (BcryptVerifier) VerifySecret(hash, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

// HashSecret produces a bcrypt hash for a secret at the default cost.
// Hash creation belongs to the directory's backing store; this helper
// exists for seeding and tests.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Ensure BcryptVerifier implements SecretVerifier
var _ SecretVerifier = BcryptVerifier{}
