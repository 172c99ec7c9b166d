package auth

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// ErrPasswordMismatch is returned by Compare when the candidate is wrong.
var ErrPasswordMismatch = bcrypt.ErrMismatchedHashAndPassword

// ErrPasswordTooLong is returned by Hash for passwords over MaxPasswordBytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// BcryptHasher hashes passwords with a fixed bcrypt work factor.
type BcryptHasher struct {
	Cost int
}

// Hash returns a salted bcrypt hash of the plain-text password.
func (h BcryptHasher) Hash(plain string) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	cost := h.Cost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(bytes), err
}

// Compare checks plain against hash. A wrong password yields
// ErrPasswordMismatch; a malformed hash yields bcrypt's own error.
func (h BcryptHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
