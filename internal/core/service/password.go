package service

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the single work factor used for every password hashed by the
// system, on both creation and verification paths.
const BcryptCost = 10

// HashPassword derives a salted one-way digest of the plaintext.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plain matches digest. A malformed digest
// yields false. bcrypt's comparison is constant-time over the hash output.
func VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
