// Package auth holds the credential primitives: bcrypt password
// hashing and signed bearer-token issuance/validation. bcrypt is the
// single hashing scheme system-wide; digests from any other scheme
// will not verify here.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted, one-way digest of plain. The
// plaintext is never stored or logged.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches digest. The comparison
// is constant-time with respect to the secret by construction.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
