package auth

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// GenerateConfirmationCode returns a URL-safe random code of the given
// byte length.
func GenerateConfirmationCode(numBytes int) (string, error) {
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashConfirmationCode creates a bcrypt hash from the given plaintext code.
// Codes are only ever stored hashed; the plaintext leaves the process in
// the confirmation email.
func HashConfirmationCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyConfirmationCode checks the provided plaintext code against the
// stored bcrypt hash.
func VerifyConfirmationCode(hashedCode, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(providedCode))
}
