package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt digest of plain using the given cost. The
// digest embeds its own salt and parameters, so verification needs no
// external state.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt digest and a plain password in constant
// time relative to match/mismatch.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
