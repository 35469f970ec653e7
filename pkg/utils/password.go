package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt hash; the plaintext is never
// stored.
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
