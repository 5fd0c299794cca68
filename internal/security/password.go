package security

import (
	"golang.org/x/crypto/bcrypt"

	"studentgigs/internal/common"
)

const MinPasswordLength = 8

func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", common.NewValidationError("password too short", map[string]string{"password": "password must be at least 8 characters"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
