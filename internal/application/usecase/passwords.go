package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-api/internal/domain"
)

// BcryptCost costo de hash de contraseñas.
const BcryptCost = 12

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 6

// HashPassword valida el largo y devuelve el hash bcrypt.
func HashPassword(plain string) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara la contraseña con su hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
