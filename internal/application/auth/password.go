package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// HashPassword hashea con bcrypt (costo por defecto).
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifica la contraseña del usuario. Los usuarios restaurados de respaldos antiguos
// solo tienen Password en texto plano; en ese caso needsUpgrade indica que hay que guardar el hash.
func CheckPassword(u *entity.User, plain string) (ok, needsUpgrade bool) {
	if u.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil, false
	}
	if u.Password == "" {
		return false, false
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(plain)) == 1 {
		return true, true
	}
	return false, false
}
