// Package password хранит секреты аккаунтов в виде bcrypt-хэшей.
//
// Hash создаёт хэш при регистрации и при заполнении начальных данных,
// Compare проверяет введённый пароль или PIN администратора.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, если секрет не совпадает с хэшем.
var ErrMismatch = errors.New("credential mismatch")

const (
	// DefaultCost — стоимость хэширования для рабочего режима.
	DefaultCost = bcrypt.DefaultCost
	// MinCost — минимальная стоимость, годится для тестов.
	MinCost = bcrypt.MinCost
)

// Hash возвращает bcrypt-хэш секрета со стоимостью по умолчанию.
func Hash(secret string) (string, error) {
	return HashWithCost(secret, DefaultCost)
}

// HashWithCost позволяет задать стоимость хэширования (в тестах используется bcrypt.MinCost).
func HashWithCost(secret string, cost int) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает хэш с введённым секретом.
//
// Возвращает ErrMismatch при несовпадении и обёрнутую ошибку bcrypt,
// если сам хэш повреждён.
func Compare(hash, secret string) error {
	const op = "password.Compare"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
