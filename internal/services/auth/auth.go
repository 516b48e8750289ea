// Package auth выдаёт сессионные токены после успешного входа и проверяет их.
package auth

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/vtv-streaming/internal/lib/jwt"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
)

// Authenticator проверяет учётные данные аккаунта.
type Authenticator interface {
	Authenticate(ctx context.Context, email, credential string) (*models.Account, error)
}

// AuthService отвечает за вход и валидацию JWT.
type AuthService struct {
	accounts Authenticator
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(accounts Authenticator, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		accounts: accounts,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет email и пароль и выпускает токен.
// Ошибки Authenticate возвращаются обёрнутыми, чтобы их можно было разобрать через errors.Is.
func (s *AuthService) Login(ctx context.Context, email, credential string) (string, *models.Account, error) {
	const op = "auth.Login"

	acc, err := s.accounts.Authenticate(ctx, email, credential)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateToken(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, acc, nil
}

// ValidateToken проверяет JWT и возвращает данные сессии.
func (s *AuthService) ValidateToken(token string) (*jwt.Claims, error) {
	const op = "auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}
