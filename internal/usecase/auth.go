package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = time.Hour

type AuthUsecase struct {
	users    repository.UserDirectory
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewAuthUsecase(users repository.UserDirectory, jwtKey []byte, tokenTTL time.Duration) *AuthUsecase {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthUsecase{
		users:    users,
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
	}
}

// Login checks the credential pair against the directory (exact email match,
// plaintext password comparison) and returns a signed JWT with the user's
// email as subject. Any mismatch collapses into ErrInvalidCredentials so the
// response never reveals which half was wrong.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	if user.Password != password {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.Email,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
