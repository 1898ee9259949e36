package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ErlanBelekov/todo-service/internal/domain"
	"github.com/ErlanBelekov/todo-service/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
)

// ---- fakes ----

type fakeDirectory struct {
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
}

func (d *fakeDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return d.findByEmail(ctx, email)
}

// ---- helpers ----

const testJWTKey = "test-jwt-secret-at-least-32-chars!!"

var testUser = &domain.User{Email: "test@example.com", Password: "password123"}

func directoryWith(u *domain.User) *fakeDirectory {
	return &fakeDirectory{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			if email == u.Email {
				return u, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
}

func newAuthUsecase(d *fakeDirectory) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(d, []byte(testJWTKey), time.Hour)
}

// ---- Login ----

func TestLogin_ExactMatch_ReturnsSignedJWT(t *testing.T) {
	signed, err := newAuthUsecase(directoryWith(testUser)).Login(context.Background(), testUser.Email, testUser.Password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, parseErr := jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method")
		}
		return []byte(testJWTKey), nil
	})
	if parseErr != nil || !token.Valid {
		t.Fatalf("returned JWT is invalid: %v", parseErr)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("could not cast claims")
	}
	if claims["sub"] != testUser.Email {
		t.Errorf("sub = %v, want %q", claims["sub"], testUser.Email)
	}
	if claims["email"] != testUser.Email {
		t.Errorf("email = %v, want %q", claims["email"], testUser.Email)
	}
}

func TestLogin_TokenExpiresInAboutAnHour(t *testing.T) {
	signed, err := newAuthUsecase(directoryWith(testUser)).Login(context.Background(), testUser.Email, testUser.Password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, _ := jwt.Parse(signed, func(_ *jwt.Token) (any, error) {
		return []byte(testJWTKey), nil
	})
	claims := token.Claims.(jwt.MapClaims)

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("exp claim: %v", err)
	}
	lifetime := time.Until(exp.Time)
	if lifetime < 59*time.Minute || lifetime > 61*time.Minute {
		t.Errorf("token lifetime = %v, want ~1h", lifetime)
	}
}

func TestLogin_WrongPassword_ReturnsInvalidCredentials(t *testing.T) {
	_, err := newAuthUsecase(directoryWith(testUser)).Login(context.Background(), testUser.Email, "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_PasswordComparisonIsExact(t *testing.T) {
	cases := []string{"password123 ", " password123", "PASSWORD123", "password12"}
	uc := newAuthUsecase(directoryWith(testUser))

	for _, pw := range cases {
		if _, err := uc.Login(context.Background(), testUser.Email, pw); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("password %q: want ErrInvalidCredentials, got %v", pw, err)
		}
	}
}

func TestLogin_UnknownEmail_ReturnsInvalidCredentials(t *testing.T) {
	_, err := newAuthUsecase(directoryWith(testUser)).Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_DirectoryFailure_MapsToInvalidCredentials(t *testing.T) {
	d := &fakeDirectory{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, errors.New("directory unavailable")
		},
	}

	_, err := newAuthUsecase(d).Login(context.Background(), testUser.Email, testUser.Password)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}
