package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

// User is a static directory entry. Passwords are stored and compared in
// plaintext — an inherited weakness kept for parity with the source system.
type User struct {
	Email    string
	Password string
}
