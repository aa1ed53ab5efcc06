package model

import "errors"

var (
	// ErrNotFound marks a missing row: unknown user, deleted account,
	// update target that no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken marks a registration conflict on the email column.
	ErrEmailTaken = errors.New("email already in use")
	// ErrNicknameTaken marks a conflict on the nickname column.
	ErrNicknameTaken = errors.New("nickname already in use")
	// ErrWrongPassword marks a login attempt with a bad password,
	// distinct from the account not existing at all.
	ErrWrongPassword = errors.New("wrong password")
	// ErrTokenExpired marks a token past its validity window.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed marks a token with a bad signature or shape.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrForbidden marks an authenticated caller without the required role.
	ErrForbidden = errors.New("forbidden")
)
