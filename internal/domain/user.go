// Package domain contains group-order entities and their validation rules.
// No transport, locking or lifecycle logic here.
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxUserIDLen   = 64
	MaxUsernameLen = 36
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUserIDTooLong   = errors.New("user id too long")
)

// UserID is the persistent identity a client presents on every event.
// It survives reconnects; ConnID does not.
type UserID string

// ConnID identifies one live connection.
type ConnID string

// NewUserID hands out an identity for clients that have none yet.
func NewUserID() UserID {
	return UserID(uuid.NewString())
}

func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

// NormalizeUsername trims the display name and checks its length.
func NormalizeUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUsernameEmpty
	}
	if utf8.RuneCountInString(name) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	return name, nil
}

func (id UserID) Validate() error {
	if len(id) > MaxUserIDLen {
		return ErrUserIDTooLong
	}
	return nil
}
