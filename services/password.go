package services

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordChecker stores and compares account passwords
type PasswordChecker interface {
	Hash(plain string) (string, error)
	Matches(stored, plain string) bool
}

// PlainPasswords keeps passwords as entered and compares them verbatim.
// This mirrors how existing accounts are stored; prefer BcryptPasswords for new deployments.
type PlainPasswords struct{}

func (PlainPasswords) Hash(plain string) (string, error) { return plain, nil }

func (PlainPasswords) Matches(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(hash), err
}

func (BcryptPasswords) Matches(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// NewPasswordChecker picks the checker for PASSWORD_MODE
func NewPasswordChecker(mode string) (PasswordChecker, error) {
	switch mode {
	case "", "plain":
		return PlainPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}
