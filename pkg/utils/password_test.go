package utils

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_UsesCost10(t *testing.T) {
	h, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h == "pw123" {
		t.Fatalf("password stored in clear")
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != PasswordCost {
		t.Fatalf("expected cost %d, got %d", PasswordCost, cost)
	}
}

func TestCheckPassword(t *testing.T) {
	h, _ := HashPassword("pw123")

	ok, err := CheckPassword("pw123", h)
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	ok, err = CheckPassword("wrong", h)
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got %v %v", ok, err)
	}
	if _, err := CheckPassword("pw123", "not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestHashPassword_RejectsOverlongInput(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Fatalf("72 bytes must be accepted: %v", err)
	}
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}
