package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"genovault/internal/constants"
)

func TestHashPassword(t *testing.T) {
	password := "securePassword123!"

	record, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if record == "" {
		t.Fatal("HashPassword returned empty record")
	}
	if record == password {
		t.Fatal("HashPassword returned plaintext password")
	}

	parts := strings.SplitN(record, ":", 2)
	if len(parts) != 2 {
		t.Fatalf("expected salt:key record, got: %s", record)
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("salt is not hex: %v", err)
	}
	if len(salt) != constants.AuthPBKDF2SaltBytes {
		t.Errorf("expected %d-byte salt, got %d", constants.AuthPBKDF2SaltBytes, len(salt))
	}

	key, err := hex.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("key is not hex: %v", err)
	}
	if len(key) != constants.AuthPBKDF2KeyBytes {
		t.Errorf("expected %d-byte key, got %d", constants.AuthPBKDF2KeyBytes, len(key))
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	record1, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	record2, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if record1 == record2 {
		t.Fatal("two hashes of the same password share a salt")
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "securePassword123!"

	record, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !VerifyPassword(password, record) {
		t.Fatal("VerifyPassword failed for correct password")
	}
	if VerifyPassword("wrongPassword", record) {
		t.Fatal("VerifyPassword succeeded for wrong password")
	}
}

func TestVerifyPasswordMalformedRecord(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"empty", ""},
		{"no separator", "abcdef0123456789"},
		{"non-hex salt", "zzzz:abcdef"},
		{"non-hex key", "abcdef:zzzz"},
		{"empty salt", ":abcdef"},
		{"empty key", "abcdef:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword("anything", tt.record) {
				t.Fatal("malformed record verified as valid")
			}
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword()
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}

	if len(password) != constants.AuthPasswordGenLength {
		t.Errorf("expected %d-char password, got %d", constants.AuthPasswordGenLength, len(password))
	}

	password2, err := GeneratePassword()
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if password == password2 {
		t.Fatal("GeneratePassword is not random")
	}
}
