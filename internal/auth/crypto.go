package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"genovault/internal/constants"
)

// HashPassword derives a PBKDF2-SHA512 key from the password with a fresh
// random salt. The stored record is "saltHex:keyHex".
func HashPassword(password string) (string, error) {
	salt := make([]byte, constants.AuthPBKDF2SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, constants.AuthPBKDF2Iterations, constants.AuthPBKDF2KeyBytes, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword checks a plaintext password against a stored "saltHex:keyHex"
// record using a constant-time comparison. A malformed record verifies as
// false, never as an error the caller might mishandle.
func VerifyPassword(password, record string) bool {
	salt, key, ok := parsePasswordRecord(record)
	if !ok {
		return false
	}

	derived := pbkdf2.Key([]byte(password), salt, constants.AuthPBKDF2Iterations, len(key), sha512.New)
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// parsePasswordRecord splits and decodes a stored password record.
func parsePasswordRecord(record string) (salt, key []byte, ok bool) {
	parts := strings.SplitN(record, ":", 2)
	if len(parts) != 2 {
		return nil, nil, false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return nil, nil, false
	}
	key, err = hex.DecodeString(parts[1])
	if err != nil || len(key) == 0 {
		return nil, nil, false
	}
	return salt, key, true
}

// GeneratePassword creates a cryptographically secure random password.
// Uses a mix of lowercase, uppercase, digits, and special characters.
func GeneratePassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	length := constants.AuthPasswordGenLength

	password := make([]byte, length)
	charsetLen := big.NewInt(int64(len(charset)))

	for i := range password {
		idx, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		password[i] = charset[idx.Int64()]
	}

	return string(password), nil
}
