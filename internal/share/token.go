package share

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"genovault/internal/constants"
)

// SharePayload is the plaintext carried inside an encrypted share token.
// The nonce makes every token unique even for the same report.
type SharePayload struct {
	ReportID  string `json:"reportId"`
	PatientID string `json:"patientId"`
	Timestamp int64  `json:"timestamp"`
	Nonce     string `json:"nonce"`
}

// TokenCodec encrypts and decrypts share tokens with AES-256-GCM.
//
// Wire layout before base64url encoding: salt || nonce || tag || ciphertext.
// The 64-byte salt is random padding kept for format compatibility with
// existing tokens; it is not a key-derivation input.
type TokenCodec struct {
	aead cipher.AEAD
}

// NewTokenCodec creates a codec from a 32-byte AES key.
func NewTokenCodec(key []byte) (*TokenCodec, error) {
	if len(key) != constants.ShareEncryptionKeyBytes {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", constants.ShareEncryptionKeyBytes, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &TokenCodec{aead: aead}, nil
}

// Encrypt seals plaintext into a base64url token.
func (c *TokenCodec) Encrypt(plaintext []byte) (string, error) {
	salt := make([]byte, constants.ShareTokenSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, constants.ShareTokenNonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal returns ciphertext||tag; the wire format wants tag before ciphertext
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	tagStart := len(sealed) - constants.ShareTokenTagBytes
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	buf := make([]byte, 0, len(salt)+len(nonce)+len(tag)+len(ciphertext))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, tag...)
	buf = append(buf, ciphertext...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Decrypt opens a base64url token. Returns (nil, false) for anything
// malformed, truncated, or tampered with.
func (c *TokenCodec) Decrypt(token string) ([]byte, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Tolerate padded encodings from other producers
		raw, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return nil, false
		}
	}

	minLen := constants.ShareTokenSaltBytes + constants.ShareTokenNonceBytes + constants.ShareTokenTagBytes
	if len(raw) < minLen {
		return nil, false
	}

	offset := constants.ShareTokenSaltBytes
	nonce := raw[offset : offset+constants.ShareTokenNonceBytes]
	offset += constants.ShareTokenNonceBytes
	tag := raw[offset : offset+constants.ShareTokenTagBytes]
	ciphertext := raw[offset+constants.ShareTokenTagBytes:]

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}

// CreateShareToken encrypts a fresh payload for the given report and patient.
func (c *TokenCodec) CreateShareToken(reportID, patientID string) (string, error) {
	nonce := make([]byte, constants.SharePayloadNonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate payload nonce: %w", err)
	}

	payload := SharePayload{
		ReportID:  reportID,
		PatientID: patientID,
		Timestamp: time.Now().UnixMilli(),
		Nonce:     hex.EncodeToString(nonce),
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal share payload: %w", err)
	}
	return c.Encrypt(plaintext)
}

// ParseShareToken decrypts a token and extracts its payload. Returns
// (nil, false) if the token cannot be decrypted or does not carry a
// well-formed payload.
func (c *TokenCodec) ParseShareToken(token string) (*SharePayload, bool) {
	plaintext, ok := c.Decrypt(token)
	if !ok {
		return nil, false
	}

	var payload SharePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, false
	}
	if payload.ReportID == "" || payload.PatientID == "" {
		return nil, false
	}
	return &payload, true
}
