// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	secretSalt = "nmsconsole-settings-file"
	secretInfo = "secret-setting-v1"

	// SealedPrefix marks a settings file value as encrypted.
	SealedPrefix = "enc:v1:"

	aesKeySize   = 32
	gcmNonceSize = 12
)

var (
	// ErrEmptyKey is returned when the settings key is empty.
	ErrEmptyKey = errors.New("settings encryption key cannot be empty")

	// ErrDecryptionFailed is returned for tampered values or a wrong key.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or authentication tag")

	// ErrInvalidCiphertext is returned when a sealed value is malformed.
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
)

// SecretCipher seals SECRET_STRING values with AES-256-GCM. The key is
// derived from an operator passphrase with HKDF-SHA256.
type SecretCipher struct {
	aead cipher.AEAD
}

// NewSecretCipher derives a cipher from passphrase.
func NewSecretCipher(passphrase string) (*SecretCipher, error) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}

	key := make([]byte, aesKeySize)
	r := hkdf.New(sha256.New, []byte(passphrase), []byte(secretSalt), []byte(secretInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &SecretCipher{aead: gcm}, nil
}

// Seal encrypts plaintext and returns SealedPrefix followed by
// base64(nonce || ciphertext || tag).
func (c *SecretCipher) Seal(plaintext string) (string, error) {
	nonce := make([]byte, gcmNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return SealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (c *SecretCipher) Open(value string) (string, error) {
	encoded, ok := strings.CutPrefix(value, SealedPrefix)
	if !ok {
		return "", ErrInvalidCiphertext
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode failed: %s", ErrInvalidCiphertext, err.Error())
	}
	if len(data) < gcmNonceSize+c.aead.Overhead() {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := c.aead.Open(nil, data[:gcmNonceSize], data[gcmNonceSize:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// Sealed reports whether value carries the encryption marker.
func Sealed(value string) bool {
	return strings.HasPrefix(value, SealedPrefix)
}
