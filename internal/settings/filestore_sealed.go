// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"fmt"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/metrics"
)

// SealedFileStore encrypts SECRET_STRING values before they reach the
// wrapped store and decrypts them on read. Plaintext secrets already in the
// file are accepted and sealed on the next write.
type SealedFileStore struct {
	inner    FileStore
	cipher   *SecretCipher
	registry *Registry
}

// NewSealedFileStore wraps inner.
func NewSealedFileStore(inner FileStore, c *SecretCipher, registry *Registry) *SealedFileStore {
	return &SealedFileStore{inner: inner, cipher: c, registry: registry}
}

// Path returns the wrapped store's location.
func (s *SealedFileStore) Path() string {
	return s.inner.Path()
}

// Read returns the persisted map with secrets decrypted. A secret that
// cannot be decrypted is dropped and logged.
func (s *SealedFileStore) Read() (EnvMap, error) {
	m, err := s.inner.Read()
	if err != nil {
		return nil, err
	}

	for key, v := range m {
		if v == nil || !Sealed(*v) {
			continue
		}
		plain, err := s.cipher.Open(*v)
		if err != nil {
			logging.Error().Err(err).Str("key", key).Str("path", s.Path()).
				Msg("Cannot decrypt settings file value, ignoring it")
			metrics.SettingsSourceErrors.WithLabelValues(string(SourceSettingsFile)).Inc()
			delete(m, key)
			continue
		}
		m[key] = Str(plain)
	}
	return m, nil
}

// Write seals every non-empty secret and writes the result.
func (s *SealedFileStore) Write(m EnvMap) error {
	out := make(EnvMap, len(m))
	for key, v := range m {
		def, ok := s.registry.Lookup(key)
		if v == nil || *v == "" || !ok || !def.Secret() {
			out[key] = v
			continue
		}
		sealed, err := s.cipher.Seal(*v)
		if err != nil {
			return fmt.Errorf("seal %s: %w", key, err)
		}
		out[key] = Str(sealed)
	}
	return s.inner.Write(out)
}
