package tokenstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	service = "pactlens"
	key     = "token"
)

// ErrNotFound is returned when no credential is stored.
var ErrNotFound = errors.New("no stored credential")

// Store persists the active credential across process restarts.
type Store interface {
	Save(token string) error
	Load() (string, error)
	Delete() error
}

// Keyring stores the credential in the OS keychain/credential manager.
type Keyring struct{}

// Save persists the credential
func (Keyring) Save(token string) error {
	if err := keyring.Set(service, key, token); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// Load retrieves the stored credential, or ErrNotFound if none exists.
func (Keyring) Load() (string, error) {
	token, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return token, nil
}

// Delete removes the stored credential. Deleting an absent credential is not
// an error.
func (Keyring) Delete() error {
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

// Memory is an in-memory Store for tests.
type Memory struct {
	mu    sync.Mutex
	token string
	set   bool
}

func (m *Memory) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *Memory) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrNotFound
	}
	return m.token, nil
}

func (m *Memory) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
