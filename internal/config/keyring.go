package config

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// Service and key of the OpenAI API key in the OS keyring.
const (
	keyringService = "dialogos"
	keyringAPIKey  = "openai_api_key"
)

// TokenStore abstracts the OS keyring.
type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// tokenStore is swapped in tests.
var tokenStore TokenStore = osKeyring{}

// osKeyring implements TokenStore with github.com/zalando/go-keyring.
type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// LoadAPIKey returns the stored OpenAI API key, or "" when none is stored.
func LoadAPIKey() (string, error) {
	key, err := tokenStore.Get(keyringService, keyringAPIKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return key, nil
}

// SaveAPIKey stores the OpenAI API key in the OS keyring.
func SaveAPIKey(key string) error {
	if key == "" {
		return errors.New("API key is empty")
	}
	return tokenStore.Set(keyringService, keyringAPIKey, key)
}

// DeleteAPIKey removes the stored OpenAI API key. Deleting a missing key is
// not an error.
func DeleteAPIKey() error {
	err := tokenStore.Delete(keyringService, keyringAPIKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
