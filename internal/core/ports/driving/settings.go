package driving

import "github.com/custodia-labs/estix-cli/internal/core/domain"

// SettingsService manages interchange settings.
type SettingsService interface {
	// Get returns current settings with defaults applied.
	Get() (*domain.Settings, error)

	// Set updates one setting by key, validating its value.
	Set(key, value string) error

	// Keys returns the configurable keys.
	Keys() []string
}
