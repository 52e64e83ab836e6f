package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyIncludePhotos  = "export.include_photos"
	KeyOutputDir      = "export.output_dir"
	KeyMaxImportBytes = "import.max_bytes"
	KeyWatchDir       = "watch.dir"
	KeyWatchRate      = "watch.rate"
)

// SettingsService manages interchange settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
// A nil configStore yields defaults and rejects Set.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, falling back to defaults for missing
// or invalid values.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.configStore == nil {
		return &settings, nil
	}

	if v, ok := s.configStore.Get(KeyIncludePhotos); ok {
		if b, ok := v.(bool); ok {
			settings.IncludePhotos = b
		}
	}
	settings.OutputDir = s.configStore.GetString(KeyOutputDir)
	if n := s.configStore.GetInt(KeyMaxImportBytes); n > 0 {
		settings.MaxImportBytes = int64(n)
	}
	settings.WatchDir = s.configStore.GetString(KeyWatchDir)
	if n := s.configStore.GetInt(KeyWatchRate); n > 0 {
		settings.WatchRate = n
	}

	return &settings, nil
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	value = strings.TrimSpace(value)
	var parsed any
	switch key {
	case KeyIncludePhotos:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case KeyMaxImportBytes, KeyWatchRate:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case KeyOutputDir, KeyWatchDir:
		parsed = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the configurable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{KeyIncludePhotos, KeyOutputDir, KeyMaxImportBytes, KeyWatchDir, KeyWatchRate}
	sort.Strings(keys)
	return keys
}
