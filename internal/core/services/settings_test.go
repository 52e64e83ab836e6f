package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estix-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

func TestSettingsService_Get_Defaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_NilStore(t *testing.T) {
	settings, err := NewSettingsService(nil).Get()

	require.NoError(t, err)
	assert.True(t, settings.IncludePhotos)
	assert.Equal(t, int64(domain.DefaultMaxImportBytes), settings.MaxImportBytes)
}

func TestSettingsService_Get_FromStore(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		KeyIncludePhotos:  false,
		KeyOutputDir:      "exports",
		KeyMaxImportBytes: int64(4096),
		KeyWatchDir:       "/srv/inbox",
		KeyWatchRate:      int64(7),
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.False(t, settings.IncludePhotos)
	assert.Equal(t, "exports", settings.OutputDir)
	assert.Equal(t, int64(4096), settings.MaxImportBytes)
	assert.Equal(t, "/srv/inbox", settings.WatchDir)
	assert.Equal(t, 7, settings.WatchRate)
}

func TestSettingsService_Get_IgnoresInvalidValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		KeyIncludePhotos:  "yes",
		KeyMaxImportBytes: int64(-1),
		KeyWatchRate:      int64(0),
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.True(t, settings.IncludePhotos)
	assert.Equal(t, int64(domain.DefaultMaxImportBytes), settings.MaxImportBytes)
	assert.Equal(t, domain.DefaultWatchRate, settings.WatchRate)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{KeyIncludePhotos, "false", false},
		{KeyIncludePhotos, " TRUE ", true},
		{KeyMaxImportBytes, "1048576", int64(1048576)},
		{KeyWatchRate, "3", int64(3)},
		{KeyOutputDir, " exports ", "exports"},
		{KeyWatchDir, "/srv/inbox", "/srv/inbox"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			svc := NewSettingsService(store)

			require.NoError(t, svc.Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"non-bool", KeyIncludePhotos, "maybe"},
		{"non-integer", KeyMaxImportBytes, "ten"},
		{"zero", KeyWatchRate, "0"},
		{"negative", KeyMaxImportBytes, "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSettingsService(memory.NewConfigStore())
			err := svc.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Set_NilStore(t *testing.T) {
	err := NewSettingsService(nil).Set(KeyWatchRate, "2")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestSettingsService_RoundTrip(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, svc.Set(KeyMaxImportBytes, "512"))
	require.NoError(t, svc.Set(KeyIncludePhotos, "false"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(512), settings.MaxImportBytes)
	assert.False(t, settings.IncludePhotos)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(nil).Keys()
	assert.Equal(t, []string{
		"export.include_photos",
		"export.output_dir",
		"import.max_bytes",
		"watch.dir",
		"watch.rate",
	}, keys)
}
