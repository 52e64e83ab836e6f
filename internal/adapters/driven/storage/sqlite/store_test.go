package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testGraph(id, name string) *domain.ProjectGraph {
	loss := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	taken := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	created := time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)
	return &domain.ProjectGraph{
		Project: domain.Project{
			ID:           id,
			Name:         name,
			ClaimNumber:  "CLM-" + id,
			PolicyNumber: "POL-9",
			DateOfLoss:   &loss,
			Insured:      domain.Contact{Name: "Jane Smith", Phone: "555-0100", Email: "jane@example.com"},
			Adjuster:     domain.Contact{Name: "Al Adjuster"},
			Address:      domain.Address{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"},
			Total:        130,
			CreatedAt:    created,
			ModifiedAt:   created,
		},
		Levels: []domain.Level{
			{ID: id + "-l1", Name: "Main Floor", Label: "Main", Position: 0},
			{ID: id + "-l2", Name: "Basement", Position: 1},
		},
		Rooms: []domain.Room{
			{ID: id + "-r1", LevelID: domain.StringPtr(id + "-l1"), Name: "Kitchen", Category: "Kitchen",
				Dimensions: domain.Dimensions{SquareFeet: 120, PerimeterLF: 44, WallSF: 352, CeilingSF: 120, HeightIn: 96}},
			{ID: id + "-r2", Name: "Shed"},
		},
		LineItems: []domain.LineItem{
			{ID: id + "-i1", RoomID: domain.StringPtr(id + "-r1"), Selector: "DRY1/2", Description: "Drywall",
				Quantity: 10, Unit: "SF", UnitPrice: 3, Total: 30, Category: "DRY"},
			{ID: id + "-i2", Selector: "CLN", Total: 100},
		},
		Photos: []domain.Photo{
			{ID: id + "-p1", RoomID: domain.StringPtr(id + "-r1"), Filename: "kitchen.jpg", Type: "image/jpeg",
				Caption: "Water line", TakenAt: &taken, URL: "https://example.com/k.jpg"},
		},
	}
}

// ==================== Store ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "estix.db"), store.Path())
	assert.FileExists(t, store.Path())
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	for _, table := range []string{"projects", "levels", "rooms", "line_items", "photos", "exports"} {
		var exists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, 1, exists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenSkipsApplied(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.ProjectStore().SaveGraph(context.Background(), testGraph("p1", "Smith")))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	_, err = second.ProjectStore().GetGraph(context.Background(), "p1")
	assert.NoError(t, err)
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store := setupTestStore(t)

	var enabled int
	require.NoError(t, store.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

func TestStore_InterfaceGetters(t *testing.T) {
	store := setupTestStore(t)
	assert.NotNil(t, store.ProjectStore())
	assert.NotNil(t, store.ExportStore())
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".estix", "data", "estix.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}
