package domain

// Default settings values.
const (
	// DefaultMaxImportBytes bounds decode input (10 MiB).
	DefaultMaxImportBytes int64 = 10 << 20

	// DefaultWatchRate is the number of inbox files imported per second.
	DefaultWatchRate = 2
)

// Settings holds user-configurable interchange behaviour.
type Settings struct {
	// IncludePhotos is the default for exports that do not say otherwise.
	IncludePhotos bool

	// OutputDir is where exported documents are written. Empty means
	// the current directory.
	OutputDir string

	// MaxImportBytes rejects larger import payloads before decoding.
	MaxImportBytes int64

	// WatchDir is the inbox directory scanned by the watcher.
	WatchDir string

	// WatchRate throttles inbox imports (files per second).
	WatchRate int
}

// DefaultSettings returns settings used when no configuration exists.
func DefaultSettings() Settings {
	return Settings{
		IncludePhotos:  true,
		MaxImportBytes: DefaultMaxImportBytes,
		WatchRate:      DefaultWatchRate,
	}
}
