package trash

import (
	"github.com/babarot/tman/internal/config"
	"github.com/babarot/tman/internal/storage"
)

// AmbiguityPolicy decides what Restore does when a bare name matches
// entries from several origins
type AmbiguityPolicy string

const (
	// RestoreAll restores every matched entry to its own origin
	RestoreAll AmbiguityPolicy = config.OnAmbiguousAll
	// FailOnAmbiguous refuses to restore and asks for an origin
	FailOnAmbiguous AmbiguityPolicy = config.OnAmbiguousFail
)

// Config holds everything the manager needs. It is built by the caller
// from the parsed config file and the resolved paths.
type Config struct {
	// Layout is where trashed versions are stored
	Layout storage.Layout

	// DataDir is the directory holding the index and the storage root.
	// Nothing inside it, and none of its parents, can be deleted.
	DataDir string

	// AllowCrossDevice lets moves fall back to copy and delete
	AllowCrossDevice bool

	// Overwrite lets restore replace existing files
	Overwrite bool

	// OnAmbiguous is the restore policy for names found in several origins
	OnAmbiguous AmbiguityPolicy

	// Filter holds the list exclusions and the inclusion period
	Filter FilterOptions
}

// NewConfig maps the parsed config file onto a manager Config
func NewConfig(cfg config.Config, layout storage.Layout, dataDir string) Config {
	return Config{
		Layout:           layout,
		DataDir:          dataDir,
		AllowCrossDevice: cfg.Core.Delete.AllowCrossDevice,
		Overwrite:        cfg.Core.Restore.Overwrite,
		OnAmbiguous:      AmbiguityPolicy(cfg.Core.Restore.OnAmbiguous),
		Filter: FilterOptions{
			Include: cfg.List.Include,
			Exclude: cfg.List.Exclude,
		},
	}
}
