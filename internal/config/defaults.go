package config

// Default returns the configuration used for every key missing from the
// config file
func Default() Config {
	return Config{
		Core: Core{
			VersionScheme: "timestamp",
			Delete: Delete{
				Verbose:          false,
				AllowCrossDevice: true,
			},
			Restore: Restore{
				Verbose:     false,
				Overwrite:   false,
				OnAmbiguous: OnAmbiguousAll,
			},
			Empty: Empty{
				Confirm: false,
			},
		},
		UI: UI{
			Unicode:    true,
			Colors:     true,
			DateFormat: DateRelative,
		},
		List: List{
			Include: IncludeConfig{},
			Exclude: ExcludeConfig{
				Files: []string{
					// In macOS, .DS_Store is a file that stores custom attributes of its
					// containing folder, such as folder view options, icon positions,
					// and other visual information
					".DS_Store",
				},
				Patterns: []string{},
				Globs:    []string{},
			},
		},
		Logging: Logging{
			Enabled: true,
			Level:   "info",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
