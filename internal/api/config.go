package api

// Config holds server settings, loaded from a TOML file by the serve
// command.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// Workdir is where generator job directories are created.
	Workdir string `toml:"workdir"`

	// CacheDir enables the file cache when set. Ignored when RedisURL is set.
	CacheDir string `toml:"cache_dir"`

	// RedisURL enables the redis cache when set, e.g. "redis://localhost:6379/0".
	RedisURL string `toml:"redis_url"`

	// GeneratorBin overrides the floogen binary path.
	GeneratorBin string `toml:"generator_bin"`

	// GenerateTimeoutSeconds bounds a single generator run.
	GenerateTimeoutSeconds int `toml:"generate_timeout_seconds"`
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		Addr:                   ":8080",
		Workdir:                "jobs",
		GenerateTimeoutSeconds: 300,
	}
}
