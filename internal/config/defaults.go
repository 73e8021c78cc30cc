package config

const (
	defaultConfigPath     = "~/.config/archivewit/config.toml"
	defaultDataDir        = "~/.local/share/archivewit"
	defaultLogDir         = "~/.local/share/archivewit/logs"
	defaultDatabaseName   = "archive.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLinkUserAgent  = "archivewit/dev"
	defaultLinkTimeoutSec = 20
)

// Default returns a Config populated with repository defaults. The database
// path is derived from the data directory during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Links: Links{
			UserAgent:      defaultLinkUserAgent,
			TimeoutSeconds: defaultLinkTimeoutSec,
		},
	}
}
