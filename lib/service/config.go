package service

// Config carries the operational knobs taken from the environment. Backend
// selection and credentials live in config.toml (see the config package);
// the environment never picks the backend.
type Config struct {
	ConfigPath       string `envconfig:"CONFIG_PATH" default:"config.toml"`
	Port             int    `envconfig:"PORT"` // overrides api.port from config.toml
	LogFilePath      string `envconfig:"LOG_FILE_PATH"`
	SentryDSN        string `envconfig:"SENTRY_DSN"`
	SessionKeyPath   string `envconfig:"SESSION_KEY_PATH" default:"session_key.bin"`
	SessionTTL       int    `envconfig:"SESSION_TTL" default:"3600"`         // in seconds
	SessionSweep     int    `envconfig:"SESSION_SWEEP_INTERVAL" default:"300"` // in seconds
	DefaultRateLimit int    `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	BodyLimit        string `envconfig:"BODY_LIMIT" default:"250K"`
}
