package config

type LogConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// LogHandler selects the slog handler: "default" (tint, colorized) or
	// "json".
	LogHandler string `json:"logHandler,omitempty"`
}

func NewLogConfig() *LogConfig {
	return &LogConfig{
		LogLevel:   "info",
		LogHandler: "default",
	}
}
