package config

const (
	defaultConfigPath   = "~/.config/subclean/config.toml"
	projectConfigName   = "subclean.toml"
	defaultMaxPasses    = 5
	defaultConvergence  = ConvergenceCount
	defaultLogFormat    = "console"
	defaultLogLevel     = "warn"
	defaultHistoryPath  = "~/.local/share/subclean/history.db"
	logLevelEnvironment = "SUBCLEAN_LOG_LEVEL"
)

// Convergence modes accepted by cleaning.convergence.
const (
	ConvergenceCount   = "count"
	ConvergenceContent = "content"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Cleaning: Cleaning{
			MaxPasses:   defaultMaxPasses,
			Convergence: defaultConvergence,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Path: defaultHistoryPath,
		},
	}
}
