package config

import "flag"

// RegisterFlags attaches the shared overrides to a flag set so both the
// bare TUI invocation and every subcommand accept them.
func RegisterFlags(flagSet *flag.FlagSet, base *Config) {
	flagSet.StringVar(&base.APIBaseURL, "api-url", base.APIBaseURL, "Backend API base URL")
	flagSet.StringVar(&base.LogLevel, "log-level", base.LogLevel, "Log level (debug, info, warn, error)")
	flagSet.StringVar(&base.LogFile, "log-file", base.LogFile, "Log file path")
}
