package types

import (
	"path/filepath"
	"strings"
)

// Fixed file names of the two persisted stores inside the data directory.
const (
	CSVFileName  = "pantry.csv"
	JSONFileName = "pantry.json"
)

// Log settings accepted by Config.Validate. Empty values mean the default.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

var knownLogLevels = map[string]bool{
	"":            true,
	LogLevelDebug: true,
	LogLevelInfo:  true,
	LogLevelWarn:  true,
	LogLevelError: true,
}

var knownLogFormats = map[string]bool{
	"":            true,
	LogFormatText: true,
	LogFormatJSON: true,
}

// Config holds the resolved settings used to open a pantry.
type Config struct {
	DataDir   string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	LogLevel  string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
}

// Validate checks that the Config is well-formed. Log settings are matched
// without regard to case. An empty DataDir is valid and means the current
// directory.
func (c Config) Validate() error {
	if !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	if !knownLogFormats[strings.ToLower(c.LogFormat)] {
		return ErrLogFormatUnknown
	}
	return nil
}

func (c Config) dataDir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}

// CSVPath returns the location of pantry.csv.
func (c Config) CSVPath() string {
	return filepath.Join(c.dataDir(), CSVFileName)
}

// JSONPath returns the location of pantry.json.
func (c Config) JSONPath() string {
	return filepath.Join(c.dataDir(), JSONFileName)
}
