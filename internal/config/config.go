package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"kanafe/internal/dictionary"
	"kanafe/internal/logging"
	"kanafe/internal/types"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "kanafe.ini"

const (
	defaultPageSize = 7
	defaultInline   = 3
)

type Config struct {
	DefaultMode types.InputMode

	// PageSize is the number of candidates per page after the inline ones.
	PageSize int
	// Inline is the number of candidates shown one at a time before paging.
	Inline int

	Dictionaries   []string
	Encoding       dictionary.Encoding
	UserDictionary string

	// Romaji holds extra rules, key = "kana" or "kana,remain".
	Romaji map[string]string

	LogLevel  logging.Level
	LogFormat logging.Format
	LogOutput string
	LogFile   string
}

type ConfigError struct {
	msg string
}

func (e ConfigError) Error() string { return e.msg }

func Default() Config {
	return Config{
		DefaultMode:    types.ModeHiragana,
		PageSize:       defaultPageSize,
		Inline:         defaultInline,
		Encoding:       dictionary.EncodingUTF8,
		UserDictionary: defaultUserDictionary(),
		Romaji:         map[string]string{},
		LogLevel:       logging.LevelInfo,
		LogFormat:      logging.FormatText,
		LogOutput:      "file",
		LogFile:        logging.DefaultLogPath(),
	}
}

func defaultUserDictionary() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kanafe-jisyo")
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config: %s is a directory", path)
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	input := file.Section("input")
	if value := input.Key("default_mode").MustString(""); value != "" {
		mode, err := types.ParseInputMode(value)
		if err != nil {
			return cfg, ConfigError{msg: fmt.Sprintf("invalid default_mode in %s: %v", path, err)}
		}
		cfg.DefaultMode = mode
	}

	candidates := file.Section("candidates")
	cfg.PageSize = candidates.Key("page_size").MustInt(cfg.PageSize)
	cfg.Inline = candidates.Key("inline").MustInt(cfg.Inline)
	if cfg.PageSize < 1 {
		return cfg, ConfigError{msg: fmt.Sprintf("page_size in %s must be positive, got %d", path, cfg.PageSize)}
	}
	if cfg.Inline < 0 {
		return cfg, ConfigError{msg: fmt.Sprintf("inline in %s must not be negative, got %d", path, cfg.Inline)}
	}

	dict := file.Section("dictionary")
	for _, p := range splitComma(dict.Key("paths").MustString("")) {
		cfg.Dictionaries = append(cfg.Dictionaries, ExpandHome(p))
	}
	cfg.UserDictionary = ExpandHome(dict.Key("user").MustString(cfg.UserDictionary))
	encoding, err := dictionary.ParseEncoding(dict.Key("encoding").MustString(""))
	if err != nil {
		return cfg, ConfigError{msg: fmt.Sprintf("invalid encoding in %s: %v", path, err)}
	}
	cfg.Encoding = encoding

	if file.HasSection("romaji") {
		for _, key := range file.Section("romaji").Keys() {
			cfg.Romaji[key.Name()] = key.Value()
		}
	}

	log := file.Section("log")
	level, err := logging.ParseLevel(log.Key("level").MustString(logging.LevelString(cfg.LogLevel)))
	if err != nil {
		return cfg, ConfigError{msg: fmt.Sprintf("invalid log level in %s: %v", path, err)}
	}
	cfg.LogLevel = level
	format, err := logging.ParseFormat(log.Key("format").MustString("text"))
	if err != nil {
		return cfg, ConfigError{msg: fmt.Sprintf("invalid log format in %s: %v", path, err)}
	}
	cfg.LogFormat = format
	switch output := strings.ToLower(log.Key("output").MustString(cfg.LogOutput)); output {
	case "stderr", "stdout", "file", "discard":
		cfg.LogOutput = output
	default:
		return cfg, ConfigError{msg: fmt.Sprintf("invalid log output in %s: %s", path, output)}
	}
	cfg.LogFile = ExpandHome(log.Key("file").MustString(cfg.LogFile))

	return cfg, nil
}

// Resolve loads cliPath when set, otherwise kanafe.ini from the working
// directory if it exists.
func Resolve(cliPath string) (Config, error) {
	if cliPath != "" {
		if _, err := os.Stat(cliPath); err != nil {
			return Default(), ConfigError{msg: fmt.Sprintf("failed to open config: %v", err)}
		}
		return Load(cliPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(cwd, DefaultFileName))
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// LoggingConfig converts the [log] section into a logging.Config.
func (c Config) LoggingConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Format = c.LogFormat
	cfg.Output = c.LogOutput
	cfg.FilePath = c.LogFile
	return cfg
}

func splitComma(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
