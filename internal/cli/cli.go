package cli

import (
	"fmt"
	"strings"
)

type Options struct {
	ShowHelp       bool
	ConfigPath     string
	Dictionaries   []string
	UserDictionary string
	Mode           string
	Output         string
	ReplayPath     string
	LogLevel       string
}

const (
	OutputTerminal = "terminal"
	OutputX11      = "x11"
)

func Parse(args []string) (Options, error) {
	opts := Options{Output: OutputTerminal}
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			opts.ShowHelp = true
		case hasOption(arg, "--config"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ConfigPath = value
			i = next
		case hasOption(arg, "--dictionary"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.Dictionaries = append(opts.Dictionaries, splitList(value)...)
			i = next
		case hasOption(arg, "--user-dictionary"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.UserDictionary = value
			i = next
		case hasOption(arg, "--mode"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.Mode = value
			i = next
		case hasOption(arg, "--output"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			switch value {
			case OutputTerminal, OutputX11:
				opts.Output = value
			default:
				return Options{}, fmt.Errorf("unknown output %q (want %s or %s)", value, OutputTerminal, OutputX11)
			}
			i = next
		case hasOption(arg, "--replay"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ReplayPath = value
			i = next
		case hasOption(arg, "--log-level"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.LogLevel = value
			i = next
		default:
			return Options{}, fmt.Errorf("unknown option: %s", arg)
		}
	}
	return opts, nil
}

// hasOption matches "--name" and "--name=value" but not "--name-other".
func hasOption(arg, name string) bool {
	return arg == name || strings.HasPrefix(arg, name+"=")
}

func extractValue(current string, index int, args []string) (string, int, error) {
	if eq := strings.IndexRune(current, '='); eq >= 0 {
		return current[eq+1:], index, nil
	}
	if index+1 >= len(args) {
		return "", index, fmt.Errorf("option %s requires a value", current)
	}
	return args[index+1], index + 1, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func Usage() string {
	return `kanafe - SKK style kana-kanji input
Usage: kanafe [options]

Options:
  --config PATH            Path to kanafe.ini (default: ./kanafe.ini if present)
  --dictionary LIST        Comma-separated system dictionaries (repeatable, added to kanafe.ini paths)
  --user-dictionary PATH   Writable user dictionary (default: ~/.kanafe-jisyo)
  --mode NAME              Initial input mode: hiragana, katakana, hankaku, eisu, direct
  --output NAME            Where committed text goes: terminal (default) or x11
  --replay PATH            Feed keys from a file ("-" for stdin) instead of the keyboard
  --log-level LEVEL        debug, info, warn or error
  -h, --help               Show this help
`
}
