package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"kanafe/internal/cli"
	"kanafe/internal/config"
	"kanafe/internal/dictionary"
	"kanafe/internal/emitter"
	"kanafe/internal/engine"
	"kanafe/internal/logging"
	"kanafe/internal/preedit"
	"kanafe/internal/romaji"
	"kanafe/internal/types"
)

func main() {
	if err := run(os.Args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "kanafe: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := cli.Parse(args)
	if err != nil {
		return err
	}
	if opts.ShowHelp {
		fmt.Fprint(stdout, cli.Usage())
		return nil
	}

	cfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := applyOptions(&cfg, opts); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LoggingConfig())
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.WithComponent("main")

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}

	table := romaji.DefaultTable()
	if err := romaji.ApplyCustomRules(table, cfg.Romaji); err != nil {
		return fmt.Errorf("romaji rules: %w", err)
	}

	renderer := preedit.NewRenderer(os.Getenv("RUNEWIDTH_EASTASIAN") == "1")
	var (
		output emitter.Output
		screen *preedit.Terminal
		focus  *emitter.Focus
	)
	switch {
	case opts.ReplayPath != "":
		output = emitter.NewWriterOutput(stdout)
	case opts.Output == cli.OutputX11:
		x11, err := emitter.OpenX11()
		if err != nil {
			return err
		}
		defer x11.Close()
		focus, err = emitter.OpenFocus()
		if err != nil {
			return err
		}
		defer focus.Close()
		screen = preedit.NewTerminal(stdout, renderer, terminalWidth(), cfg.Inline, cfg.PageSize)
		routed, err := emitter.NewFocusedOutput(focus, x11, screen)
		if err != nil {
			return err
		}
		output = routed
	default:
		screen = preedit.NewTerminal(stdout, renderer, terminalWidth(), cfg.Inline, cfg.PageSize)
		output = screen
	}

	eng := engine.New(engine.Options{
		Table:       table,
		Dictionary:  store,
		Output:      output,
		Logger:      logger.WithComponent("engine"),
		DefaultMode: cfg.DefaultMode,
	})
	sess := &session{engine: eng, output: output, screen: screen, focus: focus, log: log}

	log.Info("starting",
		slog.String("mode", cfg.DefaultMode.String()),
		slog.Int("dictionaries", len(cfg.Dictionaries)),
		slog.String("output", opts.Output),
	)

	if opts.ReplayPath != "" {
		return replay(sess, opts.ReplayPath, stdin)
	}
	return interactive(sess, store)
}

// applyOptions lets command line flags override the config file.
func applyOptions(cfg *config.Config, opts cli.Options) error {
	if opts.Mode != "" {
		mode, err := types.ParseInputMode(opts.Mode)
		if err != nil {
			return err
		}
		cfg.DefaultMode = mode
	}
	for _, path := range opts.Dictionaries {
		cfg.Dictionaries = append(cfg.Dictionaries, config.ExpandHome(path))
	}
	if opts.UserDictionary != "" {
		cfg.UserDictionary = config.ExpandHome(opts.UserDictionary)
	}
	if opts.LogLevel != "" {
		level, err := logging.ParseLevel(opts.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	return nil
}

// openStore loads the user dictionary and every system dictionary. A
// system dictionary that cannot be read is skipped with a warning.
func openStore(cfg config.Config, log *slog.Logger) (*dictionary.Store, error) {
	var user *dictionary.Dict
	if cfg.UserDictionary != "" {
		dict, err := dictionary.LoadUser(cfg.UserDictionary)
		if err != nil {
			return nil, err
		}
		user = dict
		log.Debug("user dictionary loaded", slog.String("path", cfg.UserDictionary), slog.Int("readings", dict.Len()))
	}

	system := make([]*dictionary.Dict, 0, len(cfg.Dictionaries))
	for _, path := range cfg.Dictionaries {
		if path == cfg.UserDictionary {
			continue
		}
		dict, err := dictionary.Load(path, cfg.Encoding)
		if err != nil {
			log.Warn("skipping dictionary", slog.String("path", path), slog.Any("error", err))
			continue
		}
		log.Debug("dictionary loaded", slog.String("path", path), slog.Int("readings", dict.Len()))
		system = append(system, dict)
	}
	return dictionary.NewStore(user, cfg.UserDictionary, system...), nil
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	if width, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && width > 0 {
		return width
	}
	return 80
}

type lineEditor interface {
	Backspace()
}

type session struct {
	engine *engine.Engine
	output emitter.Output
	// screen is nil when replaying.
	screen *preedit.Terminal
	// focus is set for X11 output and anchors the candidate panel.
	focus      *emitter.Focus
	lastWindow uint32
	log        *slog.Logger
}

func (s *session) trackFocus() {
	if s.focus == nil {
		return
	}
	window, err := s.focus.Active()
	if err != nil {
		return
	}
	if window.ID != s.lastWindow {
		s.lastWindow = window.ID
		s.log.Debug("focus changed",
			slog.Any("class", window.Class),
			slog.Bool("terminal", window.Terminal),
		)
	}
	s.engine.SetCursorPosition(window.Rect)
}

// handle processes one key. It reports whether the session should end.
func (s *session) handle(ev keyEvent) (bool, error) {
	s.trackFocus()
	act, cmd := mapKey(ev, s.engine.State())
	switch act {
	case actionQuit:
		return true, nil
	case actionCommand:
		s.engine.Apply(cmd)
	case actionNewline:
		if err := s.output.SendText("\n"); err != nil {
			return false, err
		}
	case actionBackspace:
		if editor, ok := s.output.(lineEditor); ok {
			editor.Backspace()
		}
	}
	if s.screen != nil {
		return false, s.screen.Draw(s.engine.State())
	}
	return false, nil
}

func interactive(s *session, store *dictionary.Store) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan struct{}
	if path := store.UserPath(); path != "" {
		watcher, err := dictionary.Watch(ctx, path, dictionary.DefaultDebounce)
		if err != nil {
			s.log.Warn("not watching user dictionary", slog.String("path", path), slog.Any("error", err))
		} else {
			defer watcher.Close()
			changes = watcher.Changes()
		}
	}

	keys, err := keyboard.GetKeys(16)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer func() { _ = keyboard.Close() }()

	if err := s.screen.Draw(s.engine.State()); err != nil {
		return err
	}
	for {
		select {
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("read key: %w", ev.Err)
			}
			quit, err := s.handle(keyEvent{ch: ev.Rune, key: ev.Key})
			if err != nil {
				s.log.Warn("draw failed", slog.Any("error", err))
			}
			if quit {
				return s.output.SendText("\n")
			}
		case <-changes:
			reloaded, err := store.ReloadUser()
			if err != nil {
				s.log.Warn("user dictionary reload failed", slog.Any("error", err))
			} else if reloaded {
				s.log.Info("user dictionary reloaded", slog.String("path", store.UserPath()))
			}
		}
	}
}

// replay feeds keys from path, or stdin when path is "-". Text still being
// composed when the keys run out is dropped.
func replay(s *session, path string, stdin io.Reader) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read replay: %w", err)
	}

	events, err := parseKeys(string(data))
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	for _, ev := range events {
		quit, err := s.handle(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	if state := s.engine.State(); !idle(state) {
		s.log.Debug("replay ended while composing", slog.String("method", state.InputMethod.Kind.String()))
	}
	return nil
}
