package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/tui"
)

type options struct {
	configPath string
	setup      bool
	logFile    string

	player1 string
	player2 string
	height  int
	width   int
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: connect4 [flags]\n\nPlay Connect Four in the terminal. Both players share the keyboard.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	defaults := domain.DefaultSettings()
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML game settings file")
	flag.BoolVar(&opts.setup, "setup", false, "choose colors and board size interactively")
	flag.StringVar(&opts.logFile, "log", "", "write game logs to this file (default: discard)")
	flag.StringVar(&opts.player1, "p1", defaults.Player1Color, "player 1 color")
	flag.StringVar(&opts.player2, "p2", defaults.Player2Color, "player 2 color")
	flag.IntVar(&opts.height, "height", defaults.Height, "board height (rows)")
	flag.IntVar(&opts.width, "width", defaults.Width, "board width (columns)")
	flag.Parse()

	if err := run(opts, explicitFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func run(opts options, explicit map[string]bool) error {
	// The board owns the terminal; log lines would tear the display.
	if opts.logFile != "" {
		f, err := tea.LogToFile(opts.logFile, "connect4")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	settings, err := resolveSettings(opts, explicit)
	if err != nil {
		return err
	}

	if opts.setup {
		settings, err = runSetup(settings)
		if err != nil {
			return err
		}
	}

	model, err := tui.New(settings)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model).Run()
	return err
}

// resolveSettings layers defaults, the settings file and explicitly set
// flags, in that order.
func resolveSettings(opts options, explicit map[string]bool) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if opts.configPath != "" {
		loaded, err := config.LoadGameSettings(opts.configPath)
		if err != nil {
			return domain.Settings{}, err
		}
		settings = loaded
	}

	if explicit["p1"] {
		settings.Player1Color = opts.player1
	}
	if explicit["p2"] {
		settings.Player2Color = opts.player2
	}
	if explicit["height"] {
		settings.Height = opts.height
	}
	if explicit["width"] {
		settings.Width = opts.width
	}

	settings = settings.Normalized()
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
