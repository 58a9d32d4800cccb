package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/core"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario"
	"github.com/vovakirdan/tui-drmario/internal/platform/tui"
	"github.com/vovakirdan/tui-drmario/internal/storage"
)

var (
	flagDifficulty string
	flagFallSpeed  string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run a session in the terminal",
	Long: `Start a Dr. Mario session in the terminal.

Controls:
  P/Space    - Pause
  N          - Step one frame while paused
  S          - Scramble falling pills
  C          - Capture a snapshot
  Left/U     - Rewind
  L          - Restore latest snapshot
  +/-        - Faster / slower fall
  X          - Clear snapshot history
  R          - Restart from the seed
  W          - Save snapshot to the database
  Tab        - Browse saved snapshots
  Ctrl+S     - Write the board as PNG
  Q/Ctrl+C   - Quit

Difficulty options:
  easy, normal, hard - Preset virus count and fall speed
  fixed              - Use the config values unchanged

Examples:
  drmario play
  drmario play --seed 255
  drmario play --difficulty hard
  drmario play --fall-speed 10fps
  drmario play --config ./drmario.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagFallSpeed, "fall-speed", "", "Override frames per one-cell fall")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config into the running session on change")
}

func runPlay(cmd *cobra.Command, args []string) {
	seed, err := seedFlag()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagWatch && flagConfig == "" {
		fmt.Fprintln(os.Stderr, "Error: --watch requires --config")
		os.Exit(1)
	}

	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		logger.Warn("config problem, continuing with defaults", "error", err)
	}
	if flagFallSpeed != "" {
		fs, err := config.ParseFallSpeed(flagFallSpeed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --fall-speed %q: %v\n", flagFallSpeed, err)
			os.Exit(1)
		}
		cfg.Pills.FallSpeed = fs
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	game := drmario.NewWithConfig(cfg)

	// Open snapshot storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open snapshot database", "error", err)
		// Continue without storage - the session still works
		store = nil
	}

	opts := tui.Options{Logger: logger}
	if flagWatch {
		opts.WatchPath = flagConfig
	}
	runErr := tui.Run(game, store, rc, opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
