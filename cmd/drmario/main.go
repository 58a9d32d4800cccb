// drmario is a deterministic Dr. Mario pill engine for the terminal.
//
// Usage:
//
//	drmario list                 - List registered sessions
//	drmario play                 - Run a session in the terminal
//	drmario serve                - Start SSH server for remote sessions
//	drmario api                  - Start the HTTP snapshot inspector
//	drmario snapshots <command>  - Manage stored snapshots
//	drmario placement            - Preview the virus layout for a seed
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set the session seed (leading digits are used)
//	--db <path>        - Set database path (default: ~/.drmario/snapshots.db)
//	--config <path>    - Path to a custom drmario.yaml
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     string
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drmario",
	Short: "Dr. Mario - a deterministic pill engine in your terminal",
	Long: `drmario runs a seeded Dr. Mario board: viruses placed from the seed,
pills falling one frame at a time, and a snapshot history you can rewind,
restore, save and inspect.

Available commands:
  list       - Show registered sessions
  play       - Run a session in the terminal
  serve      - Start SSH server for remote sessions
  api        - Start the HTTP snapshot inspector
  snapshots  - Manage stored snapshots
  placement  - Preview the virus layout for a seed

Examples:
  drmario play
  drmario play --seed 255 --difficulty hard
  drmario serve --ssh :2222
  drmario api --http :8080
  drmario snapshots list
  drmario placement --seed 12345`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		drmario.SetConfigPath(flagConfig)
		return nil
	},
}

// logger is the root CLI logger.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "drmario",
})

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Session seed (empty = configured seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.drmario/snapshots.db", "Path to snapshot database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom drmario.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(placementCmd)
}

// seedFlag parses --seed. An empty flag yields 0, which sessions treat
// as "use the configured seed".
func seedFlag() (int64, error) {
	if flagSeed == "" {
		return 0, nil
	}
	seed, err := config.ParseSeed(flagSeed)
	if err != nil {
		return 0, fmt.Errorf("invalid --seed %q: %w", flagSeed, err)
	}
	return seed, nil
}

// loadConfig resolves --config and the given preset.
func loadConfig(preset string) (config.DrMarioConfig, error) {
	drmario.SetConfigPath(flagConfig)
	drmario.SetDifficultyPreset(preset)
	return drmario.LoadConfig()
}
