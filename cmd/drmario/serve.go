package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario"
	"github.com/vovakirdan/tui-drmario/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeLevel  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that runs one Dr. Mario session per connection.

Every connection plays the configured seed unless --seed is given.
Saved snapshots go to the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.drmario/host_key

Examples:
  drmario serve                           # Listen on :23234 with auto-generated key
  drmario serve --ssh :2222               # Listen on port 2222
  drmario serve --host-key ./my_host_key  # Use specific host key
  drmario serve --difficulty hard         # Every session uses the hard preset

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeLevel, "difficulty", "", "Difficulty preset applied to every session")
}

func runServe(_ *cobra.Command, _ []string) {
	seed, err := seedFlag()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Sessions created through the registry read these on Reset
	drmario.SetConfigPath(flagConfig)
	drmario.SetDifficultyPreset(flagServeLevel)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		GameID:      drmario.GameID,
		TickRate:    flagFPS,
		Seed:        seed,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Logger:      logger.WithPrefix("drmario-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Dr. Mario SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
