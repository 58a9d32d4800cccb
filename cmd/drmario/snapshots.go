package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
	"github.com/vovakirdan/tui-drmario/internal/platform/boardimage"
	"github.com/vovakirdan/tui-drmario/internal/storage"
)

var (
	flagSnapGame  string
	flagSnapLimit int
	flagSnapLabel string
	flagExportOut string
	flagRenderOut string
	flagSnapWidth int
	flagSnapCell  int
	flagSnapBoard bool
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage stored snapshots",
	Long: `List, inspect, export, import and render snapshots saved from
sessions (press W while playing to save one).

Examples:
  drmario snapshots list
  drmario snapshots show 3 --board
  drmario snapshots export 3 -o frame90.json
  drmario snapshots import frame90.json --label "before scramble"
  drmario snapshots render 3 -o board.png --width 128
  drmario snapshots checksum frame90.json`,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the newest stored snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			records, err := store.RecentSnapshots(flagSnapGame, flagSnapLimit)
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		})
	},
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored snapshot summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withStore(func(store *storage.Store) error {
			snap, err := store.LoadSnapshot(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, history.FormatForDisplay(snap))
			if !flagSnapBoard {
				return nil
			}
			cfg, err := loadConfig("")
			if err != nil {
				logger.Warn("config problem, continuing with defaults", "error", err)
			}
			b, err := drmario.SnapshotBoard(cfg, snap)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, textBoard(b))
			return nil
		})
	},
}

var snapshotsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a stored snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withStore(func(store *storage.Store) error {
			rec, err := store.SnapshotByID(id)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), flagExportOut, func(w io.Writer) error {
				_, err := io.WriteString(w, rec.Payload+"\n")
				return err
			})
		})
	},
}

var snapshotsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a serialized snapshot (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := readSnapshot(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		return withStore(func(store *storage.Store) error {
			id, err := store.SaveSnapshot(flagSnapGame, flagSnapLabel, snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported snapshot #%d (frame %d, checksum %s)\n",
				id, snap.Frame, history.ComputeChecksum(snap.GameState))
			return nil
		})
	},
}

var snapshotsRenderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Render a stored snapshot's board as PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if flagRenderOut == "" || flagRenderOut == "-" {
			return fmt.Errorf("render needs --output <file.png>")
		}
		cfg, err := loadConfig("")
		if err != nil {
			logger.Warn("config problem, continuing with defaults", "error", err)
		}
		return withStore(func(store *storage.Store) error {
			snap, err := store.LoadSnapshot(id)
			if err != nil {
				return err
			}
			b, err := drmario.SnapshotBoard(cfg, snap)
			if err != nil {
				return err
			}
			err = writeOutput(cmd.OutOrStdout(), flagRenderOut, func(w io.Writer) error {
				return boardimage.WritePNG(w, b, flagSnapCell, flagSnapWidth)
			})
			if err != nil {
				return err
			}
			logger.Info("board image written", "id", id, "path", flagRenderOut)
			return nil
		})
	},
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withStore(func(store *storage.Store) error {
			if err := store.DeleteSnapshot(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot #%d\n", id)
			return nil
		})
	},
}

var snapshotsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored snapshot of a game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			if err := store.ClearSnapshots(flagSnapGame); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared snapshots for %s\n", flagSnapGame)
			return nil
		})
	},
}

var snapshotsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored snapshot counts per game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			all, err := store.AllStats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No snapshots stored yet.")
				return nil
			}
			fmt.Fprintf(out, "  %-12s  %-6s  %-12s  %s\n", "Game", "Count", "Frames", "Last saved")
			fmt.Fprintf(out, "  %-12s  %-6s  %-12s  %s\n", "----", "-----", "------", "----------")
			for _, id := range slices.Sorted(maps.Keys(all)) {
				st := all[id]
				frames := fmt.Sprintf("%d-%d", st.FirstFrame, st.LastFrame)
				fmt.Fprintf(out, "  %-12s  %-6d  %-12s  %s\n", id, st.Count, frames, st.LastSaved.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var snapshotsChecksumCmd = &cobra.Command{
	Use:   "checksum <file>",
	Short: "Print the checksum of a serialized snapshot (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := readSnapshot(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), history.ComputeChecksum(snap.GameState))
		return nil
	},
}

func init() {
	snapshotsCmd.PersistentFlags().StringVar(&flagSnapGame, "game", drmario.GameID, "Owner game of the snapshots")

	snapshotsListCmd.Flags().IntVar(&flagSnapLimit, "limit", 20, "Maximum snapshots to list")
	snapshotsShowCmd.Flags().BoolVar(&flagSnapBoard, "board", false, "Also print the composed board")
	snapshotsExportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "-", "Output file (- for stdout)")
	snapshotsImportCmd.Flags().StringVar(&flagSnapLabel, "label", "", "Label stored with the snapshot")
	snapshotsRenderCmd.Flags().StringVarP(&flagRenderOut, "output", "o", "", "Output PNG file")
	snapshotsRenderCmd.Flags().IntVar(&flagSnapWidth, "width", 0, "Scale the image to this width (0 = native)")
	snapshotsRenderCmd.Flags().IntVar(&flagSnapCell, "cell", boardimage.DefaultCellSize, "Cell size in pixels")

	snapshotsCmd.AddCommand(
		snapshotsListCmd,
		snapshotsShowCmd,
		snapshotsExportCmd,
		snapshotsImportCmd,
		snapshotsRenderCmd,
		snapshotsDeleteCmd,
		snapshotsClearCmd,
		snapshotsStatsCmd,
		snapshotsChecksumCmd,
	)
}

// withStore opens the database for the duration of fn.
func withStore(fn func(*storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid snapshot id %q", s)
	}
	return id, nil
}

// readSnapshot deserializes a snapshot from path, or from stdin for "-".
func readSnapshot(stdin io.Reader, path string) (history.Snapshot, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return history.Snapshot{}, err
	}
	return history.Deserialize(string(data))
}

// writeOutput runs write against path, or against stdout for "" and "-".
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printRecords(out io.Writer, records []storage.SnapshotRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(out, "No snapshots stored yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Press W during 'drmario play' to save one.")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-7s  %-12s  %-9s  %-16s  %s\n", "ID", "Frame", "Seed", "Checksum", "Saved", "Label")
	fmt.Fprintf(out, "  %-5s  %-7s  %-12s  %-9s  %-16s  %s\n", "--", "-----", "----", "--------", "-----", "-----")
	for _, r := range records {
		fmt.Fprintf(out, "  %-5d  %-7d  %-12d  %-9s  %-16s  %s\n",
			r.ID, r.Frame, r.Seed, r.Checksum, r.CreatedAt.Format("2006-01-02 15:04"), r.Label)
	}
	return nil
}
