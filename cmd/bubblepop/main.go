// bubblepop is a hex-grid bubble shooter for the terminal.
//
// Usage:
//
//	bubblepop                 - Start the interactive menu
//	bubblepop list            - List game modes
//	bubblepop play [mode]     - Play the campaign or endless mode
//	bubblepop scores [mode]   - Show high scores and recent runs
//	bubblepop serve           - Start SSH server for remote play
//	bubblepop stages ...      - Inspect and write stage files
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.bubblepop/scores.db)
//	--log <file>        - Write the game log to a file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

// logger is set up by the root command before any subcommand runs.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblepop",
	Short: "Bubble Pop - a hex bubble shooter in your terminal",
	Long: `Bubble Pop is a bubble shooter on a hexagonal grid. Aim the cannon,
match three or more bubbles of one color and clear every stage before the
wall comes down past the danger line.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  scores   - View high scores and run history
  serve    - Start SSH server for remote play
  stages   - Inspect and write stage files

Run without a command to open the menu.

Examples:
  bubblepop
  bubblepop play
  bubblepop play endless --difficulty hard
  bubblepop serve --ssh :2222
  bubblepop scores --runs`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bubblepop/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write the game log to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stagesCmd)
}

// setupLogging opens the --log file. Without one the interactive commands
// stay silent because the alt screen owns the terminal.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "bubblepop",
			Level:           level,
		})
	} else {
		logger.SetLevel(level)
	}

	bubblepop.SetLogger(logger)
	return nil
}

// runtimeConfig builds the platform config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
