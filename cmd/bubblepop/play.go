package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/platform/tui"
	"github.com/vovakirdan/bubblepop/internal/profile"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStageDir   string
	flagStage      int
	flagContinue   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play the campaign or endless mode",
	Long: `Start playing right away. The mode is "campaign" (default),
"endless" or a mode ID from 'bubblepop list'.

Controls:
  Left/A, Right/D  - Aim
  Space/Up/W       - Fire
  1 / 2 / 3        - Swap, Raise wall, Rainbow bubble
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow wall, extra items
  normal - Default pace
  hard   - Fast wall, fewer items
  fixed  - No progression, stays at the config's cooldown

Examples:
  bubblepop play
  bubblepop play --continue
  bubblepop play --stage 3 --difficulty hard
  bubblepop play --stages ./my-stages
  bubblepop play endless --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagStageDir, "stages", "", "Directory of stage files (default: built-in stages)")
	playCmd.Flags().IntVar(&flagStage, "stage", 0, "Campaign stage to start on (1-based)")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Start on the furthest campaign stage reached")
}

// resolveMode maps a CLI mode name to a registered game ID.
func resolveMode(arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "", "campaign":
		return bubblepop.CampaignID, nil
	case "endless":
		return bubblepop.EndlessID, nil
	}
	if !registry.Exists(arg) {
		return "", fmt.Errorf("unknown mode %q, run 'bubblepop list' to see available modes", arg)
	}
	return arg, nil
}

// openStore opens the scores database. The game still runs without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		return nil
	}
	return store
}

// openProfile opens the saved progress. On failure progress is kept for
// this process only.
func openProfile() *profile.Manager {
	prof, err := profile.Open(profile.AppName, logger)
	if err != nil {
		logger.Warn("progress will not be saved", "err", err)
	}
	return prof
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := resolveMode(mode)
	if err != nil {
		return err
	}
	if flagStage < 0 {
		return errors.New("--stage must be 1 or more")
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	prof := openProfile()

	difficulty := flagDifficulty
	if difficulty == "" {
		difficulty = prof.LastDifficulty()
	}
	if err := prof.SetLastDifficulty(difficulty); err != nil {
		logger.Warn("cannot save difficulty", "err", err)
	}

	bubblepop.SetConfigPath(flagConfig)
	bubblepop.SetDifficultyPreset(difficulty)
	bubblepop.SetStageDir(flagStageDir)

	start := flagStage
	if flagContinue && start == 0 {
		start = prof.HighestStage(bubblepop.CampaignID)
	}
	bubblepop.SetStartStage(start)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "game", gameID, "difficulty", difficulty, "stage", start)
	_, err = tui.Run(game, runtimeConfig(), tui.Options{
		Store:   store,
		Profile: prof,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
