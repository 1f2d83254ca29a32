package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/platform/tui"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

// runMenu is the root command: menu, game and scoreboard in a loop until
// the player quits.
func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	prof := openProfile()
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(tui.MenuOptions{
			StageNames: bubblepop.StageNames(),
			Highest:    prof.HighestStage(bubblepop.CampaignID),
			Difficulty: prof.LastDifficulty(),
		}, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}
		if err := prof.SetLastDifficulty(result.Difficulty); err != nil {
			logger.Warn("cannot save difficulty", "err", err)
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, "", tui.ViewScores, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		raw, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if g, ok := raw.(*bubblepop.Game); ok {
			g.Configure(result.Difficulty, result.StartStage)
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		back, err := tui.Run(raw, cfg, tui.Options{
			Store:     store,
			Profile:   prof,
			Logger:    logger,
			AllowBack: true,
		})
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
