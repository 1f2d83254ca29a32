package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/platform/tui"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var (
	flagInteractive bool
	flagRuns        bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent runs",
	Long: `Display the top scores for a mode, or its recent runs with --runs.
The mode defaults to the campaign.

Examples:
  bubblepop scores
  bubblepop scores endless
  bubblepop scores --runs --limit 20
  bubblepop scores --limit 0
  bubblepop scores endless --clear
  bubblepop scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard screen")
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recent runs instead of top scores")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to print, 0 for all scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score and run of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := resolveMode(mode)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	if flagClear {
		return clearMode(os.Stdout, store, gameID, title)
	}
	if flagInteractive {
		view := tui.ViewScores
		if flagRuns {
			view = tui.ViewRuns
		}
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, gameID, view, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if flagRuns {
		return printRuns(store, gameID, title)
	}
	return printScores(store, gameID, title)
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := loadScores(store, gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubblepop play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d   Games: %d   Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printRuns(store *storage.Store, gameID, title string) error {
	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-18s  %7s  %5s  %6s  %-6s  %-7s  %s\n",
		"Date", "Stage", "Score", "Shots", "Popped", "Result", "Level", "Time")
	for _, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		stage := fmt.Sprintf("%d %s", r.Stage, r.StageName)
		fmt.Printf("  %-16s  %-18s  %7d  %5d  %6d  %-6s  %-7s  %d:%02d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), stage, r.Score, r.Shots, r.Popped,
			result, r.Difficulty, r.DurationSecs/60, r.DurationSecs%60)
	}

	fmt.Println()
	if best, err := store.BestStage(gameID); err == nil && best > 0 {
		fmt.Printf("Furthest stage: %d\n", best)
	}
	return nil
}

// loadScores returns the best limit scores, or every score when limit is 0.
func loadScores(store *storage.Store, gameID string, limit int) ([]storage.ScoreEntry, error) {
	if limit <= 0 {
		return store.AllScores(gameID)
	}
	return store.TopScores(gameID, limit)
}

// clearMode wipes the recorded history of one mode.
func clearMode(w io.Writer, store *storage.Store, gameID, title string) error {
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("reading scores: %w", err)
	}
	if err := store.ClearScores(gameID); err != nil {
		return fmt.Errorf("clearing scores: %w", err)
	}
	logger.Info("scores cleared", "game", gameID, "count", stats.GamesCount)
	fmt.Fprintf(w, "Cleared %d scores for %s.\n", stats.GamesCount, title)
	return nil
}
