package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows every registered game mode with its ID, games played and best score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	var stats map[string]*storage.GameStats
	if store := openStore(); store != nil {
		all, err := store.GetAllGamesStats()
		if err != nil {
			logger.Warn("cannot read mode stats", "err", err)
		}
		stats = all
		store.Close()
	}
	writeModeList(os.Stdout, registry.List(), stats)
}

// writeModeList prints one row per mode. Modes missing from stats show zeros.
func writeModeList(w io.Writer, games []registry.GameInfo, stats map[string]*storage.GameStats) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games available.")
		return
	}

	fmt.Fprintln(w, "Available modes:")
	fmt.Fprintln(w)

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %5s  %6s\n", maxIDLen, "ID", maxTitleLen, "Title", "Games", "Best")
	fmt.Fprintf(w, "  %-*s  %-*s  %5s  %6s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "----")
	for _, g := range games {
		var played, best int
		if s, ok := stats[g.ID]; ok {
			played, best = s.GamesCount, s.HighScore
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %5d  %6d\n", maxIDLen, g.ID, maxTitleLen, g.Title, played, best)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'bubblepop play <id>' to play a mode.")
}
