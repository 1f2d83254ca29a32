package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("bubblepop", 120); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("bubblepop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 120 {
		t.Errorf("HighScore = %d, expected 120", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("bubblepop", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("bubblepop_endless", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("bubblepop", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, expected 3", len(scores))
	}
	expected := []int{200, 100, 50}
	for i, e := range expected {
		if scores[i].Score != e {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, e)
		}
		if scores[i].GameID != "bubblepop" {
			t.Errorf("scores[%d].GameID = %q, expected bubblepop", i, scores[i].GameID)
		}
	}

	endless, err := store.TopScores("bubblepop_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 || endless[0].Score != 500 {
		t.Errorf("endless scores = %+v, expected one 500", endless)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("bubblepop", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("bubblepop", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("len(scores) = %d, expected 5", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("top score = %d, expected 190", scores[0].Score)
	}

	defaulted, err := store.TopScores("bubblepop", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(defaulted) != 10 {
		t.Errorf("default limit returned %d, expected 10", len(defaulted))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("bubblepop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore on empty = %d, expected 0", high)
	}

	store.SaveScore("bubblepop", 100)
	store.SaveScore("bubblepop", 300)
	store.SaveScore("bubblepop", 200)

	high, err = store.HighScore("bubblepop")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore = %d, expected 300", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("bubblepop", 100)
	store.SaveScore("bubblepop_endless", 70)
	store.SaveRun(RunRecord{GameID: "bubblepop", Stage: 2, Score: 100})

	if err := store.ClearScores("bubblepop"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.AllScores("bubblepop")
	if len(scores) != 0 {
		t.Errorf("scores after clear = %d, expected 0", len(scores))
	}
	runs, _ := store.RecentRuns("bubblepop", 10)
	if len(runs) != 0 {
		t.Errorf("runs after clear = %d, expected 0", len(runs))
	}
	other, _ := store.AllScores("bubblepop_endless")
	if len(other) != 1 {
		t.Errorf("other game scores = %d, expected 1", len(other))
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		store.SaveScore("bubblepop", i)
	}

	scores, err := store.AllScores("bubblepop")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 15 {
		t.Errorf("len(scores) = %d, expected 15", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("bubblepop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("bubblepop", 100)
	store.SaveScore("bubblepop", 300)
	store.SaveScore("bubblepop_endless", 40)

	stats, err := store.GetGameStats("bubblepop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("stats = %+v, expected 2 games, high 300, total 400", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %.1f, expected 200.0", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, expected 2", len(all))
	}
	if all["bubblepop_endless"] == nil || all["bubblepop_endless"].HighScore != 40 {
		t.Errorf("endless stats = %+v", all["bubblepop_endless"])
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestStage("bubblepop")
	if err != nil {
		t.Fatalf("BestStage() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestStage on empty = %d, expected 0", best)
	}

	records := []RunRecord{
		{GameID: "bubblepop", Stage: 1, StageName: "Stage 1", Score: 30, Shots: 9, Popped: 3, Difficulty: "normal", DurationSecs: 40},
		{GameID: "bubblepop", Stage: 3, StageName: "Stage 3", Score: 240, Shots: 41, Popped: 24, Difficulty: "hard", DurationSecs: 180},
		{GameID: "bubblepop", Stage: 5, StageName: "Stage 5", Score: 610, Shots: 77, Popped: 61, Won: true, Difficulty: "easy", DurationSecs: 420},
		{GameID: "bubblepop_endless", Stage: 9, StageName: "Endless 9", Score: 900},
	}
	for _, r := range records {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("bubblepop", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, expected 3", len(runs))
	}
	// Same-second inserts fall back to ID order.
	newest := runs[0]
	if newest.Stage != 5 || !newest.Won || newest.Difficulty != "easy" || newest.Popped != 61 {
		t.Errorf("newest run = %+v", newest)
	}
	if runs[2].Won {
		t.Error("oldest run should not be won")
	}
	if newest.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	limited, _ := store.RecentRuns("", 2)
	if len(limited) != 2 {
		t.Errorf("RecentRuns(all, 2) = %d, expected 2", len(limited))
	}
	all, _ := store.RecentRuns("", 0)
	if len(all) != 4 {
		t.Errorf("RecentRuns(all) = %d, expected 4", len(all))
	}

	best, _ = store.BestStage("bubblepop")
	if best != 5 {
		t.Errorf("BestStage = %d, expected 5", best)
	}
	best, _ = store.BestStage("bubblepop_endless")
	if best != 9 {
		t.Errorf("BestStage(endless) = %d, expected 9", best)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.bubblepop/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".bubblepop", "test.db")); err != nil {
		t.Errorf("expanded database not found: %v", err)
	}
}
