package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store := openStore(t)

	m := NewSessionModel(store, testConfig(), nil)
	m, _ = sendSession(t, m, keyMsg("enter"))
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v, expected the game", m.screen)
	}
	if got := m.game.State().Level; got != 1 {
		t.Errorf("Level = %d, expected 1", got)
	}

	m, _ = sendSession(t, m, keyMsg("p"))
	m, _ = sendSession(t, m, TickMsg{})
	if !m.game.State().Paused {
		t.Fatal("game did not pause")
	}

	m, cmd := sendSession(t, m, keyMsg("b"))
	if m.screen != screenMenu || m.game != nil {
		t.Fatalf("screen = %v after back, expected the menu", m.screen)
	}
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("going back to the menu quit the session")
		}
	}
	if !strings.Contains(m.View(), "B U B B L E") {
		t.Error("menu not shown after back")
	}
}

func TestSessionStartsStageWithDifficulty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m := NewSessionModel(nil, testConfig(), nil)
	// Campaign, Select Stage, Endless, Difficulty
	for _, k := range []string{"down", "down", "down", "right"} {
		m, _ = sendSession(t, m, keyMsg(k))
	}
	for _, k := range []string{"up", "up", "enter", "down", "enter"} {
		m, _ = sendSession(t, m, keyMsg(k))
	}
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected the game", m.screen)
	}

	g, ok := m.game.game.(*bubblepop.Game)
	if !ok {
		t.Fatalf("game is %T, expected *bubblepop.Game", m.game.game)
	}
	sum := g.Summary()
	if sum.Stage != 2 || sum.Difficulty != "hard" {
		t.Errorf("Summary = %+v, expected stage 2 on hard", sum)
	}
	if m.profile.LastDifficulty() != "hard" {
		t.Errorf("LastDifficulty = %q, expected hard", m.profile.LastDifficulty())
	}
}

func TestSessionScoreboard(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m := NewSessionModel(nil, testConfig(), nil)
	m, _ = sendSession(t, m, keyMsg("tab"))
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected the scoreboard", m.screen)
	}
	if !strings.Contains(m.View(), "Nothing recorded yet") {
		t.Error("empty scoreboard message missing")
	}

	m, _ = sendSession(t, m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v after esc, expected the menu", m.screen)
	}

	m, cmd := sendSession(t, m, keyMsg("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q did not quit the session")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce tea.QuitMsg")
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(bubblepop.CampaignID, 420); err != nil {
		t.Fatalf("SaveScore failed: %v", err)
	}
	_, err := store.SaveRun(storage.RunRecord{
		GameID: bubblepop.CampaignID, Stage: 3, StageName: "stage3",
		Score: 420, Shots: 12, Popped: 30, Difficulty: "easy", DurationSecs: 75,
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	m := NewScoreboardModel(store, ViewScores, 120, 30)
	m.SelectGame(bubblepop.CampaignID)

	view := m.View()
	if !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "420") {
		t.Error("scores view is missing the heading or the score")
	}
	if !strings.Contains(view, "Best: 420") {
		t.Error("best score missing")
	}
	if !strings.Contains(view, "Furthest stage: 3") {
		t.Error("furthest stage missing")
	}

	next, _ := m.Update(keyMsg("r"))
	m = next.(ScoreboardModel)
	view = m.View()
	if !strings.Contains(view, "RECENT RUNS") || !strings.Contains(view, "1:15") {
		t.Error("runs view is missing the heading or the duration")
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	view = m.View()
	if !strings.Contains(view, "Nothing recorded yet") {
		t.Error("endless mode shows rows from the campaign")
	}
	if strings.Contains(view, "Best:") {
		t.Error("endless mode shows the campaign best score")
	}

	next, _ = m.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc did not go back")
	}
}
