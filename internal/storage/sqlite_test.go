package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.liquidsort/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".liquidsort", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestStoreMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != len(migrations) {
		t.Errorf("SchemaVersion = %d, expected %d", version, len(migrations))
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "liquid", Score: 42}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopening applies nothing and keeps the data
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if version, _ := store.SchemaVersion(); version != len(migrations) {
		t.Errorf("SchemaVersion after reopen = %d", version)
	}
	if high, _ := store.HighScore("liquid"); high != 42 {
		t.Errorf("HighScore after reopen = %d, expected 42", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ScoreEntry{GameID: "liquid", Score: score}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "liquid_random", Player: "ana", Score: 500, Levels: 4}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("liquid", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, want)
		}
		if scores[i].GameID != "liquid" {
			t.Errorf("scores[%d] has game %q", i, scores[i].GameID)
		}
	}

	limited, err := store.TopScores("liquid", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit not applied, got %d", len(limited))
	}

	random, err := store.TopScores("liquid_random", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(random) != 1 || random[0].Player != "ana" || random[0].Levels != 4 {
		t.Errorf("TopScores(liquid_random) = %+v", random)
	}
	if random[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not filled in")
	}

	if _, err := store.SaveScore(ScoreEntry{Score: 10}); err == nil {
		t.Error("score without game ID should fail")
	}

	high, err := store.HighScore("liquid_random")
	if err != nil {
		t.Fatal(err)
	}
	if high != 500 {
		t.Errorf("HighScore = %d, expected 500", high)
	}

	none, err := store.HighScore("unknown")
	if err != nil {
		t.Fatal(err)
	}
	if none != 0 {
		t.Errorf("HighScore of unplayed game = %d, expected 0", none)
	}
}

func TestLevelResults(t *testing.T) {
	store := openTestStore(t)

	results := []LevelResult{
		{GameID: "liquid", LevelID: "lvl01", Moves: 5, Duration: 9 * time.Second},
		{GameID: "liquid", LevelID: "lvl01", Moves: 3, Duration: 20 * time.Second, Player: "ana"},
		{GameID: "liquid", LevelID: "lvl01", Moves: 3, Duration: 12 * time.Second},
		{GameID: "liquid", LevelID: "lvl02", Moves: 8, Duration: time.Minute},
	}
	for _, r := range results {
		id, err := store.SaveLevelResult(r)
		if err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("result ID %q is not a UUID: %v", id, err)
		}
	}

	best, err := store.BestLevelResult("liquid", "lvl01")
	if err != nil {
		t.Fatal(err)
	}
	if best == nil || best.Moves != 3 || best.Duration != 12*time.Second {
		t.Errorf("BestLevelResult = %+v, expected 3 moves in 12s", best)
	}

	list, err := store.LevelResults("liquid", "lvl01", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[1].Player != "ana" || list[2].Moves != 5 {
		t.Errorf("LevelResults order wrong: %+v", list)
	}

	missing, err := store.BestLevelResult("liquid", "lvl09")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("expected nil for uncleared level, got %+v", missing)
	}

	bestMoves, err := store.BestMoves("liquid")
	if err != nil {
		t.Fatal(err)
	}
	if bestMoves["lvl01"] != 3 || bestMoves["lvl02"] != 8 || len(bestMoves) != 2 {
		t.Errorf("BestMoves = %v", bestMoves)
	}

	if _, err := store.SaveLevelResult(LevelResult{GameID: "liquid"}); err == nil {
		t.Error("result without level ID should fail")
	}
}

func TestGameStatsAndClear(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "liquid", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "liquid", Player: "ana", Score: 300})
	store.SaveLevelResult(LevelResult{GameID: "liquid", LevelID: "lvl01", Moves: 4})
	store.SaveLevelResult(LevelResult{GameID: "liquid", LevelID: "lvl01", Moves: 6})
	store.SaveLevelResult(LevelResult{GameID: "liquid", LevelID: "lvl02", Moves: 9})

	stats, err := store.GetGameStats("liquid")
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.LevelsSolved != 2 {
		t.Errorf("LevelsSolved = %d, expected 2", stats.LevelsSolved)
	}
	if stats.Players != 2 {
		t.Errorf("Players = %d, expected 2", stats.Players)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	if err := store.ClearScores("liquid"); err != nil {
		t.Fatal(err)
	}
	stats, err = store.GetGameStats("liquid")
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesCount != 0 || stats.LevelsSolved != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("stats after clear: %+v", stats)
	}
}
