package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ce2grammaire/internal/app"
	"ce2grammaire/internal/progress"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Ephemeral = true
	a, err := app.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestResolveFallsBackToFresh(t *testing.T) {
	m := NewManager()
	if sc := m.Resolve("nope"); sc.Name != "fresh" || len(sc.Results) != 0 {
		t.Fatalf("unexpected fallback %+v", sc)
	}
	for _, name := range m.Names() {
		if got := m.Resolve(name).Name; got != name {
			t.Fatalf("scenario %s resolved as %s", name, got)
		}
	}
}

func TestApplyAllBadges(t *testing.T) {
	a := newApp(t)
	a.RecordResult(app.RecordRequest{ItemID: "before", DeltaScore: 50, Stars: 1})

	m := NewManager()
	out, err := m.Apply(a, m.Resolve("all_badges"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out.UnlockedBadges) != len(progress.Catalog()) {
		t.Fatalf("expected every badge unlocked, got %v", out.UnlockedBadges)
	}
	rec := a.Progress()
	if rec.TotalScore != 60 || rec.Streak != 15 || rec.LastLevelID() != "5" {
		t.Fatalf("unexpected record %+v", rec)
	}
	for _, id := range rec.RecentPhrases {
		if id == "before" {
			t.Fatalf("apply must start from a reset record")
		}
	}
}

func TestApplyBrokenStreak(t *testing.T) {
	a := newApp(t)
	m := NewManager()
	if _, err := m.Apply(a, m.Resolve("broken_streak")); err != nil {
		t.Fatal(err)
	}
	rec := a.Progress()
	if rec.LevelPerfectStreaks["5"] != 0 || rec.Streak != 3 {
		t.Fatalf("expected broken level streak and decremented global streak, got %+v", rec)
	}
	if len(rec.Badges) != 2 {
		t.Fatalf("badges earned before the miss must stay, got %v", rec.Badges)
	}
}

func TestSetStateWritesFile(t *testing.T) {
	dir := t.TempDir()
	if err := NewManager().SetState(context.Background(), dir, " first_badge ", true); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "dev_state.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got["state"] != "first_badge" || got["rendered"] != true {
		t.Fatalf("unexpected state %v", got)
	}
}

func TestSetStateStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewManager().SetState(ctx, dir, "first_badge", false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dev_state.json")); !os.IsNotExist(err) {
		t.Fatalf("expected no state file after cancellation, stat err=%v", err)
	}
}
