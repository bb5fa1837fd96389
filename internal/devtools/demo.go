package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"ce2grammaire/internal/app"
	"ce2grammaire/internal/progress"
)

// Scenario is a scripted run of results that puts progress into a known
// state for screenshots and manual testing.
type Scenario struct {
	Name      string
	LastLevel string
	Results   []app.RecordRequest
}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

var scenarioNames = []string{"fresh", "streak", "first_badge", "broken_streak", "all_badges"}

func (m *Manager) Names() []string { return slices.Clone(scenarioNames) }

func (m *Manager) Resolve(name string) Scenario {
	switch name {
	case "streak":
		return Scenario{Name: name, LastLevel: "4", Results: perfectRun("4", 2, 4)}
	case "first_badge":
		return Scenario{Name: name, LastLevel: "3", Results: perfectRun("3", 3, 3)}
	case "broken_streak":
		results := perfectRun("5", 4, 4)
		results = append(results, app.RecordRequest{ItemID: "demo-5-miss", DeltaScore: 2, Stars: 2, Level: "5"})
		return Scenario{Name: name, LastLevel: "5", Results: results}
	case "all_badges":
		var results []app.RecordRequest
		for _, level := range []string{"3", "4", "5"} {
			results = append(results, perfectRun(level, 5, 4)...)
		}
		return Scenario{Name: name, LastLevel: "5", Results: results}
	default:
		return Scenario{Name: "fresh"}
	}
}

// Apply wipes progress, then replays the scenario.
func (m *Manager) Apply(r Recorder, sc Scenario) (app.Outcome, error) {
	rec := r.Reset()
	out := app.Outcome{Progress: rec, UnlockedBadges: []progress.BadgeID{}}
	if sc.LastLevel != "" {
		if _, err := r.StartLevel(sc.LastLevel); err != nil {
			return app.Outcome{}, err
		}
	}
	unlocked := []progress.BadgeID{}
	for _, step := range sc.Results {
		out = r.RecordResult(step)
		unlocked = append(unlocked, out.UnlockedBadges...)
	}
	out.UnlockedBadges = unlocked
	return out, nil
}

// SetState records the active demo scenario in cacheDir/dev_state.json.
func (m *Manager) SetState(ctx context.Context, cacheDir string, state string, rendered bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cacheDir = filepath.Join(home, ".cache", "ce2grammaire")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	payload := map[string]any{
		"state":    strings.TrimSpace(state),
		"rendered": rendered,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode dev state: %w", err)
	}
	return os.WriteFile(filepath.Join(cacheDir, "dev_state.json"), b, 0o644)
}

func perfectRun(level string, n, delta int) []app.RecordRequest {
	out := make([]app.RecordRequest, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, app.RecordRequest{
			ItemID:     fmt.Sprintf("demo-%s-%d", level, i),
			DeltaScore: delta,
			Stars:      3,
			Level:      level,
		})
	}
	return out
}
