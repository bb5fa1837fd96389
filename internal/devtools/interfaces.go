package devtools

import (
	"context"

	"ce2grammaire/internal/app"
	"ce2grammaire/internal/progress"
)

type Demo interface {
	Resolve(name string) Scenario
	Names() []string
	Apply(r Recorder, sc Scenario) (app.Outcome, error)
	SetState(ctx context.Context, cacheDir string, state string, rendered bool) error
}

// Recorder is the slice of the app a scenario drives.
type Recorder interface {
	Reset() progress.Record
	StartLevel(level string) (app.LevelInfo, error)
	RecordResult(req app.RecordRequest) app.Outcome
}

var (
	_ Demo     = (*Manager)(nil)
	_ Recorder = (*app.App)(nil)
)
