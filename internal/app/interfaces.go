package app

import "ce2grammaire/internal/progress"

// ProgressStore is the persistence side of learner progress.
type ProgressStore interface {
	Load() progress.Record
	RecordResult(rec progress.Record, itemID string, deltaScore, stars int, rc *progress.ResultContext) (progress.Record, []progress.BadgeID)
	UpdateLastLevel(rec progress.Record, level string) progress.Record
	Reset() progress.Record
}

var _ ProgressStore = (*progress.Store)(nil)
