package app

import (
	"fmt"
	"time"

	"ce2grammaire/internal/grading"
	"ce2grammaire/internal/levels"
	"ce2grammaire/internal/progress"
)

type LevelInfo struct {
	LevelID string               `json:"levelId"`
	Label   string               `json:"label"`
	Subject Subject              `json:"subject"`
	Grammar *levels.GrammarLevel `json:"grammar,omitempty"`
	Math    *levels.MathLevel    `json:"math,omitempty"`
}

type RecordRequest struct {
	ItemID     string `json:"itemId"`
	DeltaScore int    `json:"deltaScore"`
	Stars      int    `json:"stars"`
	Level      string `json:"level,omitempty"`
}

type CheckRequest struct {
	PhraseID string         `json:"phraseId"`
	Level    string         `json:"level,omitempty"`
	Slots    []grading.Slot `json:"slots"`
}

type Outcome struct {
	Progress       progress.Record    `json:"progress"`
	UnlockedBadges []progress.BadgeID `json:"unlockedBadges"`
	Announcement   string             `json:"announcement,omitempty"`
}

type CheckOutcome struct {
	Result   grading.Result `json:"result"`
	Recorded bool           `json:"recorded"`
	Help     string         `json:"help,omitempty"`
	Outcome
}

type BadgeStatus struct {
	progress.BadgeDefinition
	Unlocked   bool      `json:"unlocked"`
	UnlockedAt time.Time `json:"unlockedAt,omitzero"`
}

type MathCheckRequest struct {
	Level    string               `json:"level,omitempty"`
	Question grading.MathQuestion `json:"question"`
	Answer   grading.MathAnswer   `json:"answer"`
}

// MathScore is the session tally: questions solved out of questions tried.
type MathScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (s MathScore) Text() string {
	if s.Total == 0 {
		return "0 réussite sur 0 exercice."
	}
	success, exercises := "réussite", "exercice"
	if s.Correct > 1 {
		success = "réussites"
	}
	if s.Total > 1 {
		exercises = "exercices"
	}
	return fmt.Sprintf("%d %s sur %d %s.", s.Correct, success, s.Total, exercises)
}

type MathOutcome struct {
	Result  grading.MathResult `json:"result"`
	Counted bool               `json:"counted"`
	Score   MathScore          `json:"score"`
	Text    string             `json:"scoreText"`
}
