package ui

import (
	"ce2grammaire/internal/app"
	"ce2grammaire/internal/progress"
)

// View turns app state into terminal text.
type View interface {
	Scoreboard(rec progress.Record, levelLabel string) string
	Badges(statuses []app.BadgeStatus, help string) string
	Check(out app.CheckOutcome) string
	MathCheck(out app.MathOutcome) string
	Level(info app.LevelInfo) string
	Resume(text string) string
}

var _ View = (*Renderer)(nil)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutNarrow
)

// Glyphs is the symbol set used for stars, badge states and feedback marks.
type Glyphs struct {
	StarOn   string
	StarOff  string
	Unlocked string
	Locked   string
	Pass     string
	Fail     string
	Bullet   string
}

var (
	unicodeGlyphs = Glyphs{StarOn: "★", StarOff: "☆", Unlocked: "🏅", Locked: "🔒", Pass: "✓", Fail: "✗", Bullet: "•"}
	asciiGlyphs   = Glyphs{StarOn: "*", StarOff: ".", Unlocked: "[x]", Locked: "[-]", Pass: "+", Fail: "x", Bullet: "-"}
)
