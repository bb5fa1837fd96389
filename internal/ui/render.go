package ui

import (
	"fmt"
	"strings"
	"time"

	"ce2grammaire/internal/app"
	"ce2grammaire/internal/progress"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
)

type Options struct {
	Variant string
	ASCII   bool
	Width   int
	Now     func() time.Time
}

type Renderer struct {
	theme  Theme
	glyphs Glyphs
	width  int
	now    func() time.Time
}

func New(opts Options) *Renderer {
	r := &Renderer{
		theme:  ThemeForVariant(opts.Variant),
		glyphs: unicodeGlyphs,
		width:  opts.Width,
		now:    opts.Now,
	}
	if opts.ASCII {
		r.theme = withASCIIBorders(r.theme)
		r.glyphs = asciiGlyphs
	}
	if r.width <= 0 {
		r.width = defaultWidth
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Stars renders a 0..3 rating.
func (r *Renderer) Stars(n int) string {
	n = min(max(n, 0), 3)
	on := strings.Repeat(r.glyphs.StarOn, n)
	off := strings.Repeat(r.glyphs.StarOff, 3-n)
	return r.theme.Star.Render(on + off)
}

func (r *Renderer) Scoreboard(rec progress.Record, levelLabel string) string {
	var b strings.Builder
	b.WriteString(r.theme.Header.Render("CE2 Grammaire"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		r.theme.Muted.Render("Score"), r.theme.Score.Render(humanize.Comma(int64(rec.TotalScore))),
		r.theme.Muted.Render("Record"), r.theme.Score.Render(humanize.Comma(int64(rec.BestScore))),
		r.theme.Muted.Render("Série"), r.theme.Accent.Render(fmt.Sprintf("%d", rec.Streak)),
	)
	if levelLabel != "" {
		fmt.Fprintf(&b, "%s %s\n", r.theme.Muted.Render("Niveau"), r.theme.Body.Render(levelLabel))
	}
	for _, level := range progress.BadgeLevels() {
		if n := rec.LevelPerfectStreaks[level]; n > 0 {
			fmt.Fprintf(&b, "%s %s\n", r.theme.Muted.Render(r.glyphs.Bullet), r.theme.Body.Render(fmt.Sprintf("Niveau %s : %d phrase(s) parfaite(s) d’affilée", level, n)))
		}
	}
	fmt.Fprintf(&b, "%s %s", r.theme.Muted.Render("Badges"), r.theme.Body.Render(fmt.Sprintf("%d/%d", len(rec.Badges), len(progress.Catalog()))))
	return b.String()
}

// Badges lays the catalog out as a grid of cards, as many per row as the width allows.
func (r *Renderer) Badges(statuses []app.BadgeStatus, help string) string {
	cols := BadgeColumns(DetermineLayoutMode(r.width))
	cardWidth := max(20, r.width/cols-2)

	rows := []string{r.theme.Title.Render("Badges")}
	var row []string
	for _, st := range statuses {
		row = append(row, r.badgeCard(st, cardWidth))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	if help != "" {
		rows = append(rows, r.theme.Muted.Render(help))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Renderer) badgeCard(st app.BadgeStatus, width int) string {
	style := r.theme.Card
	mark := r.glyphs.Locked
	status := r.theme.Muted.Render("À débloquer")
	if st.Unlocked {
		style = r.theme.CardEarned
		mark = r.glyphs.Unlocked
		status = r.theme.Pass.Render(unlockedLabel(st.UnlockedAt.In(r.now().Location())))
	}
	body := strings.Join([]string{
		mark + " " + r.theme.Title.Render(st.Title),
		r.theme.Body.Render(st.Description),
		status,
	}, "\n")
	return style.Width(width).Render(body)
}

func (r *Renderer) Check(out app.CheckOutcome) string {
	lines := []string{}
	if !out.Result.Complete {
		lines = append(lines, r.theme.Muted.Render(out.Help))
		for _, id := range out.Result.Missing {
			lines = append(lines, r.theme.Fail.Render(r.glyphs.Fail+" "+id))
		}
		return strings.Join(lines, "\n")
	}
	lines = append(lines, fmt.Sprintf("%s  %d/%d", r.Stars(out.Result.Stars), out.Result.CorrectCount, out.Result.Total))
	for _, fb := range out.Result.Feedback {
		msg := strings.TrimSpace(strings.TrimLeft(fb.Message, "✓✗"))
		if fb.Passed {
			lines = append(lines, r.theme.Pass.Render(r.glyphs.Pass)+" "+r.theme.Body.Render(msg))
			continue
		}
		lines = append(lines, r.theme.Fail.Render(r.glyphs.Fail)+" "+r.theme.Body.Render(msg))
	}
	if out.Announcement != "" {
		lines = append(lines, r.theme.Accent.Render(out.Announcement))
	}
	return strings.Join(lines, "\n")
}

// MathCheck renders the feedback of one math answer and the session tally.
func (r *Renderer) MathCheck(out app.MathOutcome) string {
	lines := []string{}
	switch {
	case !out.Result.Answered:
		lines = append(lines, r.theme.Muted.Render("Choisis une réponse avant de valider."))
	case out.Result.Correct:
		lines = append(lines, r.theme.Pass.Render(r.glyphs.Pass)+" "+r.theme.Body.Render(out.Result.Message))
	default:
		lines = append(lines, r.theme.Fail.Render(r.glyphs.Fail)+" "+r.theme.Body.Render(out.Result.Message))
	}
	lines = append(lines, r.MathScore(out.Score))
	return strings.Join(lines, "\n")
}

func (r *Renderer) MathScore(s app.MathScore) string {
	return r.theme.Muted.Render("Maths") + " " + r.theme.Score.Render(s.Text())
}

func (r *Renderer) Level(info app.LevelInfo) string {
	lines := []string{r.theme.Title.Render(info.Label)}
	if info.Grammar != nil && info.Grammar.Instruction != "" {
		lines = append(lines, r.theme.Body.Render(info.Grammar.Instruction))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) Resume(text string) string {
	return r.theme.Muted.Render(text)
}

var frenchMonths = [...]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}

// unlockedLabel formats the unlock day the way fr-FR medium dates read.
func unlockedLabel(at time.Time) string {
	if at.IsZero() {
		return "Débloqué"
	}
	return fmt.Sprintf("Débloqué le %d %s %d", at.Day(), frenchMonths[at.Month()-1], at.Year())
}
