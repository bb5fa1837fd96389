package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ce2grammaire/internal/grading"
	"ce2grammaire/internal/levels"
	"ce2grammaire/internal/progress"
	"ce2grammaire/internal/state"
	"ce2grammaire/internal/telemetry"

	"github.com/google/uuid"
)

var ErrEmptyLevel = errors.New("level is required")

const missingLabelsHelp = "Glisse toutes les étiquettes sur la phrase avant de valider."

// App owns the learner's progress record and is the only writer to it.
type App struct {
	cfg Config

	logger    telemetry.Logger
	logCloser io.Closer
	kv        state.KV
	store     ProgressStore
	catalog   levels.Catalog
	grader    *grading.DefaultGrader

	sessionID string

	mu          sync.Mutex
	progress    progress.Record
	activeLevel string
	mathScore   MathScore
	mathSeen    map[string]bool // question key -> solved

	server *http.Server
}

func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	logger, closer, err := newLogger(cfg, sessionID)
	if err != nil {
		return nil, err
	}

	kv, err := openKV(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	catalog, err := levels.Load(cfg.LevelsPath)
	if err != nil {
		_ = kv.Close()
		_ = closer.Close()
		return nil, err
	}

	store := progress.NewStore(kv, progress.WithKey(cfg.StorageKey), progress.WithLogger(logger))
	a := &App{
		cfg:       cfg,
		logger:    logger,
		logCloser: closer,
		kv:        kv,
		store:     store,
		catalog:   catalog,
		grader:    grading.NewGrader(),
		sessionID: sessionID,
		mathSeen:  map[string]bool{},
	}
	a.progress = store.Load()
	a.activeLevel = a.progress.LastLevelID()
	a.logger.Info("app.start", map[string]any{"data_dir": cfg.DataDir, "ephemeral": cfg.Ephemeral, "key": cfg.StorageKey})
	return a, nil
}

func newLogger(cfg Config, sessionID string) (telemetry.Logger, io.Closer, error) {
	if cfg.LogFormat == "text" {
		l := telemetry.NewTextLogger(os.Stderr, "ce2")
		return l, l, nil
	}
	l, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, nil, err
	}
	return l.With(map[string]any{"session": sessionID}), l, nil
}

func openKV(cfg Config) (state.KV, error) {
	if cfg.Ephemeral {
		return state.NewMemory(), nil
	}
	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.server != nil {
		_ = a.server.Shutdown(ctx)
	}
	_ = a.kv.Close()
	_ = a.logCloser.Close()
}

func (a *App) Config() Config          { return a.cfg }
func (a *App) SessionID() string       { return a.sessionID }
func (a *App) Catalog() levels.Catalog { return a.catalog }

// Progress returns a copy of the current record.
func (a *App) Progress() progress.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progress.Clone()
}

// StartLevel makes level the active one and stores it as the last played level.
// Unknown grammar ids play with the free-review configuration.
func (a *App) StartLevel(level string) (LevelInfo, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return LevelInfo{}, ErrEmptyLevel
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.activeLevel = level
	a.progress = a.store.UpdateLastLevel(a.progress, level)
	a.logger.Info("level.start", map[string]any{"level": level})
	return a.levelInfo(level), nil
}

func (a *App) levelInfo(level string) LevelInfo {
	info := LevelInfo{
		LevelID: level,
		Label:   a.catalog.LevelLabel(level),
		Subject: subjectOf(a.catalog, level),
	}
	if m, ok := a.catalog.Math(level); ok {
		info.Math = &m
		return info
	}
	g := a.catalog.Grammar(level)
	info.Grammar = &g
	return info
}

// RecordResult applies an already graded exercise outcome.
func (a *App) RecordResult(req RecordRequest) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recordLocked(req)
}

func (a *App) recordLocked(req RecordRequest) Outcome {
	level := strings.TrimSpace(req.Level)
	var rc *progress.ResultContext
	if level != "" {
		rc = &progress.ResultContext{Level: level}
	}
	next, unlocked := a.store.RecordResult(a.progress, req.ItemID, req.DeltaScore, req.Stars, rc)
	a.progress = next
	a.logger.Info("progress.result", map[string]any{
		"item":     req.ItemID,
		"delta":    req.DeltaScore,
		"stars":    req.Stars,
		"level":    level,
		"total":    next.TotalScore,
		"streak":   next.Streak,
		"unlocked": len(unlocked),
	})
	if unlocked == nil {
		unlocked = []progress.BadgeID{}
	}
	return Outcome{
		Progress:       next.Clone(),
		UnlockedBadges: unlocked,
		Announcement:   announce(unlocked),
	}
}

// Check grades the label placements of one sentence and records the result.
// An answer with unlabelled required groups is returned ungraded.
func (a *App) Check(req CheckRequest) (CheckOutcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	level := strings.TrimSpace(req.Level)
	if level == "" {
		level = a.activeLevel
	}
	if level == "" {
		return CheckOutcome{}, ErrEmptyLevel
	}
	if subjectOf(a.catalog, level) == SubjectMath {
		return CheckOutcome{}, fmt.Errorf("level %q is a math level, use CheckMath", level)
	}

	slots := grading.ApplyRequirements(a.catalog.Grammar(level), req.Slots)
	result := a.grader.Grade(grading.Request{PhraseID: req.PhraseID, LevelID: level, Slots: slots})
	if !result.Complete {
		return CheckOutcome{
			Result:  result,
			Help:    missingLabelsHelp,
			Outcome: Outcome{Progress: a.progress.Clone(), UnlockedBadges: []progress.BadgeID{}},
		}, nil
	}
	out := a.recordLocked(RecordRequest{
		ItemID:     req.PhraseID,
		DeltaScore: result.DeltaScore(),
		Stars:      result.Stars,
		Level:      level,
	})
	return CheckOutcome{Result: result, Recorded: true, Outcome: out}, nil
}

// CheckMath grades a math answer and updates the session tally. A question
// counts once towards the total when first answered and once towards the
// successes when first solved; a wrong answer can be retried.
func (a *App) CheckMath(req MathCheckRequest) (MathOutcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	level, err := a.mathLevelLocked(req.Level)
	if err != nil {
		return MathOutcome{}, err
	}
	result := grading.GradeMath(level, req.Question, req.Answer)
	out := MathOutcome{Result: result}
	key := req.Question.Key()
	solved, seen := a.mathSeen[key]
	if result.Answered && !solved {
		if !seen {
			a.mathScore.Total++
		}
		if result.Correct {
			a.mathScore.Correct++
		}
		a.mathSeen[key] = result.Correct
		out.Counted = true
	}
	out.Score = a.mathScore
	out.Text = a.mathScore.Text()
	a.logger.Info("math.check", map[string]any{
		"level":    level.LevelID,
		"question": key,
		"correct":  result.Correct,
		"counted":  out.Counted,
	})
	return out, nil
}

// MathHint returns the hint of a question that is not solved yet.
func (a *App) MathHint(req MathCheckRequest) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.mathLevelLocked(req.Level); err != nil {
		return "", err
	}
	if a.mathSeen[req.Question.Key()] {
		return "", nil
	}
	return grading.MathHint(req.Question), nil
}

func (a *App) MathScore() MathScore {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mathScore
}

func (a *App) mathLevelLocked(raw string) (levels.MathLevel, error) {
	level := strings.TrimSpace(raw)
	if level == "" {
		level = a.activeLevel
	}
	if level == "" {
		return levels.MathLevel{}, ErrEmptyLevel
	}
	m, ok := a.catalog.Math(level)
	if !ok {
		return levels.MathLevel{}, fmt.Errorf("level %q is not a math level", level)
	}
	return m, nil
}

// Reset wipes all progress, badges included.
func (a *App) Reset() progress.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.progress = a.store.Reset()
	a.logger.Info("progress.reset", nil)
	return a.progress.Clone()
}

// Badges lists the whole catalog with the learner's unlock state.
func (a *App) Badges() []BadgeStatus {
	rec := a.Progress()
	defs := progress.Catalog()
	out := make([]BadgeStatus, 0, len(defs))
	for _, def := range defs {
		st := BadgeStatus{BadgeDefinition: def}
		if at, ok := rec.BadgeUnlockedAt(def.ID); ok {
			st.Unlocked = true
			st.UnlockedAt = at
		}
		out = append(out, st)
	}
	return out
}

// BadgeHelp is the encouragement line shown under the badge grid.
func BadgeHelp(statuses []BadgeStatus) string {
	unlocked := 0
	for _, st := range statuses {
		if st.Unlocked {
			unlocked++
		}
	}
	if unlocked == 0 {
		return "Joue les niveaux " + joinLevels(progress.BadgeLevels()) + " et réussis plusieurs phrases d’affilée pour débloquer les badges."
	}
	remaining := len(statuses) - unlocked
	switch {
	case remaining > 1:
		return fmt.Sprintf("Encore %d badges à décrocher en poursuivant les séries parfaites !", remaining)
	case remaining == 1:
		return "Encore 1 badge à décrocher en poursuivant les séries parfaites !"
	default:
		return "Tous les badges sont débloqués, bravo !"
	}
}

// Resume summarises where the learner left off.
func (a *App) Resume() string {
	rec := a.Progress()
	lines := []string{}
	if last := rec.LastLevelID(); last != "" {
		lines = append(lines, "Dernier niveau joué : "+a.catalog.LevelLabel(last))
	}
	if len(rec.RecentPhrases) > 0 {
		recent := rec.RecentPhrases[:min(5, len(rec.RecentPhrases))]
		lines = append(lines, "Dernières phrases : "+strings.Join(recent, ", "))
	}
	if len(lines) == 0 {
		return "Prêt à jouer ? Choisis un niveau pour commencer."
	}
	return strings.Join(lines, " • ")
}

func announce(unlocked []progress.BadgeID) string {
	if len(unlocked) == 0 {
		return ""
	}
	def, ok := progress.LookupBadge(unlocked[len(unlocked)-1])
	if !ok {
		return "Nouveau badge débloqué !"
	}
	return "Nouveau badge ! " + def.Title
}

func joinLevels(ids []string) string {
	switch len(ids) {
	case 0:
		return ""
	case 1:
		return ids[0]
	}
	return strings.Join(ids[:len(ids)-1], ", ") + " et " + ids[len(ids)-1]
}
