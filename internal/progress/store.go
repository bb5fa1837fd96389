// Package progress keeps the learner's score, streaks, recent items and
// badges, persisted as one JSON document in a key/value store.
//
// None of the Store operations return errors: storage failures are logged and
// the caller always gets a usable record back.
package progress

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"ce2grammaire/internal/state"
	"ce2grammaire/internal/telemetry"
)

// DefaultKey is the storage key the progress document lives under.
const DefaultKey = "ce2-grammaire-progress"

// Logger receives storage diagnostics.
type Logger interface {
	Warn(msg string, fields map[string]any)
}

type Store struct {
	kv     state.KV
	key    string
	logger Logger
	now    func() time.Time
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for badge unlock timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(kv state.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: telemetry.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored record merged over the defaults, or the defaults
// when nothing usable is stored.
func (s *Store) Load() Record {
	raw, ok, err := s.kv.GetItem(context.Background(), s.key)
	if err != nil {
		s.logger.Warn("progress.read_failed", map[string]any{"key": s.key, "error": err.Error()})
		return DefaultRecord()
	}
	if !ok || raw == "" {
		return DefaultRecord()
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		s.logger.Warn("progress.parse_failed", map[string]any{"key": s.key, "error": err.Error()})
		return DefaultRecord()
	}
	rec := DefaultRecord()
	s.mergeFields(&rec, fields)
	return rec.normalize()
}

// mergeFields decodes each known field on its own so one malformed value
// only falls back to its own default.
func (s *Store) mergeFields(rec *Record, fields map[string]json.RawMessage) {
	decoders := []struct {
		name   string
		decode func(json.RawMessage) error
	}{
		{"totalScore", field(&rec.TotalScore)},
		{"bestScore", field(&rec.BestScore)},
		{"streak", field(&rec.Streak)},
		{"lastLevel", field(&rec.LastLevel)},
		{"recentPhrases", field(&rec.RecentPhrases)},
		{"badges", field(&rec.Badges)},
		{"levelPerfectStreaks", field(&rec.LevelPerfectStreaks)},
	}
	for _, d := range decoders {
		raw, ok := fields[d.name]
		if !ok {
			continue
		}
		if err := d.decode(raw); err != nil {
			s.logger.Warn("progress.field_ignored", map[string]any{"key": s.key, "field": d.name, "error": err.Error()})
		}
	}
}

// field returns a decoder that only overwrites dst when raw decodes cleanly.
func field[T any](dst *T) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// Save persists rec. Failures are logged and otherwise ignored.
func (s *Store) Save(rec Record) {
	s.persist(rec)
}

func (s *Store) persist(rec Record) bool {
	b, err := json.Marshal(rec.normalize())
	if err != nil {
		s.logger.Warn("progress.encode_failed", map[string]any{"key": s.key, "error": err.Error()})
		return false
	}
	if err := s.kv.SetItem(context.Background(), s.key, string(b)); err != nil {
		s.logger.Warn("progress.write_failed", map[string]any{"key": s.key, "error": err.Error()})
		return false
	}
	return true
}

// RecordResult applies one completed exercise to rec and persists the result.
// deltaScore is the number of correct answers; stars is 0..3 with 3 meaning
// perfect. The level in rc only drives per-level badge tracking. The returned
// ids are the badges unlocked by this call, in threshold order.
func (s *Store) RecordResult(rec Record, itemID string, deltaScore, stars int, rc *ResultContext) (Record, []BadgeID) {
	next := rec.Clone()
	next.TotalScore = max(0, addSaturating(next.TotalScore, deltaScore))
	next.BestScore = max(next.BestScore, next.TotalScore)
	next.Streak = nextStreak(next.Streak, stars)
	next.RecentPhrases = pushRecent(next.RecentPhrases, itemID)

	var unlocked []BadgeID
	if rc != nil && IsBadgeLevel(rc.Level) {
		unlocked = s.trackLevel(&next, rc.Level, stars)
	}

	s.persist(next)
	return next, unlocked
}

func (s *Store) trackLevel(rec *Record, level string, stars int) []BadgeID {
	if stars != 3 {
		rec.LevelPerfectStreaks[level] = 0
		return nil
	}
	current := rec.LevelPerfectStreaks[level] + 1
	rec.LevelPerfectStreaks[level] = current

	var unlocked []BadgeID
	for _, threshold := range badgeThresholds {
		if current < threshold {
			continue
		}
		id := MakeBadgeID(level, threshold)
		if _, ok := rec.Badges[id]; ok {
			continue
		}
		rec.Badges[id] = s.now().UnixMilli()
		unlocked = append(unlocked, id)
	}
	return unlocked
}

// UpdateLastLevel records level as the most recently started one.
func (s *Store) UpdateLastLevel(rec Record, level string) Record {
	next := rec.Clone()
	next.LastLevel = &level
	s.persist(next)
	return next
}

// Reset replaces everything, badges included, with the defaults.
func (s *Store) Reset() Record {
	next := DefaultRecord()
	s.persist(next)
	return next
}

func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
