package progress

import "time"

// MaxRecentPhrases bounds Record.RecentPhrases.
const MaxRecentPhrases = 10

// Record is the persisted learner progress. The JSON layout is the storage
// format and must stay compatible with records written by older versions.
type Record struct {
	TotalScore          int               `json:"totalScore"`
	BestScore           int               `json:"bestScore"`
	Streak              int               `json:"streak"`
	LastLevel           *string           `json:"lastLevel"`
	RecentPhrases       []string          `json:"recentPhrases"`
	Badges              map[BadgeID]int64 `json:"badges"`
	LevelPerfectStreaks map[string]int    `json:"levelPerfectStreaks"`
}

// ResultContext carries optional per-call information for RecordResult.
type ResultContext struct {
	Level string `json:"level,omitempty"`
}

func DefaultRecord() Record {
	return Record{
		RecentPhrases:       []string{},
		Badges:              map[BadgeID]int64{},
		LevelPerfectStreaks: map[string]int{},
	}
}

// Clone returns a deep copy so callers can derive a new record without
// touching the one they were given.
func (r Record) Clone() Record {
	out := r
	if r.LastLevel != nil {
		level := *r.LastLevel
		out.LastLevel = &level
	}
	out.RecentPhrases = append(make([]string, 0, len(r.RecentPhrases)), r.RecentPhrases...)
	out.Badges = make(map[BadgeID]int64, len(r.Badges))
	for id, ts := range r.Badges {
		out.Badges[id] = ts
	}
	out.LevelPerfectStreaks = make(map[string]int, len(r.LevelPerfectStreaks))
	for level, n := range r.LevelPerfectStreaks {
		out.LevelPerfectStreaks[level] = n
	}
	return out
}

// LastLevelID returns the last played level or "" when none was recorded.
func (r Record) LastLevelID() string {
	if r.LastLevel == nil {
		return ""
	}
	return *r.LastLevel
}

// BadgeUnlockedAt reports whether id is unlocked and when.
func (r Record) BadgeUnlockedAt(id BadgeID) (time.Time, bool) {
	ts, ok := r.Badges[id]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ts), true
}

// normalize fills collections a stored record may lack so that fields added
// after the record was written read as their defaults.
func (r Record) normalize() Record {
	if r.RecentPhrases == nil {
		r.RecentPhrases = []string{}
	}
	if r.Badges == nil {
		r.Badges = map[BadgeID]int64{}
	}
	if r.LevelPerfectStreaks == nil {
		r.LevelPerfectStreaks = map[string]int{}
	}
	return r
}

func nextStreak(streak, stars int) int {
	switch stars {
	case 3:
		return streak + 1
	case 0:
		return 0
	default:
		return max(streak-1, 0)
	}
}

func pushRecent(recent []string, itemID string) []string {
	out := make([]string, 0, MaxRecentPhrases)
	for _, id := range append([]string{itemID}, recent...) {
		if id == "" {
			continue
		}
		out = append(out, id)
		if len(out) == MaxRecentPhrases {
			break
		}
	}
	return out
}
