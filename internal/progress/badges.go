package progress

import (
	"fmt"
	"slices"
)

type BadgeID string

// BadgeDefinition describes one achievement of the fixed catalog.
type BadgeDefinition struct {
	ID          BadgeID `json:"id"`
	Level       string  `json:"level"`
	Threshold   int     `json:"threshold"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

var (
	badgeLevels     = []string{"3", "4", "5"}
	badgeThresholds = []int{3, 4, 5}

	catalog     = buildCatalog()
	catalogByID = indexCatalog(catalog)
)

// BadgeLevels lists the levels whose perfect streaks unlock badges.
func BadgeLevels() []string { return slices.Clone(badgeLevels) }

// BadgeThresholds lists the per-level perfect streak lengths that unlock a badge, ascending.
func BadgeThresholds() []int { return slices.Clone(badgeThresholds) }

func IsBadgeLevel(level string) bool {
	return slices.Contains(badgeLevels, level)
}

func MakeBadgeID(level string, threshold int) BadgeID {
	return BadgeID(fmt.Sprintf("level-%s-streak-%d", level, threshold))
}

// Catalog returns every badge, level by level, thresholds ascending.
func Catalog() []BadgeDefinition { return slices.Clone(catalog) }

func LookupBadge(id BadgeID) (BadgeDefinition, bool) {
	def, ok := catalogByID[id]
	return def, ok
}

func buildCatalog() []BadgeDefinition {
	out := make([]BadgeDefinition, 0, len(badgeLevels)*len(badgeThresholds))
	for _, level := range badgeLevels {
		for _, threshold := range badgeThresholds {
			out = append(out, BadgeDefinition{
				ID:          MakeBadgeID(level, threshold),
				Level:       level,
				Threshold:   threshold,
				Title:       fmt.Sprintf("Niveau %s · %d phrases parfaites", level, threshold),
				Description: fmt.Sprintf("Enchaîne %d phrases sans erreur au niveau %s.", threshold, level),
			})
		}
	}
	return out
}

func indexCatalog(defs []BadgeDefinition) map[BadgeID]BadgeDefinition {
	out := make(map[BadgeID]BadgeDefinition, len(defs))
	for _, def := range defs {
		out[def.ID] = def
	}
	return out
}
