package levels

import (
	"fmt"
	"regexp"
	"slices"
)

const (
	CatalogKind            = "catalog"
	SupportedSchemaVersion = 1

	// AllLevelID is the free-review level mixing every sentence.
	AllLevelID = "all"
)

// Slot kinds a label can be dropped on.
const (
	KindRole        = "ROLE"
	KindSubjectType = "SUBJECT_TYPE"
)

// Math exercise kinds: pick the right option, or fill the gap of a sequence.
const (
	MathKindChoice   = "choice"
	MathKindSequence = "sequence"
)

var (
	idPattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,31}$`)
	knownRoles = []string{"SUBJECT", "VERB", "COMPLEMENT"}
)

type Catalog struct {
	Kind          string         `yaml:"kind"`
	SchemaVersion int            `yaml:"schema_version"`
	Labels        []Label        `yaml:"labels"`
	GrammarLevels []GrammarLevel `yaml:"grammar_levels"`
	MathLevels    []MathLevel    `yaml:"math_levels"`

	Path string `yaml:"-"`
}

type Label struct {
	LabelID string `yaml:"label_id" json:"labelId"`
	Kind    string `yaml:"kind" json:"kind"`
	Value   string `yaml:"value" json:"value"`
	Text    string `yaml:"text" json:"text"`
}

type GrammarLevel struct {
	LevelID            string   `yaml:"level_id" json:"levelId"`
	Title              string   `yaml:"title" json:"title"`
	RequiredRoles      []string `yaml:"required_roles" json:"requiredRoles"`
	RequireSubjectType bool     `yaml:"require_subject_type" json:"requireSubjectType"`
	Instruction        string   `yaml:"instruction" json:"instruction"`
}

type MathLevel struct {
	LevelID string `yaml:"level_id" json:"levelId"`
	Title   string `yaml:"title" json:"title"`
	Kind    string `yaml:"kind" json:"kind,omitempty"`
}

// ExerciseKind defaults to a multiple-choice question.
func (m MathLevel) ExerciseKind() string {
	if m.Kind == "" {
		return MathKindChoice
	}
	return m.Kind
}

func (g GrammarLevel) RequiresRole(role string) bool {
	return slices.Contains(g.RequiredRoles, role)
}

func (c Catalog) Validate() error {
	if c.Kind != CatalogKind {
		return fmt.Errorf("kind must be %q", CatalogKind)
	}
	if c.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if c.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported catalog schema_version %d (max supported %d)", c.SchemaVersion, SupportedSchemaVersion)
	}
	seenLabels := map[string]struct{}{}
	for _, l := range c.Labels {
		if l.LabelID == "" {
			return fmt.Errorf("labels[].label_id is required")
		}
		if _, ok := seenLabels[l.LabelID]; ok {
			return fmt.Errorf("duplicate label_id %q", l.LabelID)
		}
		seenLabels[l.LabelID] = struct{}{}
		switch l.Kind {
		case KindRole, KindSubjectType:
		default:
			return fmt.Errorf("label %q has invalid kind %q", l.LabelID, l.Kind)
		}
		if l.Value == "" || l.Text == "" {
			return fmt.Errorf("label %q requires value and text", l.LabelID)
		}
	}

	seen := map[string]struct{}{}
	for _, g := range c.GrammarLevels {
		if !idPattern.MatchString(g.LevelID) {
			return fmt.Errorf("invalid grammar level_id %q", g.LevelID)
		}
		if _, ok := seen[g.LevelID]; ok {
			return fmt.Errorf("duplicate level_id %q", g.LevelID)
		}
		seen[g.LevelID] = struct{}{}
		if g.Title == "" {
			return fmt.Errorf("level %q: title is required", g.LevelID)
		}
		if len(g.RequiredRoles) == 0 {
			return fmt.Errorf("level %q: required_roles must contain at least one role", g.LevelID)
		}
		for _, role := range g.RequiredRoles {
			if !slices.Contains(knownRoles, role) {
				return fmt.Errorf("level %q: unknown role %q", g.LevelID, role)
			}
		}
	}
	if _, ok := seen[AllLevelID]; !ok {
		return fmt.Errorf("grammar level %q is required", AllLevelID)
	}
	for _, m := range c.MathLevels {
		if !idPattern.MatchString(m.LevelID) {
			return fmt.Errorf("invalid math level_id %q", m.LevelID)
		}
		if _, ok := seen[m.LevelID]; ok {
			return fmt.Errorf("duplicate level_id %q", m.LevelID)
		}
		seen[m.LevelID] = struct{}{}
		if m.Title == "" {
			return fmt.Errorf("level %q: title is required", m.LevelID)
		}
		switch m.ExerciseKind() {
		case MathKindChoice, MathKindSequence:
		default:
			return fmt.Errorf("level %q: unknown math kind %q", m.LevelID, m.Kind)
		}
	}
	return nil
}
