package grading

import (
	"ce2grammaire/internal/levels"
)

const (
	defaultSuccess  = "Bien joué !"
	defaultReminder = "Observe la phrase attentivement."
	notThisLevel    = "Ce groupe n’est pas à identifier dans ce niveau."
)

type DefaultGrader struct {
	registry map[string]map[string]feedbackText
}

func NewGrader() *DefaultGrader {
	g := &DefaultGrader{registry: map[string]map[string]feedbackText{}}
	g.registry[levels.KindRole] = map[string]feedbackText{
		"SUBJECT": {
			Success:  "Groupe sujet trouvé !",
			Reminder: "Le groupe sujet indique qui fait l'action.",
		},
		"VERB": {
			Success:  "Verbe identifié !",
			Reminder: "Le verbe est le mot qui se conjugue.",
		},
		"COMPLEMENT": {
			Success:  "Complément repéré !",
			Reminder: "Le complément précise le lieu ou le moment.",
		},
	}
	g.registry[levels.KindSubjectType] = map[string]feedbackText{
		"PRONOUN": {
			Success:  "Bravo, tu as reconnu un pronom.",
			Reminder: "Un pronom remplace un nom déjà connu.",
		},
		"GN": {
			Success:  "Bravo, c’est un groupe nominal.",
			Reminder: "Un groupe nominal est construit autour d’un nom.",
		},
	}
	return g
}

// ApplyRequirements marks which slots must be answered at level: role slots
// whose role the level asks for, and the subject-type slot when the level
// asks for the nature of the subject.
func ApplyRequirements(level levels.GrammarLevel, slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		switch s.Kind {
		case levels.KindRole:
			s.Required = level.RequiresRole(s.Expected)
		case levels.KindSubjectType:
			s.Required = level.RequireSubjectType
		}
		out[i] = s
	}
	return out
}

// Grade checks the assigned labels against the expected ones.
func (g *DefaultGrader) Grade(req Request) Result {
	result := Result{PhraseID: req.PhraseID, LevelID: req.LevelID}

	required := make([]Slot, 0, len(req.Slots))
	for _, s := range req.Slots {
		if s.Required {
			required = append(required, s)
		}
	}
	for _, s := range required {
		if s.Assigned == "" {
			result.Missing = append(result.Missing, s.ID)
		}
	}
	if len(result.Missing) > 0 {
		return result
	}
	result.Complete = true

	for _, s := range required {
		text := g.feedbackFor(s.Kind, s.Expected)
		if s.Assigned == s.Expected {
			result.CorrectCount++
			result.Feedback = append(result.Feedback, SlotFeedback{SlotID: s.ID, Passed: true, Message: "✓ " + text.Success})
			continue
		}
		result.Feedback = append(result.Feedback, SlotFeedback{SlotID: s.ID, Message: "✗ " + text.Reminder})
	}
	for _, s := range req.Slots {
		if !s.Required && s.Assigned != "" {
			result.Feedback = append(result.Feedback, SlotFeedback{SlotID: s.ID, Message: "✗ " + notThisLevel})
		}
	}

	result.Total = len(required)
	result.Accuracy = float64(result.CorrectCount) / float64(max(1, result.Total))
	result.Stars = StarsFor(result.Accuracy)
	return result
}

// StarsFor maps an accuracy in [0,1] to the 0..3 star rating.
func StarsFor(accuracy float64) int {
	switch {
	case accuracy >= 1:
		return 3
	case accuracy >= 0.66:
		return 2
	case accuracy > 0:
		return 1
	default:
		return 0
	}
}

func (g *DefaultGrader) feedbackFor(kind, value string) feedbackText {
	text, ok := g.registry[kind][value]
	if !ok {
		return feedbackText{Success: defaultSuccess, Reminder: defaultReminder}
	}
	return text
}
