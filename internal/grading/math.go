package grading

import (
	"strings"

	"ce2grammaire/internal/levels"
)

const (
	retryChoice      = "Essaie encore ! Utilise le bon calcul."
	retrySequence    = "Essaie encore ! Observe le rythme de la suite."
	sequenceFallback = "Tu as trouvé la régularité."
)

// MathQuestion is one math exercise as the client shows it. Choice questions
// are answered by option index, sequence questions by the missing value.
type MathQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`
	Sequence    []string `json:"sequence,omitempty"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// Key identifies the question within a session.
func (q MathQuestion) Key() string {
	if q.ID != "" {
		return q.ID
	}
	return q.Question + "|" + q.Prompt
}

type MathAnswer struct {
	OptionIndex *int   `json:"optionIndex,omitempty"`
	Value       string `json:"value,omitempty"`
}

type MathResult struct {
	QuestionID string `json:"questionId"`
	LevelID    string `json:"levelId"`
	// Answered is false when nothing was selected yet.
	Answered bool   `json:"answered"`
	Correct  bool   `json:"correct"`
	Message  string `json:"message,omitempty"`
}

// GradeMath checks a math answer against its question.
func GradeMath(level levels.MathLevel, q MathQuestion, a MathAnswer) MathResult {
	res := MathResult{QuestionID: q.ID, LevelID: level.LevelID}

	if level.ExerciseKind() == levels.MathKindChoice {
		if a.OptionIndex == nil {
			return res
		}
		res.Answered = true
		if *a.OptionIndex != q.AnswerIndex {
			res.Message = retryChoice
			return res
		}
		res.Correct = true
		res.Message = strings.TrimSpace("Bravo ! " + q.Explanation)
		return res
	}

	value := strings.TrimSpace(a.Value)
	if value == "" && a.OptionIndex != nil && *a.OptionIndex >= 0 && *a.OptionIndex < len(q.Options) {
		value = strings.TrimSpace(q.Options[*a.OptionIndex])
	}
	if value == "" {
		return res
	}
	res.Answered = true
	if value != strings.TrimSpace(q.Answer) {
		res.Message = retrySequence
		return res
	}
	res.Correct = true
	res.Message = strings.TrimSpace("Bravo ! " + firstNonEmpty(q.Hint, sequenceFallback))
	return res
}

// MathHint returns the question's hint, or "" when it has none.
func MathHint(q MathQuestion) string {
	return strings.TrimSpace(q.Hint)
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
