package grading

// Slot is one drop target of an exercise: a sentence group waiting for a role
// label, or the subject-type prompt.
type Slot struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Expected string `json:"expected"`
	Assigned string `json:"assigned,omitempty"`
	Required bool   `json:"required"`
}

type Request struct {
	PhraseID string `json:"phraseId"`
	LevelID  string `json:"levelId"`
	Slots    []Slot `json:"slots"`
}

type Result struct {
	PhraseID string `json:"phraseId"`
	LevelID  string `json:"levelId"`

	// Complete is false when a required slot has no label yet; nothing is
	// scored in that case.
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing,omitempty"`

	CorrectCount int            `json:"correctCount"`
	Total        int            `json:"total"`
	Accuracy     float64        `json:"accuracy"`
	Stars        int            `json:"stars"`
	Feedback     []SlotFeedback `json:"feedback,omitempty"`
}

// DeltaScore is the number of points the result adds to the learner's total.
func (r Result) DeltaScore() int { return r.CorrectCount }

// Perfect reports a three-star result.
func (r Result) Perfect() bool { return r.Stars == 3 }

type SlotFeedback struct {
	SlotID  string `json:"slotId"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

type feedbackText struct {
	Success  string
	Reminder string
}
