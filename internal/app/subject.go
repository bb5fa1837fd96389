package app

import (
	"strings"

	"ce2grammaire/internal/levels"
)

type Subject string

const (
	SubjectGrammar Subject = "grammar"
	SubjectMath    Subject = "math"
)

func normalizeSubject(raw string) Subject {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SubjectMath), "maths":
		return SubjectMath
	default:
		return SubjectGrammar
	}
}

func subjectOf(c levels.Catalog, level string) Subject {
	if _, ok := c.Math(level); ok {
		return SubjectMath
	}
	return SubjectGrammar
}
