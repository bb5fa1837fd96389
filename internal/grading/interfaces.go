package grading

type Grader interface {
	Grade(req Request) Result
}

var _ Grader = (*DefaultGrader)(nil)
