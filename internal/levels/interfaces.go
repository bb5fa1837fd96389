package levels

// Resolver answers the per-level questions the exercise screens ask.
type Resolver interface {
	Grammar(level string) GrammarLevel
	Math(level string) (MathLevel, bool)
	IsKnown(level string) bool
	LevelLabel(level string) string
}

var _ Resolver = Catalog{}
