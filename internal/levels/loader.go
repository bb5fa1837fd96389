package levels

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		c, err := parse(defaultCatalog)
		if err != nil {
			return Catalog{}, fmt.Errorf("built-in catalog: %w", err)
		}
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	c, err := parse(b)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Default returns the built-in catalog. It panics only if the embedded file is broken.
func Default() Catalog {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

func parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("validate: %w", err)
	}
	return c, nil
}

// Grammar returns the configuration for level, falling back to the free
// review level for unknown ids.
func (c Catalog) Grammar(level string) GrammarLevel {
	var fallback GrammarLevel
	for _, g := range c.GrammarLevels {
		if g.LevelID == level {
			return g
		}
		if g.LevelID == AllLevelID {
			fallback = g
		}
	}
	return fallback
}

func (c Catalog) Math(level string) (MathLevel, bool) {
	for _, m := range c.MathLevels {
		if m.LevelID == level {
			return m, true
		}
	}
	return MathLevel{}, false
}

// IsKnown reports whether level names a grammar or math level.
func (c Catalog) IsKnown(level string) bool {
	for _, g := range c.GrammarLevels {
		if g.LevelID == level {
			return true
		}
	}
	_, ok := c.Math(level)
	return ok
}

// Label looks a label up by slot kind and value.
func (c Catalog) Label(kind, value string) (Label, bool) {
	for _, l := range c.Labels {
		if l.Kind == kind && l.Value == value {
			return l, true
		}
	}
	return Label{}, false
}

// LevelLabel is the short display name of a level id.
func (c Catalog) LevelLabel(level string) string {
	if level == AllLevelID {
		return "Révision libre"
	}
	if m, ok := c.Math(level); ok {
		return m.Title
	}
	return "Niveau " + level
}
