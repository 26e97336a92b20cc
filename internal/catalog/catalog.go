// Package catalog holds the static truth/dare prompt tables and exposes
// uniform random sampling keyed by kind and difficulty.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Kind selects which prompt table a challenge draws from.
type Kind string

const (
	Truth Kind = "truth"
	Dare  Kind = "dare"
)

// Difficulty selects the prompt tier. The set is fixed at startup.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Spicy  Difficulty = "spicy"
)

// Difficulties lists every valid difficulty.
var Difficulties = []Difficulty{Easy, Medium, Spicy}

// ParseDifficulty maps raw user input to a Difficulty. Unknown input falls
// back to Medium with ok=false, matching the lobby command's default.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy, true
	case Medium:
		return Medium, true
	case Spicy:
		return Spicy, true
	}
	return Medium, false
}

// ErrEmptyCatalog reports a kind/difficulty pair with no prompts. It is a
// configuration defect surfaced at construction, never at sample time.
var ErrEmptyCatalog = errors.New("catalog: empty prompt table")

// Catalog maps {kind × difficulty} to a non-empty ordered list of prompts.
type Catalog struct {
	tables map[Kind]map[Difficulty][]string
}

// New returns a catalog backed by the built-in prompt tables.
func New() *Catalog {
	c, err := NewCatalog(builtinTruths, builtinDares)
	if err != nil {
		// The built-in tables cover every pair; reaching this is a defect.
		panic(err)
	}
	return c
}

// NewCatalog validates the given tables and builds a catalog. Every
// difficulty must carry at least one prompt for both kinds.
func NewCatalog(truths, dares map[Difficulty][]string) (*Catalog, error) {
	tables := map[Kind]map[Difficulty][]string{
		Truth: truths,
		Dare:  dares,
	}
	for kind, byDifficulty := range tables {
		for _, d := range Difficulties {
			if len(byDifficulty[d]) == 0 {
				return nil, fmt.Errorf("%w: %s/%s", ErrEmptyCatalog, kind, d)
			}
		}
	}
	return &Catalog{tables: tables}, nil
}

// Sample returns a uniformly random prompt for the pair. Sampling is with
// replacement; the same prompt may repeat within a session.
func (c *Catalog) Sample(kind Kind, difficulty Difficulty) string {
	prompts := c.tables[kind][difficulty]
	return prompts[rand.Intn(len(prompts))]
}
