package domain

import (
	"fmt"
	"strings"
)

// PatternSet holds the suspicious-name patterns. It is immutable once built.
type PatternSet struct {
	patterns []string
	raw      []string
}

// NewPatternSet lower-cases and de-duplicates the patterns. An empty pattern is an error
// because it would match every process.
func NewPatternSet(patterns []string) (PatternSet, error) {
	set := PatternSet{
		patterns: make([]string, 0, len(patterns)),
		raw:      make([]string, 0, len(patterns)),
	}
	seen := make(map[string]struct{}, len(patterns))
	for i, p := range patterns {
		if strings.TrimSpace(p) == "" {
			return PatternSet{}, fmt.Errorf("suspicious name pattern #%d is empty", i)
		}
		lower := strings.ToLower(p)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		set.patterns = append(set.patterns, lower)
		set.raw = append(set.raw, p)
	}
	return set, nil
}

// Matches reports whether the descriptor's executable name equals or contains any pattern.
func (s PatternSet) Matches(d ProcessDescriptor) bool {
	return s.MatchName(d.ExecutableName)
}

func (s PatternSet) MatchName(name string) bool {
	if len(s.patterns) == 0 || name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, p := range s.patterns {
		if lower == p || strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func (s PatternSet) Len() int {
	return len(s.patterns)
}

// Patterns returns the configured patterns as written.
func (s PatternSet) Patterns() []string {
	out := make([]string, len(s.raw))
	copy(out, s.raw)
	return out
}
