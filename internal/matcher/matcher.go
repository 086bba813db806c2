// Package matcher filters server descriptors by a search pattern.
// A pattern is a shell glob, a regular expression, or a plain substring.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentstation/toolmap/pkg/servers"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Substring matches anywhere in the input.
	Substring PatternType = iota
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob
	// Regex uses regular expressions.
	Regex
	// Auto detects the pattern type from the pattern itself.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Substring:
		return "substring"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return fmt.Sprintf("unknown(%d)", int(pt))
	}
}

// Matcher reports whether strings or descriptors match a pattern.
// Matching is case-insensitive.
type Matcher struct {
	pattern     string
	patternType PatternType
	needle      string
	compiled    *regexp.Regexp
}

// New compiles pattern. An empty pattern matches everything.
func New(patternType PatternType, pattern string) (*Matcher, error) {
	m := &Matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Substring:
		m.needle = strings.ToLower(pattern)
	case Glob:
		m.needle = strings.ToLower(pattern)
		if _, err := filepath.Match(m.needle, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
	case Regex:
		expr := pattern
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		compiled, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}
		m.compiled = compiled
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
	return m, nil
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Type returns the resolved pattern type.
func (m *Matcher) Type() PatternType {
	return m.patternType
}

// Match checks if the input matches the pattern.
func (m *Matcher) Match(input string) bool {
	if m.pattern == "" {
		return true
	}
	switch m.patternType {
	case Substring:
		return strings.Contains(strings.ToLower(input), m.needle)
	case Glob:
		matched, _ := filepath.Match(m.needle, strings.ToLower(input))
		return matched
	case Regex:
		return m.compiled.MatchString(input)
	}
	return false
}

// MatchServer checks the key, name, description and tags of d.
func (m *Matcher) MatchServer(d servers.Descriptor) bool {
	if m.Match(d.Key) || m.Match(d.Name) || m.Match(d.Description) {
		return true
	}
	for _, tag := range d.Tags {
		if m.Match(tag) {
			return true
		}
	}
	return false
}

// Filter returns the descriptors that match, preserving order.
func (m *Matcher) Filter(list []servers.Descriptor) []servers.Descriptor {
	out := make([]servers.Descriptor, 0, len(list))
	for _, d := range list {
		if m.MatchServer(d) {
			out = append(out, d)
		}
	}
	return out
}

// detectPatternType guesses whether a pattern is glob, regex or a plain word.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\D", "\\W", "\\S",
		"(?:", "(?i)", "{", "}", "+", "|", "(", ")", ".*",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	if strings.ContainsAny(pattern, "*?[]") {
		return Glob
	}
	return Substring
}
