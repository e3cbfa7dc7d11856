// Package normalize turns loosely shaped provider fields into the stable
// values used by match reports.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var numericRoundRegex = regexp.MustCompile(`^[0-9]+$`)

// RoundRule maps a lower-case substring of a raw round label to its display name.
type RoundRule struct {
	Key   string
	Label string
}

// DefaultRoundRules returns the built-in table. Earlier rules win, so the
// specific knockout labels sit before the bare "final".
func DefaultRoundRules() []RoundRule {
	return []RoundRule{
		{Key: "third place play-off", Label: "Third Place Play-off"},
		{Key: "knockout round play-offs", Label: "Round of 16 Play-offs"},
		{Key: "semi-finals", Label: "Semi-Finals"},
		{Key: "semi-final", Label: "Semi-Finals"},
		{Key: "quarter-finals", Label: "Quarter-Finals"},
		{Key: "quarter-final", Label: "Quarter-Finals"},
		{Key: "round of 16", Label: "Round of 16"},
		{Key: "round of 32", Label: "Round of 32"},
		{Key: "play-offs", Label: "Play-offs"},
		{Key: "community shield", Label: "Community Shield"},
		{Key: "final", Label: "Final"},
	}
}

// RoundNormalizer maps raw competition-round labels to display names.
// The rule table is fixed at construction.
type RoundNormalizer struct {
	rules []RoundRule
}

func NewRoundNormalizer(rules []RoundRule) *RoundNormalizer {
	if rules == nil {
		rules = DefaultRoundRules()
	}
	copied := make([]RoundRule, 0, len(rules))
	for _, rule := range rules {
		key := strings.ToLower(strings.TrimSpace(rule.Key))
		if key == "" {
			continue
		}
		copied = append(copied, RoundRule{Key: key, Label: rule.Label})
	}
	return &RoundNormalizer{rules: copied}
}

func (n *RoundNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lowered := strings.ToLower(trimmed)
	for _, rule := range n.rules {
		if strings.Contains(lowered, rule.Key) {
			return rule.Label
		}
	}

	if numericRoundRegex.MatchString(trimmed) {
		return "Matchweek " + trimmed
	}

	return capitalize(trimmed)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(value string) string {
	first, size := utf8.DecodeRuneInString(value)
	if first == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(value[size:])
}
