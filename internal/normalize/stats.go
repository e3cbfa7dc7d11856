package normalize

import (
	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
)

const (
	StatBallPossession = "Ball possession"
	StatExpectedGoals  = "Expected goals (xG)"
	StatTotalShots     = "Total shots"
	StatShotsOnTarget  = "Shots on target"
	StatBigChances     = "Big chances"
	StatPassesAccurate = "Passes accurate"
	StatFoulsCommitted = "Fouls committed"
	StatCorners        = "Corners"
)

// statValuesPerRecord is the home/away pair every usable record carries.
const statValuesPerRecord = 2

// StatRule declares which raw keys and raw titles resolve to one canonical title.
// Titles carry the English and Korean labels the provider serves.
type StatRule struct {
	Title  string
	Keys   []string
	Titles []string
}

func DefaultStatRules() []StatRule {
	return []StatRule{
		{Title: StatBallPossession, Keys: []string{"BallPossesion", "possession"}, Titles: []string{"Ball possession", "점유율"}},
		{Title: StatExpectedGoals, Keys: []string{"expected_goals", "expected_goals_team"}, Titles: []string{"Expected goals (xG)", "기대 득점 (xG)"}},
		{Title: StatTotalShots, Keys: []string{"shots_total", "total_shots"}, Titles: []string{"Total shots", "슈팅"}},
		{Title: StatShotsOnTarget, Keys: []string{"shots_on_target"}, Titles: []string{"Shots on target", "유효 슈팅"}},
		{Title: StatBigChances, Keys: []string{"big_chance", "big_chances"}, Titles: []string{"Big chances", "결정적 기회"}},
		{Title: StatPassesAccurate, Keys: []string{"passes_accurate"}, Titles: []string{"Passes accurate", "패스 성공"}},
		{Title: StatFoulsCommitted, Keys: []string{"fouls"}, Titles: []string{"Fouls committed", "파울"}},
		{Title: StatCorners, Keys: []string{"corners"}, Titles: []string{"Corners", "코너킥"}},
	}
}

type statRuleIndex struct {
	title  string
	keys   map[string]struct{}
	titles map[string]struct{}
}

// StatResolver maps raw stat records onto the canonical titles, first match wins.
type StatResolver struct {
	rules []statRuleIndex
}

func NewStatResolver(rules []StatRule) *StatResolver {
	if rules == nil {
		rules = DefaultStatRules()
	}
	indexed := make([]statRuleIndex, 0, len(rules))
	for _, rule := range rules {
		if rule.Title == "" {
			continue
		}
		item := statRuleIndex{
			title:  rule.Title,
			keys:   make(map[string]struct{}, len(rule.Keys)),
			titles: make(map[string]struct{}, len(rule.Titles)),
		}
		for _, key := range rule.Keys {
			item.keys[key] = struct{}{}
		}
		for _, title := range rule.Titles {
			item.titles[title] = struct{}{}
		}
		indexed = append(indexed, item)
	}
	return &StatResolver{rules: indexed}
}

// Resolve keeps at most one entry per canonical title, ordered by the first raw
// record that produced it.
func (r *StatResolver) Resolve(items []upstream.StatItem) []matchreport.StatEntry {
	out := make([]matchreport.StatEntry, 0, len(r.rules))
	seen := make(map[string]struct{}, len(r.rules))
	for _, item := range items {
		entry, ok := r.ResolveItem(item)
		if !ok {
			continue
		}
		if _, dup := seen[entry.Title]; dup {
			continue
		}
		seen[entry.Title] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// ResolveItem maps a single raw record. It reports false for records without
// exactly two scalar values or without a matching rule.
func (r *StatResolver) ResolveItem(item upstream.StatItem) (matchreport.StatEntry, bool) {
	if len(item.Stats) != statValuesPerRecord {
		return matchreport.StatEntry{}, false
	}
	home, away := item.Stats[0], item.Stats[1]
	if !home.Set || !away.Set {
		return matchreport.StatEntry{}, false
	}

	title, ok := r.canonicalTitle(item.Key, item.Title)
	if !ok {
		return matchreport.StatEntry{}, false
	}

	return matchreport.StatEntry{
		Title:     title,
		HomeValue: home.Text,
		AwayValue: away.Text,
	}, true
}

func (r *StatResolver) canonicalTitle(key, title string) (string, bool) {
	for _, rule := range r.rules {
		if key != "" {
			if _, ok := rule.keys[key]; ok {
				return rule.title, true
			}
		}
		if title != "" {
			if _, ok := rule.titles[title]; ok {
				return rule.title, true
			}
		}
	}
	return "", false
}
