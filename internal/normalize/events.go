package normalize

import (
	"strings"

	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
)

const (
	EventGoal         = "Goal"
	EventCard         = "Card"
	EventSubstitution = "Substitution"
	EventVar          = "Var"
)

// DefaultEventTypes is the set of event types kept in reports.
func DefaultEventTypes() []string {
	return []string{EventGoal, EventCard}
}

// EventClassifier formats the retained in-game events and drops the rest.
type EventClassifier struct {
	retained map[string]struct{}
}

func NewEventClassifier(types []string) *EventClassifier {
	if len(types) == 0 {
		types = DefaultEventTypes()
	}
	retained := make(map[string]struct{}, len(types))
	for _, item := range types {
		key := canonicalEventType(item)
		if key == "" {
			continue
		}
		retained[key] = struct{}{}
	}
	return &EventClassifier{retained: retained}
}

// canonicalEventType maps a configured type onto the provider spelling of the
// known types; anything else is kept as written.
func canonicalEventType(configured string) string {
	configured = strings.TrimSpace(configured)
	for _, known := range []string{EventGoal, EventCard, EventSubstitution, EventVar} {
		if strings.EqualFold(configured, known) {
			return known
		}
	}
	return configured
}

// Retains matches provider event types exactly.
func (c *EventClassifier) Retains(eventType string) bool {
	_, ok := c.retained[strings.TrimSpace(eventType)]
	return ok
}

// ClassifyAll keeps feed order.
func (c *EventClassifier) ClassifyAll(events []upstream.Event, homeTeam, awayTeam string) []matchreport.EventEntry {
	out := make([]matchreport.EventEntry, 0, len(events))
	for _, event := range events {
		entry, ok := c.Classify(event, homeTeam, awayTeam)
		if !ok {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (c *EventClassifier) Classify(event upstream.Event, homeTeam, awayTeam string) (matchreport.EventEntry, bool) {
	eventType := strings.TrimSpace(event.Type)
	if eventType == "" || !c.Retains(eventType) {
		return matchreport.EventEntry{}, false
	}

	teamName := awayTeam
	if event.IsHome {
		teamName = homeTeam
	}

	return matchreport.EventEntry{
		MinuteLabel: minuteLabel(event.Time),
		TeamName:    teamName,
		Description: describeEvent(eventType, event),
	}, true
}

func minuteLabel(minute upstream.Scalar) string {
	value := strings.TrimSpace(minute.Text)
	if !minute.Set || value == "" {
		value = "?"
	}
	return value + "'"
}

func describeEvent(eventType string, event upstream.Event) string {
	player := PlayerName(event.Player)

	switch eventType {
	case EventGoal:
		prefix := "⚽ Goal"
		switch event.Kind.Text {
		case "own-goal":
			prefix = "⚽ Own Goal"
		case "penalty":
			prefix = "⚽ Penalty Goal"
		}
		desc := prefix + ": " + player
		if event.AssistPlayer.Present {
			if assist := PlayerName(event.AssistPlayer); assist != matchreport.Unknown {
				desc += " (Assist: " + assist + ")"
			}
		}
		return desc
	case EventCard:
		if event.Card.Text == "Red" {
			return "🟥 Red Card: " + player
		}
		return "🟨 Yellow Card: " + player
	case EventSubstitution:
		out := matchreport.Unknown
		if len(event.Swap) > 0 {
			out = PlayerName(event.Swap[0])
		}
		return "🔄 Sub: " + player + " (IN) ↔ " + out + " (OUT)"
	case EventVar:
		decision := strings.TrimSpace(event.Kind.Text)
		if decision == "" {
			decision = "Check in progress"
		}
		return "📺 VAR: " + decision
	default:
		return eventType + ": " + player
	}
}
