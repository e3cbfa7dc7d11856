package normalize

import (
	"testing"

	"github.com/riskibarqy/football-digest/internal/domain/upstream"
)

func statItem(key, title string, values ...string) upstream.StatItem {
	item := upstream.StatItem{Key: key, Title: title}
	for _, v := range values {
		item.Stats = append(item.Stats, upstream.NewScalar(v))
	}
	return item
}

func TestStatResolver_Resolve_FirstMatchWins(t *testing.T) {
	t.Parallel()

	resolver := NewStatResolver(nil)
	got := resolver.Resolve([]upstream.StatItem{
		statItem("BallPossesion", "Ball possession", "61", "39"),
		statItem("possession", "점유율", "50", "50"),
	})

	if len(got) != 1 {
		t.Fatalf("expected one entry, got=%d", len(got))
	}
	if got[0].Title != StatBallPossession || got[0].HomeValue != "61" || got[0].AwayValue != "39" {
		t.Fatalf("unexpected entry: %+v", got[0])
	}
}

func TestStatResolver_Resolve_DropsMalformed(t *testing.T) {
	t.Parallel()

	resolver := NewStatResolver(nil)
	got := resolver.Resolve([]upstream.StatItem{
		statItem("shots_total", "Total shots", "10", "4", "1"),
		statItem("corners", "Corners", "7"),
		statItem("offsides", "Offsides", "2", "3"),
		{Key: "fouls", Stats: []upstream.Scalar{upstream.NewScalar("9"), {}}},
	})

	if len(got) != 0 {
		t.Fatalf("expected malformed items to be dropped, got=%+v", got)
	}
}

func TestStatResolver_Resolve_KeepsInputOrder(t *testing.T) {
	t.Parallel()

	resolver := NewStatResolver(nil)
	got := resolver.Resolve([]upstream.StatItem{
		statItem("corners", "", "5", "2"),
		statItem("", "기대 득점 (xG)", "1.84", "0.62"),
		statItem("shots_on_target", "", "6", "1"),
	})

	want := []string{StatCorners, StatExpectedGoals, StatShotsOnTarget}
	if len(got) != len(want) {
		t.Fatalf("unexpected entry count: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("unexpected title at %d: got=%q want=%q", i, got[i].Title, want[i])
		}
	}
	if got[1].HomeValue != "1.84" {
		t.Fatalf("expected raw value to be kept, got=%q", got[1].HomeValue)
	}
}

func TestStatResolver_ResolveItem_KoreanTitle(t *testing.T) {
	t.Parallel()

	entry, ok := NewStatResolver(nil).ResolveItem(statItem("", "패스 성공", "512 (89%)", "301 (78%)"))
	if !ok {
		t.Fatalf("expected korean title to resolve")
	}
	if entry.Title != StatPassesAccurate {
		t.Fatalf("unexpected title: %q", entry.Title)
	}
}
