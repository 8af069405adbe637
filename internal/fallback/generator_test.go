package fallback

import (
	"reflect"
	"testing"
	"time"

	"knowallrates-gateway/internal/model"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestToday_BoundsAndDerivedChanges(t *testing.T) {
	g := NewSeeded(1).WithClock(fixedClock)

	for i := 0; i < 100; i++ {
		today := g.Today()

		if today.Gold22K < baseGold22K || today.Gold22K >= baseGold22K+spreadGold {
			t.Fatalf("Gold22K = %v out of [%v,%v)", today.Gold22K, baseGold22K, baseGold22K+spreadGold)
		}
		if today.Gold24K < baseGold24K || today.Gold24K >= baseGold24K+spreadGold {
			t.Fatalf("Gold24K = %v out of bounds", today.Gold24K)
		}
		if today.Silver < baseSilver || today.Silver >= baseSilver+spreadSilver {
			t.Fatalf("Silver = %v out of bounds", today.Silver)
		}
		if today.Bitcoin < baseBitcoin || today.Bitcoin >= baseBitcoin+spreadBitcoin {
			t.Fatalf("Bitcoin = %v out of bounds", today.Bitcoin)
		}

		if got, want := today.Change22K, today.Gold22K-today.Yesterday.Gold22K; got != want {
			t.Fatalf("Change22K = %v, want %v", got, want)
		}
		if today.Change22K <= 0 {
			t.Fatalf("Change22K = %v; synthesized today must exceed yesterday baseline", today.Change22K)
		}
		if got, want := today.ChangePercent24K, (today.Gold24K-today.Yesterday.Gold24K)/today.Yesterday.Gold24K*100; got != want {
			t.Fatalf("ChangePercent24K = %v, want %v", got, want)
		}
	}
}

func TestToday_Dates(t *testing.T) {
	g := NewSeeded(2).WithClock(fixedClock)
	today := g.Today()

	if today.Date != "2025-06-15" {
		t.Errorf("Date = %q, want 2025-06-15", today.Date)
	}
	if today.Yesterday.Date != "2025-06-14" {
		t.Errorf("Yesterday.Date = %q, want 2025-06-14", today.Yesterday.Date)
	}
}

func TestHistory_CountAndOrder(t *testing.T) {
	for _, days := range []int{1, 5, 30, 365} {
		g := NewSeeded(3).WithClock(fixedClock)
		entries := g.History(days)

		if len(entries) != days {
			t.Fatalf("History(%d) returned %d entries", days, len(entries))
		}
		if entries[len(entries)-1].Date != "2025-06-15" {
			t.Errorf("last entry date = %q, want today", entries[len(entries)-1].Date)
		}
		for i := 1; i < len(entries); i++ {
			prev, err := time.Parse(dateLayout, entries[i-1].Date)
			if err != nil {
				t.Fatalf("parse %q: %v", entries[i-1].Date, err)
			}
			cur, err := time.Parse(dateLayout, entries[i].Date)
			if err != nil {
				t.Fatalf("parse %q: %v", entries[i].Date, err)
			}
			if cur.Sub(prev) != 24*time.Hour {
				t.Fatalf("entries %d..%d are %v apart, want exactly one day", i-1, i, cur.Sub(prev))
			}
		}
	}
}

func TestHistory_MinimumOneEntry(t *testing.T) {
	g := NewSeeded(4).WithClock(fixedClock)
	if got := len(g.History(0)); got != 1 {
		t.Errorf("History(0) returned %d entries, want 1", got)
	}
}

func TestPrediction_Bounds(t *testing.T) {
	g := NewSeeded(5).WithClock(fixedClock)

	valid := map[string]bool{model.TrendUp: true, model.TrendDown: true, model.TrendStable: true}
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		p := g.Prediction()

		if p.Date != "2025-06-16" {
			t.Fatalf("Date = %q, want tomorrow", p.Date)
		}
		if p.Confidence < 70 || p.Confidence > 100 {
			t.Fatalf("Confidence = %d out of [70,100]", p.Confidence)
		}
		if p.Predicted22K < predictBase22K-predictSpread || p.Predicted22K >= predictBase22K+predictSpread {
			t.Fatalf("Predicted22K = %v out of bounds", p.Predicted22K)
		}
		if !valid[p.Trend] {
			t.Fatalf("Trend = %q not in enumerated set", p.Trend)
		}
		seen[p.Trend] = true
	}

	if len(seen) != 3 {
		t.Errorf("trends seen = %v, want all three over 200 draws", seen)
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeeded(42).WithClock(fixedClock)
	b := NewSeeded(42).WithClock(fixedClock)

	if !reflect.DeepEqual(a.Today(), b.Today()) {
		t.Error("Today() differs across equal seeds")
	}
	if !reflect.DeepEqual(a.History(7), b.History(7)) {
		t.Error("History(7) differs across equal seeds")
	}
	if !reflect.DeepEqual(a.Prediction(), b.Prediction()) {
		t.Error("Prediction() differs across equal seeds")
	}
}
