// Package fallback synthesizes rate payloads when the backend is unavailable.
//
// Every generated field stays within a documented [min,max) range and the
// generator is seedable, so degraded responses are reproducible in tests and
// never surprise the UI with an unfamiliar shape.
package fallback

import (
	"math/rand"
	"sync"
	"time"

	"knowallrates-gateway/internal/model"
)

// Baseline values and spreads for synthesized prices (INR).
const (
	baseGold22K   = 5850.0
	baseGold24K   = 6380.0
	baseSilver    = 72.0
	baseBitcoin   = 5_100_000.0
	spreadGold    = 50.0
	spreadSilver  = 6.0
	spreadBitcoin = 150_000.0

	yesterdayGold22K = 5825.0
	yesterdayGold24K = 6350.0
	yesterdaySilver  = 71.2
	yesterdayBitcoin = 5_080_000.0

	predictBase22K   = 5875.0
	predictBase24K   = 6410.0
	predictSpread    = 50.0
	confidenceMin    = 70
	confidenceSpread = 31 // confidence in [70,100]
)

const dateLayout = "2006-01-02"

var trends = []string{model.TrendUp, model.TrendDown, model.TrendStable}

// Generator produces bounded pseudo-random rate data. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New creates a Generator seeded from the wall clock.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a Generator with a fixed seed for reproducible output.
func NewSeeded(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Today synthesizes a plausible current rate snapshot. Change fields are
// derived from the synthesized yesterday baseline so the sign convention
// (positive change = price increase) always holds.
func (g *Generator) Today() model.TodayRate {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	yesterday := now.Add(-24 * time.Hour)

	gold22k := baseGold22K + g.rnd.Float64()*spreadGold
	gold24k := baseGold24K + g.rnd.Float64()*spreadGold

	return model.TodayRate{
		Date:             now.Format(dateLayout),
		Gold22K:          gold22k,
		Gold24K:          gold24k,
		Silver:           baseSilver + g.rnd.Float64()*spreadSilver,
		Bitcoin:          baseBitcoin + g.rnd.Float64()*spreadBitcoin,
		Change22K:        gold22k - yesterdayGold22K,
		Change24K:        gold24k - yesterdayGold24K,
		ChangePercent22K: (gold22k - yesterdayGold22K) / yesterdayGold22K * 100,
		ChangePercent24K: (gold24k - yesterdayGold24K) / yesterdayGold24K * 100,
		Timestamp:        now.Format(time.RFC3339),
		Yesterday: model.DayRate{
			Date:      yesterday.Format(dateLayout),
			Gold22K:   yesterdayGold22K,
			Gold24K:   yesterdayGold24K,
			Silver:    yesterdaySilver,
			Bitcoin:   yesterdayBitcoin,
			Timestamp: yesterday.Format(time.RFC3339),
		},
	}
}

// History synthesizes exactly days entries, one per calendar day walking
// backward from today, returned oldest first.
func (g *Generator) History(days int) []model.HistoryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	if days < 1 {
		days = 1
	}

	now := g.now()
	entries := make([]model.HistoryEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		entries = append(entries, model.HistoryEntry{
			Date:    day.Format(dateLayout),
			Gold22K: baseGold22K + g.rnd.Float64()*spreadGold,
			Gold24K: baseGold24K + g.rnd.Float64()*spreadGold,
			Silver:  baseSilver + g.rnd.Float64()*spreadSilver,
			Bitcoin: baseBitcoin + g.rnd.Float64()*spreadBitcoin,
		})
	}
	return entries
}

// Prediction synthesizes a next-day forecast with a trend drawn from the
// fixed {up, down, stable} set and a confidence in [70,100].
func (g *Generator) Prediction() model.Prediction {
	g.mu.Lock()
	defer g.mu.Unlock()

	tomorrow := g.now().Add(24 * time.Hour)

	return model.Prediction{
		Date:         tomorrow.Format(dateLayout),
		Predicted22K: predictBase22K + (g.rnd.Float64()-0.5)*2*predictSpread,
		Predicted24K: predictBase24K + (g.rnd.Float64()-0.5)*2*predictSpread,
		Confidence:   confidenceMin + g.rnd.Intn(confidenceSpread),
		Trend:        trends[g.rnd.Intn(len(trends))],
	}
}
