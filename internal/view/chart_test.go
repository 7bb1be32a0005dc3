package view_test

import (
	"testing"
	"time"

	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/view"
)

func chartSamples() []domain.PriceSample {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mk := func(token, dex string, min int, price float64) domain.PriceSample {
		return domain.PriceSample{
			TokenSymbol: token,
			DEXName:     dex,
			PriceUSD:    price,
			Timestamp:   base.Add(time.Duration(min) * time.Minute),
		}
	}
	return []domain.PriceSample{
		mk("WBNB", "pancakeswap", 0, 600.123),
		mk("WBNB", "biswap", 1, 601.456),
		mk("WBNB", "apeswap", 2, 602.789),
		mk("WMATIC", "quickswap", 3, 0.71),
	}
}

func TestBuildChartOneLinePerTokenDex(t *testing.T) {
	lines := view.BuildChart(domain.GroupPrices(chartSamples()))
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}

	// Same token, different dex: same family, progressively lighter colors.
	if lines[0].Token != "WBNB" || lines[1].Token != "WBNB" || lines[2].Token != "WBNB" {
		t.Fatalf("first three lines should all be WBNB, got %+v", lines)
	}
	if lines[0].Color == lines[1].Color {
		t.Error("second dex of the same token should get a lighter shade, got identical color")
	}
	if lines[1].Color == lines[2].Color {
		t.Error("third dex should differ from second")
	}

	// Different token takes the next palette slot, not a shade.
	if lines[3].Token != "WMATIC" {
		t.Fatalf("fourth line = %q, want WMATIC", lines[3].Token)
	}
	if lines[3].Color == lines[0].Color {
		t.Error("second token reused the first token's base color")
	}
}

func TestBuildChartDeterministic(t *testing.T) {
	samples := chartSamples()
	first := view.BuildChart(domain.GroupPrices(samples))
	for i := 0; i < 5; i++ {
		again := view.BuildChart(domain.GroupPrices(samples))
		for j := range first {
			if again[j].Color != first[j].Color || again[j].Token != first[j].Token || again[j].DEX != first[j].DEX {
				t.Fatalf("run %d line %d differs: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestBuildChartPointFormat(t *testing.T) {
	lines := view.BuildChart(domain.GroupPrices(chartSamples()))
	p := lines[0].Points[0]

	if p.Price != 600.12 {
		t.Errorf("price = %v, want 600.12 (2dp)", p.Price)
	}
	wantMs := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	if p.TimestampMs != wantMs {
		t.Errorf("timestamp = %d, want %d (epoch ms)", p.TimestampMs, wantMs)
	}
}
