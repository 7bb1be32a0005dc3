package domain_test

import (
	"testing"
	"time"

	"github.com/shadowlynx/monitor/internal/domain"
)

func sampleAt(token, dex string, min int, price float64) domain.PriceSample {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.PriceSample{
		TokenSymbol: token,
		DEXName:     dex,
		Network:     domain.NetworkBSC,
		PriceUSD:    price,
		Timestamp:   base.Add(time.Duration(min) * time.Minute),
	}
}

func TestGroupPricesGroupsByTokenThenDex(t *testing.T) {
	series := domain.GroupPrices([]domain.PriceSample{
		sampleAt("WBNB", "pancakeswap", 0, 600),
		sampleAt("WMATIC", "quickswap", 1, 0.7),
		sampleAt("WBNB", "biswap", 2, 601),
		sampleAt("WBNB", "pancakeswap", 3, 602),
	})

	if len(series.Tokens) != 2 {
		t.Fatalf("tokens = %v, want 2 entries", series.Tokens)
	}
	if series.Tokens[0] != "WBNB" || series.Tokens[1] != "WMATIC" {
		t.Errorf("token order = %v, want first-seen [WBNB WMATIC]", series.Tokens)
	}

	dexes := series.DEXes["WBNB"]
	if len(dexes) != 2 || dexes[0] != "pancakeswap" || dexes[1] != "biswap" {
		t.Errorf("WBNB dex order = %v, want first-seen [pancakeswap biswap]", dexes)
	}

	if got := len(series.ByDEX["WBNB"]["pancakeswap"]); got != 2 {
		t.Errorf("WBNB/pancakeswap points = %d, want 2", got)
	}
}

func TestGroupPricesSortsOutOfOrderSamples(t *testing.T) {
	series := domain.GroupPrices([]domain.PriceSample{
		sampleAt("WBNB", "pancakeswap", 30, 603),
		sampleAt("WBNB", "pancakeswap", 10, 601),
		sampleAt("WBNB", "pancakeswap", 20, 602),
	})

	points := series.ByDEX["WBNB"]["pancakeswap"]
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Timestamp.Before(points[i-1].Timestamp) {
			t.Errorf("points out of order at %d: %v before %v",
				i, points[i].Timestamp, points[i-1].Timestamp)
		}
	}
	if points[0].PriceUSD != 601 {
		t.Errorf("first point price = %v, want 601", points[0].PriceUSD)
	}
}

func TestGroupPricesDeterministicAcrossRuns(t *testing.T) {
	samples := []domain.PriceSample{
		sampleAt("WBNB", "pancakeswap", 0, 600),
		sampleAt("WETH", "uniswap", 1, 3000),
		sampleAt("WMATIC", "quickswap", 2, 0.7),
	}

	first := domain.GroupPrices(samples)
	for i := 0; i < 10; i++ {
		again := domain.GroupPrices(samples)
		for j := range first.Tokens {
			if again.Tokens[j] != first.Tokens[j] {
				t.Fatalf("run %d: token order changed: %v vs %v", i, again.Tokens, first.Tokens)
			}
		}
	}
}

func TestGroupPricesEmptyInput(t *testing.T) {
	series := domain.GroupPrices(nil)
	if len(series.Tokens) != 0 {
		t.Errorf("tokens = %v, want empty", series.Tokens)
	}
}
