package domain

import (
	"sort"
	"time"
)

// PriceSample is one append-only price observation from a DEX. The price
// chart on the dashboard is built entirely from these rows.
type PriceSample struct {
	ID           int64     `json:"id"            db:"id"`
	TokenSymbol  string    `json:"token_symbol"  db:"token_symbol"`
	DEXName      string    `json:"dex_name"      db:"dex_name"`
	Network      Network   `json:"network"       db:"network"`
	PriceUSD     float64   `json:"price_usd"     db:"price_usd"`
	LiquidityUSD *float64  `json:"liquidity_usd" db:"liquidity_usd"`
	Timestamp    time.Time `json:"timestamp"     db:"timestamp"`
}

// PricePoint is one chart point within a (token, dex) sub-series.
type PricePoint struct {
	DEX       string    `json:"dex"`
	Timestamp time.Time `json:"timestamp"`
	PriceUSD  float64   `json:"price"`
}

// PriceSeries groups samples by token, then by dex, with each sub-series
// sorted ascending by timestamp. Samples may arrive out of order; the sort
// restores chart order. Token and dex iteration order is deterministic
// (first-seen order of the input), so palette assignment is stable.
type PriceSeries struct {
	Tokens []string                  // first-seen token order
	DEXes  map[string][]string       // token → first-seen dex order
	Points map[string][]PricePoint   // token → all points (chart payload shape)
	ByDEX  map[string]map[string][]PricePoint // token → dex → sub-series
}

// GroupPrices builds a PriceSeries from raw samples.
func GroupPrices(samples []PriceSample) PriceSeries {
	s := PriceSeries{
		DEXes:  make(map[string][]string),
		Points: make(map[string][]PricePoint),
		ByDEX:  make(map[string]map[string][]PricePoint),
	}
	for _, sample := range samples {
		token := sample.TokenSymbol
		if _, ok := s.ByDEX[token]; !ok {
			s.Tokens = append(s.Tokens, token)
			s.ByDEX[token] = make(map[string][]PricePoint)
		}
		if _, ok := s.ByDEX[token][sample.DEXName]; !ok {
			s.DEXes[token] = append(s.DEXes[token], sample.DEXName)
		}
		p := PricePoint{DEX: sample.DEXName, Timestamp: sample.Timestamp, PriceUSD: sample.PriceUSD}
		s.ByDEX[token][sample.DEXName] = append(s.ByDEX[token][sample.DEXName], p)
	}

	// Sort every (token, dex) sub-series by timestamp, then rebuild the flat
	// per-token point list in dex order so both views agree.
	for _, token := range s.Tokens {
		for _, dex := range s.DEXes[token] {
			sub := s.ByDEX[token][dex]
			sort.SliceStable(sub, func(i, j int) bool {
				return sub[i].Timestamp.Before(sub[j].Timestamp)
			})
			s.ByDEX[token][dex] = sub
			s.Points[token] = append(s.Points[token], sub...)
		}
	}
	return s
}
