package view

import (
	"fmt"

	"github.com/shadowlynx/monitor/internal/domain"
)

// chartPalette is the base color per token, cycled in token order. The
// assignment is deterministic: the same series input always yields the
// same colors.
var chartPalette = []string{
	"#4e79a7", // blue
	"#f28e2b", // orange
	"#59a245", // green
	"#e15759", // red
	"#b07aa1", // purple
	"#76b7b2", // teal
	"#edc948", // yellow
}

// shadeStep is how far each additional dex series of the same token is
// blended toward white, so same-token lines read as one visual group.
const shadeStep = 0.22

// maxShade caps the blend so late series stay visible.
const maxShade = 0.66

// ChartSeries is one rendered line: a (token, dex) sub-series with its
// assigned color.
type ChartSeries struct {
	Token  string       `json:"token"`
	DEX    string       `json:"dex"`
	Color  string       `json:"color"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint is one rendered sample: epoch milliseconds and a 2dp price.
type ChartPoint struct {
	TimestampMs int64   `json:"timestamp"`
	Price       float64 `json:"price"`
}

// BuildChart renders a grouped price series as one line per (token, dex).
// The token's palette slot cycles by first-seen token order; each further
// dex of the same token takes a progressively lighter shade of that slot.
func BuildChart(series domain.PriceSeries) []ChartSeries {
	var lines []ChartSeries
	for ti, token := range series.Tokens {
		base := chartPalette[ti%len(chartPalette)]
		for di, dex := range series.DEXes[token] {
			points := series.ByDEX[token][dex]
			line := ChartSeries{
				Token:  token,
				DEX:    dex,
				Color:  shade(base, di),
				Points: make([]ChartPoint, 0, len(points)),
			}
			for _, p := range points {
				line.Points = append(line.Points, ChartPoint{
					TimestampMs: p.Timestamp.UnixMilli(),
					Price:       RoundUSD(p.PriceUSD),
				})
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// shade blends a hex color toward white by step index. Index 0 returns the
// base color unchanged.
func shade(hex string, index int) string {
	if index == 0 {
		return hex
	}
	factor := shadeStep * float64(index)
	if factor > maxShade {
		factor = maxShade
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return hex
	}
	blend := func(c int) int {
		return c + int(float64(255-c)*factor)
	}
	return fmt.Sprintf("#%02x%02x%02x", blend(r), blend(g), blend(b))
}
