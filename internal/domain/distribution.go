package domain

// Shares converts grouped counts into percentage shares. For non-empty
// input the exact shares sum to 100; rounding is applied only at
// presentation, never accumulated here. Empty input yields an empty map.
func Shares(counts map[string]int) map[string]float64 {
	shares := make(map[string]float64, len(counts))

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return shares
	}
	for value, c := range counts {
		shares[value] = float64(c) / float64(total) * 100
	}
	return shares
}
