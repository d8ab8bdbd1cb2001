package valuation

import "math/rand"

// DefaultTrendPoints is the sparkline length used when callers do not
// ask for a specific point count.
const DefaultTrendPoints = 10

// trendVolatility scales the noise band applied to interpolated points:
// each point is perturbed by at most half of price * trendVolatility.
const trendVolatility = 0.02

// SyntheticTrend produces a short indicative price path for a symbol
// when only its current price and percent change are known. It is a
// presentation aid for preview sparklines; the output is illustrative,
// not historical, and must never feed valuation math.
//
// The path interpolates linearly from a back-computed start price
// (currentPrice discounted by changePercent) to currentPrice, with
// bounded random noise on every point except the last, which is forced
// to equal currentPrice exactly so the series always terminates at the
// true price regardless of noise.
//
// The rand source is injected so tests can seed it for determinism;
// production callers pass any source, typically time-seeded.
func SyntheticTrend(currentPrice, changePercent float64, points int, rng *rand.Rand) []float64 {
	if points <= 0 {
		points = DefaultTrendPoints
	}
	if points == 1 {
		return []float64{currentPrice}
	}

	startPrice := currentPrice
	if changePercent != 0 {
		startPrice = currentPrice / (1 + changePercent/100)
	}

	volatility := currentPrice * trendVolatility
	path := make([]float64, 0, points)
	for i := 0; i < points-1; i++ {
		progress := float64(i) / float64(points-1)
		trend := startPrice + (currentPrice-startPrice)*progress
		noise := (rng.Float64() - 0.5) * volatility
		path = append(path, trend+noise)
	}
	path = append(path, currentPrice)
	return path
}
