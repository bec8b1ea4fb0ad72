package genetics

// Rand is the subset of math/rand.Rand the engine draws from. Callers seed
// and own the source; the engine itself keeps no random state between calls,
// so invocations for different animals are safe to run concurrently as long
// as each goroutine passes its own source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// uniform returns a draw from U(-1, 1).
func uniform(rng Rand) float64 {
	return rng.Float64()*2 - 1
}
