package systems

// RandomSource - источник случайных чисел в [0, 1).
// *rand.Rand подходит; в тестах подставляется детерминированная последовательность.
type RandomSource interface {
	Float64() float64
}

// uniform - равномерное значение в [lo, hi)
func uniform(r RandomSource, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// spread - равномерное значение в [-width/2, width/2)
func spread(r RandomSource, width float64) float64 {
	return (r.Float64() - 0.5) * width
}
