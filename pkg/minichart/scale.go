package minichart

import "math"

// Thresholds for snapping a raw step to 1, 2, 5 or 10 times a power of ten.
var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a round step for roughly count ticks over
// [start, stop]. Steps below one are returned as the negated inverse so
// that fractional steps stay exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// NiceMax extends a zero-based domain [0, m] so its upper bound lands on a
// round tick for roughly count ticks.
func NiceMax(m float64, count int) float64 {
	start, stop := 0.0, m
	if stop <= start || count <= 0 {
		return stop
	}

	var prestep float64
	for range 10 {
		step := tickIncrement(start, stop, count)
		switch {
		case step == prestep:
			return stop
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return stop
		}
		prestep = step
	}
	return stop
}

// band is an ordinal scale over [0, n) mapped onto [lo, hi] with inner
// padding between bands and none at the edges.
type band struct {
	lo        float64
	step      float64
	bandwidth float64
}

func newBand(n int, lo, hi, paddingInner float64) band {
	if n <= 0 {
		return band{lo: lo}
	}
	step := (hi - lo) / math.Max(1, float64(n)-paddingInner)
	return band{lo: lo, step: step, bandwidth: step * (1 - paddingInner)}
}

func (b band) at(i int) float64 {
	return b.lo + float64(i)*b.step
}

// TickInterval returns how many bars separate axis ticks so that at most
// maxTicks are drawn.
func TickInterval(n, maxTicks int) int {
	if maxTicks <= 0 {
		return 1
	}
	return max(1, (n+maxTicks-1)/maxTicks)
}
