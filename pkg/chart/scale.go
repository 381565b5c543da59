package chart

import (
	"gonum.org/v1/gonum/floats"
)

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale spans the extent of values. An empty slice gives the
// domain [0, 0], which maps everything to the middle of the range.
func NewLinearScale(values []float64, r0, r1 float64) LinearScale {
	s := LinearScale{Range: [2]float64{r0, r1}}
	if len(values) > 0 {
		s.Domain = [2]float64{floats.Min(values), floats.Max(values)}
	}
	return s
}

// Map projects v into the range.
func (s LinearScale) Map(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	t := (v - s.Domain[0]) / span
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// TimeScale maps unix-millisecond timestamps onto a pixel range.
type TimeScale struct {
	linear LinearScale
}

// NewTimeScale spans the extent of times.
func NewTimeScale(times []int64, r0, r1 float64) TimeScale {
	vs := make([]float64, len(times))
	for i, t := range times {
		vs[i] = float64(t)
	}
	return TimeScale{linear: NewLinearScale(vs, r0, r1)}
}

// Map projects t into the range.
func (s TimeScale) Map(t int64) float64 {
	return s.linear.Map(float64(t))
}

// Domain returns the first and last timestamp covered by the scale.
func (s TimeScale) Domain() (int64, int64) {
	return int64(s.linear.Domain[0]), int64(s.linear.Domain[1])
}
