// Package scale maps raw progress multipliers to the compressed display
// axis used for chart rendering, and back.
package scale

import (
	"math"
	"strconv"
)

// Forward maps a raw multiplier to its display coordinate. The mapping
// is identity up to 1 and logarithmic above, so the axis stays readable
// from 1x to 2000x. Continuous and strictly increasing.
func Forward(v float64) float64 {
	if v <= 1 {
		return v
	}
	return math.Log(v) + 1
}

// Inverse is the exact inverse of Forward: Inverse(Forward(v)) == v for
// all v >= 0, up to floating-point rounding.
func Inverse(x float64) float64 {
	if x <= 1 {
		return x
	}
	return math.Exp(x - 1)
}

// Anchor pairs a raw multiplier with its qualitative capability label.
type Anchor struct {
	Value float64
	Label string
}

// Anchors lists the fixed label anchors in ascending order.
func Anchors() []Anchor {
	return []Anchor{
		{2, "Weak Autonomous remote worker"},
		{3, "Autonomous remote worker"},
		{10, "Strong autonomous remote worker"},
		{100, "Superhuman genius"},
		{2000, "Superintelligence"},
	}
}

// AnchorLabel returns the label for an exact anchor value.
func AnchorLabel(v float64) (string, bool) {
	for _, a := range Anchors() {
		if a.Value == v {
			return a.Label, true
		}
	}
	return "", false
}

// FormatTick renders an axis tick for display coordinate x. The raw
// value is recovered through Inverse, rounded to two decimals, and
// suffixed with the anchor label when one matches.
func FormatTick(x float64) string {
	v := math.Round(Inverse(x)*100) / 100
	s := strconv.FormatFloat(v, 'f', -1, 64) + "x"
	if label, ok := AnchorLabel(v); ok {
		return s + " — " + label
	}
	return s
}

// TickValues returns raw multipliers worth labelling on an axis covering
// [0, maxRaw]: zero, one, every anchor, and round intermediate steps.
func TickValues(maxRaw float64) []float64 {
	candidates := []float64{0, 1, 2, 3, 5, 10, 30, 100, 300, 1000, 2000}
	for _, a := range Anchors() {
		candidates = appendUniqueSorted(candidates, a.Value)
	}

	var ticks []float64
	for _, v := range candidates {
		if v <= maxRaw {
			ticks = append(ticks, v)
		}
	}
	if len(ticks) == 0 || ticks[len(ticks)-1] < maxRaw {
		ticks = append(ticks, maxRaw)
	}
	return ticks
}

func appendUniqueSorted(values []float64, v float64) []float64 {
	for i, existing := range values {
		if existing == v {
			return values
		}
		if existing > v {
			values = append(values, 0)
			copy(values[i+1:], values[i:])
			values[i] = v
			return values
		}
	}
	return append(values, v)
}
