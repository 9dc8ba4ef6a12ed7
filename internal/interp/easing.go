package interp

import (
	"fmt"
	"math"
	"strings"
)

// Easing maps linear progress in [0,1] to eased progress. Implementations
// must map 0 to 0 and 1 to 1 exactly.
type Easing func(float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// ExponentialInOut accelerates exponentially into the midpoint and
// decelerates out of it.
func ExponentialInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

// ParseEasing returns the easing registered under name. An empty name is
// linear.
func ParseEasing(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "exponential", "exponential-in-out", "exp":
		return ExponentialInOut, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}
