// Package beta evaluates the beta function
//
//	B(a, b) = Γ(a)Γ(b) / Γ(a+b)
//
// with the Lanczos approximation, which never forms the three gamma values
// and so stays finite where Γ(a+b) alone would overflow.
package beta

import (
	"math"

	"github.com/on-the-ground/betafn/lanczos"
)

// Epsilon is the difference between 1 and the next representable float64.
const Epsilon = 2.220446049250313e-16

const (
	// above this cgh the power term is split so agh*bgh and cgh*cgh cannot overflow
	splitPowerAbove = 1e10

	// the log1p form of the power term needs a > log1pMinA and |b*(a-0.5-b)| < cgh*log1pMaxRatio
	log1pMinA     = 100
	log1pMaxRatio = 100
)

// Beta returns B(a, b) for a, b >= 0.
//
// Special cases are:
//
//	Beta(a, b) = NaN if a < 0 or b < 0
//	Beta(a, 1) = 1/a
//	Beta(1, b) = 1/b
//	Beta(a, b) = Γ(b) if b < Epsilon and a+b == a
//	Beta(a, b) = Γ(a) if a < Epsilon and a+b == b
//
// NaN and Inf arising in the underlying math functions are returned unchanged.
// Beta is a pure function and safe for concurrent use.
func Beta(a, b float64) float64 {
	if a < 0 || b < 0 {
		return math.NaN()
	}
	if b == 1 {
		return 1 / a
	}
	if a == 1 {
		return 1 / b
	}

	c := a + b
	switch {
	case c == a && b < Epsilon:
		return math.Gamma(b)
	case c == b && a < Epsilon:
		return math.Gamma(a)
	}

	// Shift a and b above 1 using B(a, b) = B(a+1, b) * (a+b)/a.
	prefix := 1.0
	if a < 1 {
		prefix *= c / a
		c++
		a++
	}
	if b < 1 {
		prefix *= c / b
		c++
		b++
	}
	if a < b {
		a, b = b, a
	}

	agh := a + lanczos.G - 0.5
	bgh := b + lanczos.G - 0.5
	cgh := c + lanczos.G - 0.5
	result := lanczos.SumExpGScaled(a) * lanczos.SumExpGScaled(b) / lanczos.SumExpGScaled(c)

	ambh := a - 0.5 - b
	if math.Abs(b*ambh) < cgh*log1pMaxRatio && a > log1pMinA {
		// agh/cgh is close to 1: compute (1+x)^y instead.
		result *= math.Exp(ambh * math.Log1p(-b/cgh))
	} else {
		result *= math.Pow(agh/cgh, a-0.5-b)
	}
	if cgh > splitPowerAbove {
		result *= math.Pow((agh/cgh)*(bgh/cgh), b)
	} else {
		result *= math.Pow((agh*bgh)/(cgh*cgh), b)
	}
	result *= math.Sqrt(math.E / bgh)

	return result * prefix
}
