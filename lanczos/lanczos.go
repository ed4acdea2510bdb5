// Package lanczos holds the Lanczos approximation used by the special
// functions in this module: the g = 10.900511 rational table, tuned for
// 53-bit double precision.
package lanczos

import "github.com/on-the-ground/betafn/rational"

// G is the Lanczos shift the coefficient table was computed for.
const G = 10.90051099999999983936049829935654997826

var num = [...]float64{
	709811.662581657956893540610814842699825,
	679979.847415722640161734319823103390728,
	293136.785721159725251629480984140341656,
	74887.5403291467179935942448101441897121,
	12555.29058241386295096255111537516768137,
	1443.42992444170669746078056942194198252,
	115.2419459613734722083208906727972935065,
	6.30923920573262762719523981992008976989,
	0.2266840463022436475495508977579735223818,
	0.004826466289237661857584712046231435101741,
	0.4624429436045378766270459638520555557321e-4,
}

var denom = [...]float64{
	0,
	362880,
	1026576,
	1172700,
	723680,
	269325,
	63273,
	9450,
	870,
	45,
	1,
}

var expGScaled = rational.New(num[:], denom[:])

// SumExpGScaled is the Lanczos sum scaled by exp(G). For z > 0,
//
//	Γ(z) = SumExpGScaled(z) * (z+G-0.5)^(z-0.5) / exp(z-0.5)
var SumExpGScaled = expGScaled.Eval

// Coefficients returns copies of the numerator and denominator tables.
func Coefficients() (n, d []float64) {
	return append([]float64(nil), num[:]...), append([]float64(nil), denom[:]...)
}
