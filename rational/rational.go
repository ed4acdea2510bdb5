// Package rational evaluates rational functions, the ratio of two polynomials
// sharing the same variable and the same number of coefficients.
package rational

// Float is the set of floating-point types a rational function can be evaluated over.
type Float interface {
	~float32 | ~float64
}

// Evaluate returns sum(num[i]*z^i) / sum(denom[i]*z^i) using Horner's method.
//
// For z <= 1 the polynomials are accumulated from the highest-degree
// coefficient down. For z > 1 the variable is replaced by 1/z and the
// accumulation runs from the lowest-degree coefficient up, so the multiplier
// never exceeds 1 in magnitude and large z does not overflow the partial sums.
//
// num and denom must have the same non-zero length. NaN and Inf produced by
// the arithmetic, e.g. a zero denominator, are returned as is.
//
// Each product is converted to T before the addition, which keeps the
// compiler from fusing the step into an FMA and makes results identical on
// every architecture.
func Evaluate[T Float](num, denom []T, z T) T {
	count := len(num)
	var s1, s2 T
	if z <= 1 {
		s1 = num[count-1]
		s2 = denom[count-1]
		for i := count - 2; i >= 0; i-- {
			s1 = T(s1*z) + num[i]
			s2 = T(s2*z) + denom[i]
		}
		return s1 / s2
	}

	z = 1 / z
	s1 = num[0]
	s2 = denom[0]
	for i := 1; i < count; i++ {
		s1 = T(s1*z) + num[i]
		s2 = T(s2*z) + denom[i]
	}
	return s1 / s2
}

// Rational is a rational function bound to a fixed pair of coefficient tables.
// It is immutable and safe for concurrent use.
type Rational[T Float] struct {
	num   []T
	denom []T
}

// New binds num and denom, the coefficients of the z^i terms at index i.
// Both slices are copied. It panics if their lengths differ or are zero.
func New[T Float](num, denom []T) Rational[T] {
	if len(num) == 0 {
		panic("rational: coefficient tables must not be empty")
	}
	if len(num) != len(denom) {
		panic("rational: numerator and denominator must be equal in size")
	}
	return Rational[T]{
		num:   append([]T(nil), num...),
		denom: append([]T(nil), denom...),
	}
}

// Eval evaluates the bound rational function at z.
func (r Rational[T]) Eval(z T) T {
	return Evaluate(r.num, r.denom, z)
}

func (r Rational[T]) Len() int {
	return len(r.num)
}
