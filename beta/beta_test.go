package beta_test

import (
	"math"
	"sync"
	"testing"

	"github.com/on-the-ground/betafn/beta"
	"github.com/on-the-ground/betafn/lanczos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mathext"
)

func assertRel(t *testing.T, want, got, tol float64, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, scalar.EqualWithinRel(got, want, tol), "got %v, want %v (%v)", got, want, msgAndArgs)
}

var grid = []float64{1e-3, 0.3, 0.5, 0.7, 1.5, 2, 2.25, 7, 12.5, 30}

func TestBeta_KnownValues(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{2, 3, 1.0 / 12},
		{0.5, 0.5, math.Pi},
		{0.5, 1.5, math.Pi / 2},
		{2.5, 1.5, math.Pi / 16},
		{3, 3, 1.0 / 30},
		{10, 2, 1.0 / 110},
	}
	for _, tt := range tests {
		assertRel(t, tt.want, beta.Beta(tt.a, tt.b), 1e-13, tt.a, tt.b)
	}
}

func TestBeta_UnitArgument(t *testing.T) {
	assert.Equal(t, 0.2, beta.Beta(5, 1))
	assert.Equal(t, 0.25, beta.Beta(1, 4))
	for _, x := range []float64{0, 1e-300, 0.25, 3, 1e10} {
		assert.Equal(t, 1/x, beta.Beta(x, 1))
		assert.Equal(t, 1/x, beta.Beta(1, x))
	}
}

func TestBeta_NegativeArgumentIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(beta.Beta(-1, 2)))
	assert.True(t, math.IsNaN(beta.Beta(2, -1)))
	assert.True(t, math.IsNaN(beta.Beta(-0.5, -0.5)))
	assert.True(t, math.IsNaN(beta.Beta(math.Inf(-1), 1)))
}

func TestBeta_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(beta.Beta(math.NaN(), 2)))
	assert.True(t, math.IsNaN(beta.Beta(2, math.NaN())))
}

func TestBeta_NegligibleArgumentFallsBackToGamma(t *testing.T) {
	tiny := 1e-17
	require.Less(t, tiny, beta.Epsilon)

	assert.Equal(t, math.Gamma(tiny), beta.Beta(2, tiny))
	assert.Equal(t, math.Gamma(tiny), beta.Beta(tiny, 2))
	assert.True(t, math.IsInf(beta.Beta(0, 3), 1))
}

func TestBeta_Symmetric(t *testing.T) {
	for _, a := range grid {
		for _, b := range grid {
			assertRel(t, beta.Beta(a, b), beta.Beta(b, a), 1e-13, a, b)
		}
	}
}

// B(a, b) * a = B(a+1, b) * (a+b)
func TestBeta_Recurrence(t *testing.T) {
	for _, a := range grid[1:] {
		for _, b := range grid[1:] {
			ab := beta.Beta(a, b)
			assertRel(t, ab*a, (a+b)*beta.Beta(a+1, b), 1e-12, a, b)
			assertRel(t, ab*b, (a+b)*beta.Beta(a, b+1), 1e-12, a, b)
		}
	}
}

func TestBeta_AgreesWithLogGamma(t *testing.T) {
	for _, a := range grid[1:] {
		for _, b := range grid[1:] {
			assertRel(t, mathext.Beta(a, b), beta.Beta(a, b), 1e-11, a, b)
		}
	}
}

func TestBeta_LargeArgumentsStayFinite(t *testing.T) {
	naive := math.Gamma(1e5) * math.Gamma(1e5) / math.Gamma(2e5)
	assert.True(t, math.IsNaN(naive))

	got := beta.Beta(1e5, 1e5)
	assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
	assert.GreaterOrEqual(t, got, 0.0)

	got = beta.Beta(200, 200)
	assert.InEpsilon(t, mathext.Lbeta(200, 200), math.Log(got), 1e-12)
}

// B(a, 3) = 2 / (a(a+1)(a+2))
func betaThree(a float64) float64 {
	return 2 / (a * (a + 1) * (a + 2))
}

func TestBeta_ContinuousAcrossLog1pThreshold(t *testing.T) {
	below := beta.Beta(100, 3)
	above := beta.Beta(math.Nextafter(100, 101), 3)

	assertRel(t, betaThree(100), below, 1e-12)
	assertRel(t, betaThree(math.Nextafter(100, 101)), above, 1e-12)
	assertRel(t, below, above, 1e-12)
	assertRel(t, betaThree(150), beta.Beta(150, 3), 1e-12)
}

func TestBeta_ContinuousAcrossLog1pRatioThreshold(t *testing.T) {
	// |b*(a-0.5-b)| == (a+b+G-0.5)*100 at this a when b = 200
	b := 200.0
	edge := (100*(b+lanczos.G-0.5) + b*(0.5+b)) / (b - 100)
	below := beta.Beta(math.Nextafter(edge, math.Inf(-1)), b)
	above := beta.Beta(math.Nextafter(edge, math.Inf(1)), b)

	assertRel(t, below, above, 1e-12)
	assert.InEpsilon(t, mathext.Lbeta(edge, b), math.Log(below), 1e-12)
	assert.InEpsilon(t, mathext.Lbeta(edge, b), math.Log(above), 1e-12)
}

func TestBeta_AgreesWithLogGammaForLargeA(t *testing.T) {
	// a > 100 with b large enough to take the direct power path
	for _, ab := range [][2]float64{{1000, 200}, {700, 300}, {1500, 150}} {
		got := beta.Beta(ab[0], ab[1])
		require.Positive(t, got)
		assert.InEpsilon(t, mathext.Lbeta(ab[0], ab[1]), math.Log(got), 1e-12, "a=%v b=%v", ab[0], ab[1])
	}
}

func TestBeta_ContinuousAcrossSplitPowerThreshold(t *testing.T) {
	// c + G - 0.5 crosses 1e10 at this a when b = 2
	edge := 1e10 - lanczos.G + 0.5 - 2
	for _, a := range []float64{edge * (1 - 1e-9), edge, edge * (1 + 1e-9)} {
		assertRel(t, 1/(a*(a+1)), beta.Beta(a, 2), 1e-11, a)
	}
	assertRel(t, beta.Beta(edge*(1-1e-9), 2), beta.Beta(edge*(1+1e-9), 2), 1e-8)
}

func TestBeta_ConcurrentCallsAgree(t *testing.T) {
	want := make([]float64, len(grid))
	for i, a := range grid {
		want[i] = beta.Beta(a, 2.5)
	}

	var wg sync.WaitGroup
	got := make([][]float64, 8)
	for w := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[w] = make([]float64, len(grid))
			for i, a := range grid {
				got[w][i] = beta.Beta(a, 2.5)
			}
		}()
	}
	wg.Wait()

	for _, g := range got {
		assert.Equal(t, want, g)
	}
}
