// Package tabulate evaluates a two-argument function over a rectangular grid
// of evenly spaced points and reports the results.
package tabulate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidGrid is returned for a grid that cannot be laid out.
var ErrInvalidGrid = fmt.Errorf("invalid grid")

// Config describes the grid. Each axis runs from Min to Max inclusive in Num
// evenly spaced points.
type Config struct {
	AMin, AMax float64
	ANum       int
	BMin, BMax float64
	BNum       int

	// Symmetric evaluates fn(max(a,b), min(a,b)) so that mirrored points get
	// identical values and a memoized fn is hit for the mirror.
	Symmetric bool
}

func (c Config) Validate() error {
	if err := validateAxis("a", c.AMin, c.AMax, c.ANum); err != nil {
		return err
	}
	return validateAxis("b", c.BMin, c.BMax, c.BNum)
}

func validateAxis(name string, lo, hi float64, n int) error {
	switch {
	case n < 1:
		return fmt.Errorf("%w: %s axis needs at least one point, got %d", ErrInvalidGrid, name, n)
	case isNonFinite(lo) || isNonFinite(hi):
		return fmt.Errorf("%w: %s axis bounds must be finite, got [%v, %v]", ErrInvalidGrid, name, lo, hi)
	case lo > hi:
		return fmt.Errorf("%w: %s axis min %v exceeds max %v", ErrInvalidGrid, name, lo, hi)
	case n == 1 && lo != hi:
		return fmt.Errorf("%w: %s axis with one point needs min == max, got [%v, %v]", ErrInvalidGrid, name, lo, hi)
	}
	return nil
}

func axis(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

type Row struct {
	A, B  float64
	Value float64
}

// Report is the outcome of a Run.
type Report struct {
	RunID uuid.UUID
	Span  timespan.TimeSpan
	Rows  []Row

	// NonFinite counts rows whose value is NaN or ±Inf.
	NonFinite int
}

// Run evaluates fn at every grid point, row-major over a then b.
// It stops with ctx.Err() if ctx is done before a row starts.
func Run(
	ctx context.Context,
	cfg Config,
	fn func(a, b float64) float64,
	logger *zap.Logger,
) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	report := Report{RunID: uuid.New()}
	logger = logger.With(zap.Stringer("run_id", report.RunID))

	as := axis(cfg.AMin, cfg.AMax, cfg.ANum)
	bs := axis(cfg.BMin, cfg.BMax, cfg.BNum)
	report.Rows = make([]Row, 0, len(as)*len(bs))
	logger.Debug("tabulating", zap.Int("a_points", len(as)), zap.Int("b_points", len(bs)))

	start := time.Now()
	for _, a := range as {
		if err := ctx.Err(); err != nil {
			logger.Warn("tabulation cancelled", zap.Int("rows", len(report.Rows)), zap.Error(err))
			return Report{}, err
		}
		for _, b := range bs {
			var v float64
			if cfg.Symmetric {
				v = fn(max(a, b), min(a, b))
			} else {
				v = fn(a, b)
			}
			if isNonFinite(v) {
				report.NonFinite++
			}
			report.Rows = append(report.Rows, Row{A: a, B: b, Value: v})
		}
	}
	report.Span = timespan.BetweenTimes(start, time.Now())

	logger.Info("tabulated",
		zap.Int("rows", len(report.Rows)),
		zap.Int("non_finite", report.NonFinite),
		zap.Duration("elapsed", report.Span.Duration()),
	)
	return report, nil
}

// WriteTo writes one line per row in the form "a: 2, b: 3, f(a,b): 0.08333333333333333".
func (r Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	buf := make([]byte, 0, 96)
	for _, row := range r.Rows {
		buf = buf[:0]
		buf = append(buf, "a: "...)
		buf = strconv.AppendFloat(buf, row.A, 'g', -1, 64)
		buf = append(buf, ", b: "...)
		buf = strconv.AppendFloat(buf, row.B, 'g', -1, 64)
		buf = append(buf, ", f(a,b): "...)
		buf = strconv.AppendFloat(buf, row.Value, 'g', -1, 64)
		buf = append(buf, '\n')

		n, err := bw.Write(buf)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
