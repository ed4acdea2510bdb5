// Command betatab prints the beta function B(a, b) over a grid of points.
//
// The grid, the memo table and logging are configured through BETATAB_*
// environment variables; see Config. Rows go to stdout, logs to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/on-the-ground/betafn/beta"
	"github.com/on-the-ground/betafn/internal/logging"
	"github.com/on-the-ground/betafn/purefn"
	"github.com/on-the-ground/betafn/tabulate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "betatab:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.loggingConfig())
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	table := purefn.NewTable("beta", cfg.MemoSize, purefn.WithShards(cfg.MemoShards))
	reg := prometheus.NewRegistry()
	if err := reg.Register(table); err != nil {
		return fmt.Errorf("failed to register memo table: %w", err)
	}

	report, err := tabulate.Run(ctx, cfg.grid(), purefn.TableizeF2(beta.Beta, table), logger)
	if err != nil {
		return err
	}
	if _, err := report.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logMetrics(logger, reg)
	return nil
}

func logMetrics(logger *zap.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		logger.Warn("failed to gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			logger.Debug("metric",
				zap.String("name", mf.GetName()),
				zap.Float64("value", m.GetCounter().GetValue()),
			)
		}
	}
}
