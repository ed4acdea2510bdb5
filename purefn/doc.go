// Package purefn memoizes pure numeric functions.
//
// A function is only worth tableizing if it is really pure: the same
// arguments must always give the same result, with no dependency on time,
// I/O or hidden state. Special functions such as beta.Beta qualify, which
// lets a caller treat them as a lazily filled lookup table.
//
// Features:
//   - Table: a bounded, concurrency-safe cache keyed by the exact bit
//     patterns of two float64 arguments.
//   - Sharding by xxhash with two-generation rotation per shard.
//   - Hit, miss and rotation counters exported as a prometheus.Collector.
//   - TableizeF2 wraps a func(float64, float64) float64 with a Table.
//
// See tableize_bench_test.go for benchmarks.
//
// WARNING: Do not tableize impure functions (e.g., those depending on time, I/O, etc).
package purefn
