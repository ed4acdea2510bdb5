package purefn

// TableizeF2 memoizes pureFn in table. Concurrent first calls with the same
// arguments may each evaluate pureFn; they store the same value.
func TableizeF2(
	pureFn func(float64, float64) float64,
	table *Table,
) func(float64, float64) float64 {
	return func(a, b float64) float64 {
		if v, ok := table.Load(a, b); ok {
			return v
		}
		v := pureFn(a, b)
		table.Store(a, b, v)
		return v
	}
}
