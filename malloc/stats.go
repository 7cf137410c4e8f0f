package malloc

// Arenastats read-only snapshot of per-arena used and capacity
// counters. Values are relaxed loads, eventually consistent.
type Arenastats struct {
	Witnessused        int64
	Witnesscapacity    int64
	Polynomialused     int64
	Polynomialcapacity int64
	Scratchused        int64
	Scratchcapacity    int64
}

// Totalused sum of the three used counters.
func (stats Arenastats) Totalused() int64 {
	return stats.Witnessused + stats.Polynomialused + stats.Scratchused
}

// Totalcapacity sum of the three capacities.
func (stats Arenastats) Totalcapacity() int64 {
	return stats.Witnesscapacity + stats.Polynomialcapacity + stats.Scratchcapacity
}

// Statistics map of snapshot values, suitable for lib.Prettystats.
func (stats Arenastats) Statistics() map[string]interface{} {
	return map[string]interface{}{
		"witness.used":        stats.Witnessused,
		"witness.capacity":    stats.Witnesscapacity,
		"polynomial.used":     stats.Polynomialused,
		"polynomial.capacity": stats.Polynomialcapacity,
		"scratch.used":        stats.Scratchused,
		"scratch.capacity":    stats.Scratchcapacity,
		"total.used":          stats.Totalused(),
		"total.capacity":      stats.Totalcapacity(),
	}
}
