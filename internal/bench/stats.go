package bench

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"
)

// Stats summarizes per-turn latencies.
type Stats struct {
	Count int
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

// Summarize computes nearest-rank percentiles over samples.
func Summarize(samples []time.Duration) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	return Stats{
		Count: len(sorted),
		Mean:  total / time.Duration(len(sorted)),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		Max:   sorted[len(sorted)-1],
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// WriteReport prints one row per backend and memory.
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BACKEND\tMEMORY\tRUNS\tTURNS\tMEAN\tP50\tP95\tMAX")
	for _, r := range results {
		s := r.Stats
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n", r.Backend, r.Memory, r.Runs, s.Count,
			s.Mean.Round(time.Millisecond), s.P50.Round(time.Millisecond),
			s.P95.Round(time.Millisecond), s.Max.Round(time.Millisecond))
	}
	return tw.Flush()
}
