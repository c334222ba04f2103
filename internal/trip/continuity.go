package trip

import "daytrip/internal/geo"

// SplitRuns partitions time-ordered records into maximal runs where every
// adjacent pair is at most maxGapSec apart.
func SplitRuns(records []Record, maxGapSec int) [][]Record {
	if len(records) == 0 {
		return nil
	}

	var runs [][]Record
	current := []Record{records[0]}

	for i := 1; i < len(records); i++ {
		gap := geo.TimeDiffSeconds(records[i-1].Timestamp, records[i].Timestamp)
		if gap <= maxGapSec {
			current = append(current, records[i])
			continue
		}
		runs = append(runs, current)
		current = []Record{records[i]}
	}
	runs = append(runs, current)

	return runs
}

// LongestRun returns the dominant continuous trip of the day: the run with
// the most records among runs of length >= 2. Isolated single readings are
// initialization noise and never become candidates. Returns nil when no run
// survives, signaling "no usable trip for this day". Ties go to the earliest
// run (comparison is strict greater-than).
func LongestRun(records []Record, maxGapSec int) []Record {
	var best []Record
	for _, run := range SplitRuns(records, maxGapSec) {
		if len(run) < 2 {
			continue
		}
		if len(run) > len(best) {
			best = run
		}
	}
	return best
}
