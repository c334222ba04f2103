package trip

import "daytrip/internal/geo"

// MergeStationary collapses consecutive near-duplicate positions into single
// waypoints carrying dwell metadata. Each input record is compared against
// the most recently emitted record, not its original predecessor: a slow
// drift of sub-threshold steps stays one stationary period even when the
// cumulative drift exceeds the threshold. Single left-to-right pass, no
// backtracking; the input is not mutated.
func MergeStationary(records []Record, minMovementM float64) []Record {
	if len(records) == 0 {
		return nil
	}

	out := make([]Record, 0, len(records))
	out = append(out, records[0])

	for _, rec := range records[1:] {
		last := &out[len(out)-1]

		if rec.MissingPosition || last.MissingPosition {
			// No distance to compare against; emit and restart merging
			// from this record.
			out = append(out, rec)
			continue
		}

		moved := geo.DistanceMeters(last.Lat, last.Lng, rec.Lat, rec.Lng)
		if moved < minMovementM {
			last.StationaryUntil = rec.Time
			last.StationaryDuration++
			continue
		}

		out = append(out, rec)
	}

	return out
}
