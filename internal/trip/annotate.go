package trip

import (
	"math"

	"daytrip/internal/geo"
)

// Annotation is the annotator's output: the classified timeline plus the
// derived rest, anomaly, and leg bookkeeping.
type Annotation struct {
	Timeline       []TimelineEntry
	RestStops      []RestStop
	Anomalies      []SpeedAnomaly
	RouteSegments  []RouteSegment
	TotalDistanceM float64
	Center         LatLng
}

// stepState is the accumulator threaded through the annotation fold.
type stepState struct {
	prev    Record
	totalM  float64
	resting bool
}

// advance computes one annotation step: distance/speed against the previous
// record, classification, and the accumulator for the next step. Returned
// RestStop and SpeedAnomaly pointers are nil unless the step opened a rest
// interval or tripped the speed ceiling; their indices are filled by the
// caller.
func advance(st stepState, rec Record, opts Options) (stepState, TimelineEntry, *RestStop, *SpeedAnomaly) {
	distance := geo.DistanceMeters(st.prev.Lat, st.prev.Lng, rec.Lat, rec.Lng)
	timeDiff := geo.TimeDiffSeconds(st.prev.Timestamp, rec.Timestamp)

	speed := 0.0
	if timeDiff > 0 {
		speed = distance / float64(timeDiff) * 3.6
	}

	distanceBefore := st.totalM
	st.totalM += distance

	status := StatusNormal
	var rest *RestStop
	var anomaly *SpeedAnomaly

	switch {
	case speed > opts.MaxCyclingSpeedKmh:
		status = StatusSpeedAnomaly
		anomaly = &SpeedAnomaly{
			Time:     rec.Time,
			SpeedKmh: round1(speed),
			Lat:      rec.Lat,
			Lng:      rec.Lng,
		}
		// An open rest interval ends at an anomaly without gaining a
		// second anchor.
		st.resting = false
	case distance < opts.RestDistanceM:
		status = StatusRest
		if !st.resting {
			rest = &RestStop{
				Time:           rec.Time,
				Lat:            rec.Lat,
				Lng:            rec.Lng,
				Address:        rec.Address,
				DistanceSoFarM: distanceBefore,
			}
			st.resting = true
		}
	default:
		st.resting = false
	}

	entry := TimelineEntry{
		Time:               rec.Time,
		Lat:                rec.Lat,
		Lng:                rec.Lng,
		Address:            rec.Address,
		Power:              rec.Power,
		DistanceM:          int(math.Round(distance)),
		SpeedKmh:           round1(speed),
		Status:             status,
		StationaryUntil:    rec.StationaryUntil,
		StationaryDuration: rec.StationaryDuration,
	}

	st.prev = rec
	return st, entry, rest, anomaly
}

// Annotate walks the merged record sequence once, classifying each step and
// accumulating the timeline, rest stops, anomalies, total distance, the
// geometric center, and the route legs between start, rest stops, and end.
// An empty input yields a zero Annotation; callers treat that as "no trip".
func Annotate(records []Record, opts Options) Annotation {
	if len(records) == 0 {
		return Annotation{}
	}

	var ann Annotation

	first := records[0]
	ann.Timeline = append(ann.Timeline, TimelineEntry{
		Time:               first.Time,
		Lat:                first.Lat,
		Lng:                first.Lng,
		Address:            first.Address,
		Power:              first.Power,
		Status:             StatusNormal,
		StationaryUntil:    first.StationaryUntil,
		StationaryDuration: first.StationaryDuration,
	})

	st := stepState{prev: first}
	for i := 1; i < len(records); i++ {
		var entry TimelineEntry
		var rest *RestStop
		var anomaly *SpeedAnomaly
		st, entry, rest, anomaly = advance(st, records[i], opts)

		ann.Timeline = append(ann.Timeline, entry)
		if rest != nil {
			rest.TimelineIndex = i
			rest.PointIndex = i
			ann.RestStops = append(ann.RestStops, *rest)
		}
		if anomaly != nil {
			anomaly.TimelineIndex = i
			ann.Anomalies = append(ann.Anomalies, *anomaly)
		}
	}
	ann.TotalDistanceM = st.totalM

	var sumLat, sumLng float64
	for _, rec := range records {
		sumLat += rec.Lat
		sumLng += rec.Lng
	}
	ann.Center = LatLng{
		Lat: sumLat / float64(len(records)),
		Lng: sumLng / float64(len(records)),
	}

	ann.RouteSegments = buildRouteSegments(records, ann.RestStops, ann.TotalDistanceM)

	return ann
}

// buildRouteSegments chains legs across {start, rest stops..., end}. Leg
// distance is the cumulative delta between the two waypoints, in km rounded
// to two decimals. A trip without rest stops is a single start-to-end leg.
func buildRouteSegments(records []Record, rests []RestStop, totalM float64) []RouteSegment {
	fromTime := records[0].Time
	fromAddr := records[0].Address
	fromCumM := 0.0

	segments := make([]RouteSegment, 0, len(rests)+1)
	for _, rs := range rests {
		segments = append(segments, RouteSegment{
			FromTime:    fromTime,
			FromAddress: fromAddr,
			ToTime:      rs.Time,
			ToAddress:   rs.Address,
			DistanceKm:  round2((rs.DistanceSoFarM - fromCumM) / 1000),
		})
		fromTime = rs.Time
		fromAddr = rs.Address
		fromCumM = rs.DistanceSoFarM
	}

	last := records[len(records)-1]
	segments = append(segments, RouteSegment{
		FromTime:    fromTime,
		FromAddress: fromAddr,
		ToTime:      last.Time,
		ToAddress:   last.Address,
		DistanceKm:  round2((totalM - fromCumM) / 1000),
	})

	return segments
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
