package trip

import (
	"math"
	"testing"
)

func TestAnnotateClassifiesRestAndAnomaly(t *testing.T) {
	// ~5.5 m in 10 s (~2 km/h), then ~217 m in 1 s (~780 km/h).
	records := []Record{
		rec("100000", 0, 0),
		rec("100010", 0, 0.00005),
		rec("100011", 0, 0.002),
	}

	ann := Annotate(records, DefaultOptions())

	if len(ann.Timeline) != 3 {
		t.Fatalf("expected 3 timeline entries, got %d", len(ann.Timeline))
	}
	want := []string{StatusNormal, StatusRest, StatusSpeedAnomaly}
	for i, entry := range ann.Timeline {
		if entry.Status != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], entry.Status)
		}
	}

	if len(ann.RestStops) != 1 {
		t.Fatalf("expected 1 rest stop, got %d", len(ann.RestStops))
	}
	rs := ann.RestStops[0]
	if rs.TimelineIndex != 1 {
		t.Fatalf("rest stop anchored at index %d, want 1", rs.TimelineIndex)
	}
	if rs.DistanceSoFarM != 0 {
		t.Fatalf("rest stop must capture distance before its step, got %v", rs.DistanceSoFarM)
	}

	if len(ann.Anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(ann.Anomalies))
	}
	if ann.Anomalies[0].TimelineIndex != 2 {
		t.Fatalf("anomaly at index %d, want 2", ann.Anomalies[0].TimelineIndex)
	}
	if ann.Anomalies[0].SpeedKmh < 700 {
		t.Fatalf("anomaly speed too low: %v", ann.Anomalies[0].SpeedKmh)
	}
}

func TestAnnotateOpenRestIntervalHasSingleAnchor(t *testing.T) {
	records := []Record{
		rec("100000", 0, 0),
		rec("100100", 0, 0.0001), // ~11 m in 60 s: rest
		rec("100200", 0, 0.0002), // still resting, same interval
		rec("100300", 0, 0.0003), // still resting
		rec("100400", 0, 0.007),  // ~745 m at ~45 km/h: normal, closes the interval
		rec("100500", 0, 0.0071), // rest again: new interval
	}

	ann := Annotate(records, DefaultOptions())
	if len(ann.RestStops) != 2 {
		t.Fatalf("expected 2 rest stops, got %d", len(ann.RestStops))
	}
	if ann.RestStops[0].TimelineIndex != 1 || ann.RestStops[1].TimelineIndex != 5 {
		t.Fatalf("unexpected rest anchors: %d, %d",
			ann.RestStops[0].TimelineIndex, ann.RestStops[1].TimelineIndex)
	}
}

func TestAnnotateRouteSegmentCount(t *testing.T) {
	records := []Record{
		rec("100000", 0, 0),
		rec("100100", 0, 0.005),
		rec("100200", 0, 0.0051), // rest
		rec("100300", 0, 0.01),
		rec("100400", 0, 0.0101), // rest
		rec("100500", 0, 0.015),
	}

	ann := Annotate(records, DefaultOptions())
	if len(ann.RouteSegments) != len(ann.RestStops)+1 {
		t.Fatalf("expected %d segments, got %d", len(ann.RestStops)+1, len(ann.RouteSegments))
	}

	// Leg distances must sum back to the total, modulo per-leg rounding.
	var legSum float64
	for _, seg := range ann.RouteSegments {
		legSum += seg.DistanceKm
	}
	if math.Abs(legSum-ann.TotalDistanceM/1000) > 0.02*float64(len(ann.RouteSegments)) {
		t.Fatalf("legs sum to %.3f km, total is %.3f km", legSum, ann.TotalDistanceM/1000)
	}
}

func TestAnnotateNoRestStopsSingleLeg(t *testing.T) {
	records := []Record{
		rec("100000", 0, 0),
		rec("100100", 0, 0.005),
		rec("100200", 0, 0.01),
	}

	ann := Annotate(records, DefaultOptions())
	if len(ann.RestStops) != 0 {
		t.Fatalf("expected no rest stops, got %d", len(ann.RestStops))
	}
	if len(ann.RouteSegments) != 1 {
		t.Fatalf("expected one start-to-end leg, got %d", len(ann.RouteSegments))
	}
	seg := ann.RouteSegments[0]
	if seg.FromTime != "10:00:00" || seg.ToTime != "10:02:00" {
		t.Fatalf("unexpected leg endpoints: %s -> %s", seg.FromTime, seg.ToTime)
	}
}

func TestAnnotateZeroTimeDeltaSpeedIsZero(t *testing.T) {
	records := []Record{
		rec("100000", 0, 0),
		rec("100000", 0, 0.01), // same timestamp, ~1.1 km apart
	}

	ann := Annotate(records, DefaultOptions())
	if got := ann.Timeline[1].SpeedKmh; got != 0 {
		t.Fatalf("zero time delta must yield speed 0, got %v", got)
	}
	// The step still counts as movement, not an anomaly.
	if ann.Timeline[1].Status != StatusNormal {
		t.Fatalf("expected normal status, got %s", ann.Timeline[1].Status)
	}
	if ann.TotalDistanceM < 1000 {
		t.Fatalf("distance must still accumulate, got %v", ann.TotalDistanceM)
	}
}

func TestAnnotateCenterIsMeanOfPoints(t *testing.T) {
	records := []Record{
		rec("100000", 10, 20),
		rec("100100", 20, 40),
	}

	ann := Annotate(records, DefaultOptions())
	if ann.Center.Lat != 15 || ann.Center.Lng != 30 {
		t.Fatalf("unexpected center: %+v", ann.Center)
	}
}

func TestAnnotateEmptyInput(t *testing.T) {
	ann := Annotate(nil, DefaultOptions())
	if len(ann.Timeline) != 0 || len(ann.RouteSegments) != 0 {
		t.Fatalf("empty input must produce an empty annotation: %+v", ann)
	}
}

func TestAdvanceAccumulatesUnconditionally(t *testing.T) {
	opts := DefaultOptions()
	st := stepState{prev: rec("100000", 0, 0)}

	st, entry, restStop, _ := advance(st, rec("100010", 0, 0.00005), opts)
	if entry.Status != StatusRest {
		t.Fatalf("expected rest step, got %s", entry.Status)
	}
	if restStop == nil {
		t.Fatalf("first rest step must open an interval")
	}
	if st.totalM <= 0 {
		t.Fatalf("rest step distance must still accumulate, got %v", st.totalM)
	}

	// Second rest step continues the open interval without a new anchor.
	st, entry, restStop, _ = advance(st, rec("100020", 0, 0.0001), opts)
	if entry.Status != StatusRest || restStop != nil {
		t.Fatalf("open interval must not gain a second anchor: %s %v", entry.Status, restStop)
	}
}
