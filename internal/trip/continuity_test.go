package trip

import "testing"

func rec(ts string, lat, lng float64) Record {
	return Record{
		Time:      ts[0:2] + ":" + ts[2:4] + ":" + ts[4:6],
		Timestamp: ts,
		Lat:       lat,
		Lng:       lng,
	}
}

func TestSplitRunsCoversEveryRecordOnce(t *testing.T) {
	records := []Record{
		rec("080000", 1, 1),
		rec("080200", 1, 1),
		rec("080400", 1, 1),
		rec("100000", 2, 2), // > 300 s after the previous record
		rec("100100", 2, 2),
		rec("120000", 3, 3), // isolated
	}

	runs := SplitRuns(records, 300)
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	total := 0
	for _, run := range runs {
		total += len(run)
	}
	if total != len(records) {
		t.Fatalf("runs cover %d records, want %d", total, len(records))
	}

	// Maximality: adjacent runs must not be mergeable.
	for i := 1; i < len(runs); i++ {
		prev := runs[i-1][len(runs[i-1])-1]
		next := runs[i][0]
		if gap := secondsBetween(prev.Timestamp, next.Timestamp); gap <= 300 {
			t.Fatalf("runs %d and %d separated by only %d s", i-1, i, gap)
		}
	}
}

func secondsBetween(a, b string) int {
	parse := func(ts string) int {
		h := int(ts[0]-'0')*10 + int(ts[1]-'0')
		m := int(ts[2]-'0')*10 + int(ts[3]-'0')
		s := int(ts[4]-'0')*10 + int(ts[5]-'0')
		return h*3600 + m*60 + s
	}
	return parse(b) - parse(a)
}

func TestLongestRunPicksDominantTrip(t *testing.T) {
	records := []Record{
		rec("080000", 1, 1),
		rec("080200", 1, 1),
		rec("080400", 1, 1),
		rec("100000", 2, 2),
		rec("100100", 2, 2),
	}

	run := LongestRun(records, 300)
	if len(run) != 3 {
		t.Fatalf("expected longest run of 3, got %d", len(run))
	}
	if run[0].Timestamp != "080000" {
		t.Fatalf("unexpected run start: %s", run[0].Timestamp)
	}
}

func TestLongestRunTieGoesToEarliestRun(t *testing.T) {
	records := []Record{
		rec("080000", 1, 1),
		rec("080100", 1, 1),
		rec("100000", 2, 2),
		rec("100100", 2, 2),
	}

	run := LongestRun(records, 300)
	if len(run) != 2 || run[0].Timestamp != "080000" {
		t.Fatalf("tie should keep the first run, got start %s", run[0].Timestamp)
	}
}

func TestLongestRunDiscardsIsolatedReadings(t *testing.T) {
	records := []Record{
		rec("080000", 1, 1),
		rec("090000", 2, 2),
	}

	if run := LongestRun(records, 300); run != nil {
		t.Fatalf("expected no usable trip, got %d records", len(run))
	}
}

func TestLongestRunEmptyInput(t *testing.T) {
	if run := LongestRun(nil, 300); run != nil {
		t.Fatalf("expected nil for empty input, got %v", run)
	}
}
