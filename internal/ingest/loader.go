package ingest

import (
	"log"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"daytrip/internal/trip"
)

// Loader reads raw fix payloads from a day-partitioned directory tree:
// <Root>/<YYYYMMDD>/<HHMMSS>.json, each file a JSON array whose first
// element is the meaningful fix.
type Loader struct {
	Root string
}

// ListDates returns every date (YYYYMMDD) that has a raw data directory,
// oldest first.
func (l *Loader) ListDates() ([]string, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, err
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() && isDigits(entry.Name(), 8) {
			dates = append(dates, entry.Name())
		}
	}
	// os.ReadDir sorts by filename, which is chronological here.
	return dates, nil
}

// LoadDay returns the day's records ordered oldest first. Filenames are
// HHMMSS timestamps, so lexicographic directory order is time order.
// Payloads that fail to decode or lack a positioned first element are
// dropped with a diagnostic; an empty day is not an error. A missing day
// directory surfaces as the underlying fs.ErrNotExist.
func (l *Loader) LoadDay(date string) ([]trip.Record, error) {
	dayDir := filepath.Join(l.Root, date)
	entries, err := os.ReadDir(dayDir)
	if err != nil {
		return nil, err
	}

	var records []trip.Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		ts := name[:len(name)-len(".json")]
		if !isDigits(ts, 6) {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dayDir, name))
		if err != nil {
			log.Printf("read fix %s/%s: %v", date, name, err)
			continue
		}

		var fixes []trip.Fix
		if err := json.Unmarshal(raw, &fixes); err != nil {
			log.Printf("drop malformed fix %s/%s: %v", date, name, err)
			continue
		}
		if len(fixes) == 0 {
			log.Printf("drop empty fix %s/%s", date, name)
			continue
		}
		fix := fixes[0]
		if fix.Lat == nil || fix.Lng == nil {
			log.Printf("drop positionless fix %s/%s", date, name)
			continue
		}

		records = append(records, trip.Record{
			Time:      ts[0:2] + ":" + ts[2:4] + ":" + ts[4:6],
			Timestamp: ts,
			Lat:       *fix.Lat,
			Lng:       *fix.Lng,
			Address:   fix.Address,
			Power:     fix.Power,
			Project:   fix.Project,
			Device:    fix.Device,
		})
	}

	return records, nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
