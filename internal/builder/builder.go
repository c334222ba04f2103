package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"

	"github.com/goccy/go-json"

	"daytrip/internal/ingest"
	"daytrip/internal/storage"
	"daytrip/internal/trip"
)

// Builder reconstructs one day's trip from raw fixes and persists the
// summary plus its catalog row.
type Builder struct {
	Loader  *ingest.Loader
	Store   *storage.Store
	Options trip.Options
}

// BuildDate runs the full pipeline for one YYYYMMDD date. Returns false
// when the day has no usable trip (missing raw data, empty day, or the
// continuity filter eliminated everything); that is a skip, not an error,
// so batch runs continue past it.
func (b *Builder) BuildDate(ctx context.Context, date string) (bool, error) {
	if len(date) != 8 {
		return false, fmt.Errorf("date must be YYYYMMDD, got %q", date)
	}

	records, err := b.Loader.LoadDay(date)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("%s: no raw data, skipping", date)
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", date, err)
	}
	if len(records) == 0 {
		log.Printf("%s: no usable fixes, skipping", date)
		return false, nil
	}

	run := trip.LongestRun(records, b.Options.MaxTimeGapSec)
	if len(run) == 0 {
		log.Printf("%s: no continuous trip after gap filtering, skipping", date)
		return false, nil
	}

	merged := trip.MergeStationary(run, b.Options.MinMovementM)
	ann := trip.Annotate(merged, b.Options)

	summary := assemble(date, merged, ann)
	document, err := json.Marshal(summary)
	if err != nil {
		return false, fmt.Errorf("marshal summary %s: %w", date, err)
	}

	entry := storage.IndexEntry{
		Date:           summary.Date,
		Project:        summary.Project,
		TotalDistanceM: summary.TotalDistanceM,
		RecordCount:    len(summary.Points),
	}
	if err := b.Store.UpsertSummary(ctx, entry, document); err != nil {
		return false, fmt.Errorf("store summary %s: %w", date, err)
	}

	log.Printf("%s: built trip with %d points, %.2f km, %d rests, %d anomalies",
		date, len(summary.Points), summary.TotalDistanceKm, summary.RestCount, summary.AnomalyCount)
	return true, nil
}

// BuildAll builds every date that has raw data, oldest first, and returns
// how many days produced a summary.
func (b *Builder) BuildAll(ctx context.Context) (int, error) {
	dates, err := b.Loader.ListDates()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("raw data root missing, nothing to build")
			return 0, nil
		}
		return 0, err
	}

	built := 0
	for _, date := range dates {
		ok, err := b.BuildDate(ctx, date)
		if err != nil {
			return built, err
		}
		if ok {
			built++
		}
	}
	return built, nil
}

// RebuildIndex refreshes the catalog from the stored summary documents.
func (b *Builder) RebuildIndex(ctx context.Context) error {
	return b.Store.RebuildIndex(ctx)
}

func assemble(date string, points []trip.Record, ann trip.Annotation) trip.Summary {
	// The document schema is a contract with the UI: absent lists are
	// empty arrays, never null.
	if ann.RestStops == nil {
		ann.RestStops = []trip.RestStop{}
	}
	if ann.Anomalies == nil {
		ann.Anomalies = []trip.SpeedAnomaly{}
	}

	return trip.Summary{
		Date:            date[0:4] + "-" + date[4:6] + "-" + date[6:8],
		Project:         points[0].Project,
		Device:          points[0].Device,
		TotalDistanceM:  int(math.Round(ann.TotalDistanceM)),
		TotalDistanceKm: math.Round(ann.TotalDistanceM/10) / 100,
		RestCount:       len(ann.RestStops),
		AnomalyCount:    len(ann.Anomalies),
		Center:          ann.Center,
		Points:          points,
		Timeline:        ann.Timeline,
		RestStops:       ann.RestStops,
		Anomalies:       ann.Anomalies,
		RouteSegments:   ann.RouteSegments,
	}
}
