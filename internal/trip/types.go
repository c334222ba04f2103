package trip

import (
	"github.com/goccy/go-json"
)

// Fix is one GPS reading as received from the device. A raw payload file is
// a JSON array of these; only the first element is meaningful.
type Fix struct {
	Lat     *float64        `json:"lat"`
	Lng     *float64        `json:"lng"`
	Address string          `json:"addr"`
	Power   json.RawMessage `json:"dot_Power"`
	Project string          `json:"pjName"`
	Device  string          `json:"dot_name"`
}

// Record is a normalized fix, ordered by its HHMMSS origin timestamp.
// StationaryUntil and StationaryDuration are populated only by the
// stationary merger.
type Record struct {
	Time      string          `json:"time"`      // HH:MM:SS display form
	Timestamp string          `json:"timestamp"` // HHMMSS, used for arithmetic
	Lat       float64         `json:"lat"`
	Lng       float64         `json:"lng"`
	Address   string          `json:"address"`
	Power     json.RawMessage `json:"power,omitempty"`
	Project   string          `json:"project,omitempty"`
	Device    string          `json:"device,omitempty"`

	// MissingPosition marks a record whose payload carried no usable
	// coordinates. The merger emits such records unchanged and resets its
	// comparison point.
	MissingPosition bool `json:"-"`

	StationaryUntil    string `json:"stationary_until,omitempty"`
	StationaryDuration int    `json:"stationary_duration,omitempty"`
}

// Options holds the tunable thresholds of the reconstruction pipeline.
type Options struct {
	MaxCyclingSpeedKmh float64 // speeds above this are flagged as anomalies
	RestDistanceM      float64 // steps shorter than this count as resting
	MaxTimeGapSec      int     // adjacent fixes further apart start a new run
	MinMovementM       float64 // movement below this merges into the previous waypoint
}

// DefaultOptions returns the thresholds used in production.
func DefaultOptions() Options {
	return Options{
		MaxCyclingSpeedKmh: 50,
		RestDistanceM:      50,
		MaxTimeGapSec:      300,
		MinMovementM:       10,
	}
}

const (
	StatusNormal       = "normal"
	StatusRest         = "rest"
	StatusSpeedAnomaly = "speed_anomaly"
)

// TimelineEntry is one annotated point of the final trip.
type TimelineEntry struct {
	Time               string          `json:"time"`
	Lat                float64         `json:"lat"`
	Lng                float64         `json:"lng"`
	Address            string          `json:"address"`
	Power              json.RawMessage `json:"power,omitempty"`
	DistanceM          int             `json:"distance_m"`
	SpeedKmh           float64         `json:"speed_kmh"`
	Status             string          `json:"status"`
	StationaryUntil    string          `json:"stationary_until,omitempty"`
	StationaryDuration int             `json:"stationary_duration,omitempty"`
}

// RestStop anchors a contiguous rest interval at its first point.
// DistanceSoFarM is the distance accumulated through the previous point,
// before the resting step contributed.
type RestStop struct {
	TimelineIndex  int     `json:"timeline_index"`
	PointIndex     int     `json:"point_index"`
	Time           string  `json:"time"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Address        string  `json:"address"`
	DistanceSoFarM float64 `json:"distance_so_far_m"`
}

// SpeedAnomaly flags a single step whose instantaneous speed exceeded the
// cycling ceiling. Anomalies are points, not intervals.
type SpeedAnomaly struct {
	TimelineIndex int     `json:"timeline_index"`
	Time          string  `json:"time"`
	SpeedKmh      float64 `json:"speed_kmh"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
}

// RouteSegment is one leg between consecutive waypoints in the sequence
// {start, rest stops..., end}.
type RouteSegment struct {
	FromTime    string  `json:"from_time"`
	FromAddress string  `json:"from_address"`
	ToTime      string  `json:"to_time"`
	ToAddress   string  `json:"to_address"`
	DistanceKm  float64 `json:"distance_km"`
}

// LatLng is a bare coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Summary is the exported per-day aggregate. Immutable once assembled;
// its marshaled form is the day's persistent artifact.
type Summary struct {
	Date            string          `json:"date"` // YYYY-MM-DD
	Project         string          `json:"project"`
	Device          string          `json:"device,omitempty"`
	TotalDistanceM  int             `json:"total_distance_m"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	RestCount       int             `json:"rest_count"`
	AnomalyCount    int             `json:"anomaly_count"`
	Center          LatLng          `json:"center"`
	Points          []Record        `json:"points"`
	Timeline        []TimelineEntry `json:"timeline"`
	RestStops       []RestStop      `json:"rest_stops"`
	Anomalies       []SpeedAnomaly  `json:"anomalies"`
	RouteSegments   []RouteSegment  `json:"route_segments"`
}
