package geo

import (
	"math"
	"strconv"
)

const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// TimeDiffSeconds returns seconds(t2) - seconds(t1) for two HHMMSS
// timestamps within the same day. Negative when t2 precedes t1. There is
// no date rollover handling: a trip crossing midnight is not representable.
func TimeDiffSeconds(t1, t2 string) int {
	return secondsOfDay(t2) - secondsOfDay(t1)
}

func secondsOfDay(ts string) int {
	if len(ts) != 6 {
		return 0
	}
	h, err := strconv.Atoi(ts[0:2])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(ts[2:4])
	if err != nil {
		return 0
	}
	s, err := strconv.Atoi(ts[4:6])
	if err != nil {
		return 0
	}
	return h*3600 + m*60 + s
}
