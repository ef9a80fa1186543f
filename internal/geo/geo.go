// Package geo provides the great-circle distance shared by vendor
// delivery-time estimation and the delivery simulator.
package geo

import "math"

const earthRadiusMeters = 6371e3

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the haversine distance between two points in meters.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Step moves p toward dest by the given distance in meters, interpolating
// along the straight-line geodesic. If the remaining distance is smaller than
// the step, dest is returned exactly.
func Step(p, dest Point, distance float64) Point {
	remaining := Distance(p, dest)
	if remaining <= distance || remaining == 0 {
		return dest
	}
	f := distance / remaining
	return Point{
		Lat: p.Lat + (dest.Lat-p.Lat)*f,
		Lng: p.Lng + (dest.Lng-p.Lng)*f,
	}
}
