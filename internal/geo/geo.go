// Package geo holds the two pieces of spherical geometry the marker store
// needs: a conservative bounding box used as a cheap pre-filter, and the
// haversine great-circle distance used for exact ranking. Both derive from
// the same kilometers-per-degree constant so the box can never exclude a
// point that lies within the requested radius.
package geo

import "math"

// KmPerDegreeLat is the length of one degree of latitude in kilometers
// (Earth's mean radius expressed per degree).
const KmPerDegreeLat = 111.045

// EarthRadiusKm is the mean radius consistent with KmPerDegreeLat.
const EarthRadiusKm = KmPerDegreeLat * 180 / math.Pi

// Box is an inclusive latitude/longitude range.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Bounds returns the bounding box of the circle centered at (lat, lon) with
// the given radius in kilometers. Longitude degrees shrink by cos(latitude),
// so the longitude delta widens accordingly; near the poles the box
// degenerates towards the full longitude range, which errs on the side of
// including too much, never too little.
func Bounds(lat, lon, radiusKm float64) Box {
	dLat := radiusKm / KmPerDegreeLat
	dLon := radiusKm / (KmPerDegreeLat * math.Cos(lat*math.Pi/180))
	if dLon < 0 {
		dLon = -dLon
	}
	return Box{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLon: lon - dLon,
		MaxLon: lon + dLon,
	}
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Distance returns the haversine great-circle distance between two points in
// kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}
