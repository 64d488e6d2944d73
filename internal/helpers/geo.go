package helpers

import "math"

// earthRadiusKm is the mean Earth radius used by the spherical distance model.
const earthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance in km between two
// latitude/longitude points. Spherical Earth; good enough for a
// neighborhood-scale radius search.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RoundDistance rounds a distance to two decimal places for API responses.
func RoundDistance(km float64) float64 {
	return math.Round(km*100) / 100
}

// RoundRating rounds an average rating to one decimal place.
func RoundRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ValidCoordinates reports whether a latitude/longitude pair is usable for
// distance math. NaN and out-of-range values are rejected up front instead of
// silently propagating through the Haversine formula.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
