package matching

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns nil when either side is missing coordinates; such a
// provider can never be matched regardless of the request.
func DistanceKm(reqLat, reqLon float64, provLat, provLon *float64) *float64 {
	if provLat == nil || provLon == nil {
		return nil
	}
	d := haversineKm(reqLat, reqLon, *provLat, *provLon)
	return &d
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
