package main

// The catalog stores whichever coordinate shape a row arrived with, but the
// API serves one canonical geographic representation. Percentage positions
// from the static city image are projected linearly over a fixed Riyadh
// bounding box; rows without any position get the city center. The
// projection is deterministic so a record always lands on the same spot.
const (
	riyadhCenterLat = 24.7136
	riyadhCenterLng = 46.6753

	riyadhMinLat = 24.52
	riyadhMaxLat = 24.92
	riyadhMinLng = 46.48
	riyadhMaxLng = 46.88
)

// projectPosition reduces a MapPosition to lat/lng. Geographic coordinates
// win when present; otherwise percentage coordinates are projected; with
// neither shape the city center is returned. Marker y grows downward on the
// image, so y=0 maps to the northern edge.
func projectPosition(p MapPosition) (float64, float64) {
	if p.Lat != nil && p.Lng != nil {
		return *p.Lat, *p.Lng
	}
	if p.X != nil && p.Y != nil {
		x := clampPercent(*p.X)
		y := clampPercent(*p.Y)
		lat := riyadhMaxLat - (y/100)*(riyadhMaxLat-riyadhMinLat)
		lng := riyadhMinLng + (x/100)*(riyadhMaxLng-riyadhMinLng)
		return lat, lng
	}
	return riyadhCenterLat, riyadhCenterLng
}

// geoToPercent is the inverse projection, clamped to the image so markers
// for out-of-city coordinates stay pinned to the edge instead of escaping
// the viewport.
func geoToPercent(lat, lng float64) (float64, float64) {
	x := (lng - riyadhMinLng) / (riyadhMaxLng - riyadhMinLng) * 100
	y := (riyadhMaxLat - lat) / (riyadhMaxLat - riyadhMinLat) * 100
	return clampPercent(x), clampPercent(y)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
