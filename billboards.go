package main

// Billboard categories and statuses form closed sets. Raw rows carry
// free-form strings; normalization coerces them (see normalize.go).
const (
	TypeDigital = "Digital"
	TypeStatic  = "Static"
	TypeLED     = "LED"

	StatusAvailable   = "available"
	StatusBooked      = "booked"
	StatusMaintenance = "maintenance"
)

var (
	billboardTypes    = []string{TypeDigital, TypeStatic, TypeLED}
	billboardStatuses = []string{StatusAvailable, StatusBooked, StatusMaintenance}

	statusLabels = map[string]LocalizedText{
		StatusAvailable:   {En: "Available", Ar: "متاح"},
		StatusBooked:      {En: "Booked", Ar: "محجوز"},
		StatusMaintenance: {En: "Maintenance", Ar: "صيانة"},
	}
)

// MapPosition carries whichever coordinate shape the source row provided:
// a percentage pair on the static city image, a geographic pair, or neither.
// projectPosition (mapproject.go) reduces it to the canonical geographic
// representation at display time.
type MapPosition struct {
	X   *float64 `json:"x,omitempty"`
	Y   *float64 `json:"y,omitempty"`
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// Billboard is one listing in canonical, locale-deferred form.
// Records are immutable once normalized; a refresh replaces the whole
// collection instead of patching individual records.
type Billboard struct {
	ID                string        `json:"id"`
	Title             LocalizedText `json:"title"`
	Location          LocalizedText `json:"location"`
	Description       LocalizedText `json:"description"`
	Type              string        `json:"type"`
	Size              string        `json:"size"`
	Price             float64       `json:"price"`
	Status            string        `json:"status"`
	Impressions       string        `json:"impressions"`
	Images            []string      `json:"images"`
	Features          LocalizedList `json:"features"`
	NearbyAttractions LocalizedList `json:"nearbyAttractions"`
	MapPosition       MapPosition   `json:"mapPosition"`
	Rating            float64       `json:"rating"`
}

// BillboardView is one record with every bilingual field resolved for a
// single language, ready to render.
type BillboardView struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Location          string   `json:"location"`
	Description       string   `json:"description"`
	Type              string   `json:"type"`
	Size              string   `json:"size"`
	Price             float64  `json:"price"`
	Status            string   `json:"status"`
	StatusLabel       string   `json:"statusLabel"`
	Impressions       string   `json:"impressions"`
	Images            []string `json:"images"`
	Features          []string `json:"features"`
	NearbyAttractions []string `json:"nearbyAttractions"`
	Lat               float64  `json:"lat"`
	Lng               float64  `json:"lng"`
	MarkerX           float64  `json:"markerX"`
	MarkerY           float64  `json:"markerY"`
	Rating            float64  `json:"rating"`
}

func (b Billboard) resolve(lang Language) BillboardView {
	lat, lng := projectPosition(b.MapPosition)
	markerX, markerY := geoToPercent(lat, lng)

	images := b.Images
	if images == nil {
		images = []string{}
	}

	return BillboardView{
		ID:                b.ID,
		Title:             b.Title.Resolve(lang),
		Location:          b.Location.Resolve(lang),
		Description:       b.Description.Resolve(lang),
		Type:              b.Type,
		Size:              b.Size,
		Price:             b.Price,
		Status:            b.Status,
		StatusLabel:       statusLabels[b.Status].Resolve(lang),
		Impressions:       b.Impressions,
		Images:            images,
		Features:          b.Features.Resolve(lang),
		NearbyAttractions: b.NearbyAttractions.Resolve(lang),
		Lat:               lat,
		Lng:               lng,
		MarkerX:           markerX,
		MarkerY:           markerY,
		Rating:            b.Rating,
	}
}

// MapMarker is the minimal marker payload for the map view.
type MapMarker struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"statusLabel"`
	Price       float64 `json:"price"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

func (b Billboard) marker(lang Language) MapMarker {
	lat, lng := projectPosition(b.MapPosition)
	x, y := geoToPercent(lat, lng)
	return MapMarker{
		ID:          b.ID,
		Title:       b.Title.Resolve(lang),
		Status:      b.Status,
		StatusLabel: statusLabels[b.Status].Resolve(lang),
		Price:       b.Price,
		Lat:         lat,
		Lng:         lng,
		X:           x,
		Y:           y,
	}
}
