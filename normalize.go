package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawBillboardRow is one row as it comes back from the billboards
// collection. JSONB columns may arrive already decoded, as JSON-encoded
// strings, or not at all, so every structured field is typed any and
// resolved during normalization.
type RawBillboardRow struct {
	ID                string  `json:"id"`
	Title             any     `json:"title"`
	Location          any     `json:"location"`
	Description       any     `json:"description"`
	Type              string  `json:"type"`
	Size              string  `json:"size"`
	Price             float64 `json:"price"`
	Status            string  `json:"status"`
	Impressions       string  `json:"impressions"`
	Images            any     `json:"images"`
	Features          any     `json:"features"`
	NearbyAttractions any     `json:"nearby_attractions"`
	MapPosition       any     `json:"map_position"`
	Rating            float64 `json:"rating"`
}

// normalizeBillboard converts one raw row into a canonical record. A
// malformed bilingual sub-field is replaced by its empty default and never
// aborts the rest of the record; a missing id or a negative price rejects
// the whole row.
func normalizeBillboard(raw RawBillboardRow) (Billboard, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return Billboard{}, fmt.Errorf("billboard row missing id")
	}
	if raw.Price < 0 {
		return Billboard{}, fmt.Errorf("billboard %s: negative price %.2f", raw.ID, raw.Price)
	}

	return Billboard{
		ID:                strings.TrimSpace(raw.ID),
		Title:             textFromField(raw.Title),
		Location:          textFromField(raw.Location),
		Description:       textFromField(raw.Description),
		Type:              normalizeType(raw.Type),
		Size:              strings.TrimSpace(raw.Size),
		Price:             raw.Price,
		Status:            normalizeStatus(raw.Status),
		Impressions:       strings.TrimSpace(raw.Impressions),
		Images:            imagesFromField(raw.Images),
		Features:          listFromField(raw.Features),
		NearbyAttractions: listFromField(raw.NearbyAttractions),
		MapPosition:       positionFromField(raw.MapPosition),
		Rating:            clampRating(raw.Rating),
	}, nil
}

// decodeField mirrors the JSONB unwrapping the remote store requires:
// decoded objects pass through, strings get one parse attempt, and
// anything else (including a failed parse) counts as absent.
func decodeField(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return nil, false
		}
		return decoded, true
	case []byte:
		var decoded map[string]any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, false
		}
		return decoded, true
	default:
		return nil, false
	}
}

func textFromField(raw any) LocalizedText {
	obj, ok := decodeField(raw)
	if !ok {
		return LocalizedText{}
	}
	return LocalizedText{
		En: stringValue(obj["en"]),
		Ar: stringValue(obj["ar"]),
	}
}

func listFromField(raw any) LocalizedList {
	obj, ok := decodeField(raw)
	if !ok {
		return LocalizedList{En: []string{}, Ar: []string{}}
	}
	return LocalizedList{
		En: stringSlice(obj["en"]),
		Ar: stringSlice(obj["ar"]),
	}
}

func imagesFromField(raw any) []string {
	switch v := raw.(type) {
	case []any:
		return stringSlice(v)
	case []string:
		return v
	case string:
		var decoded []any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return []string{}
		}
		return stringSlice(decoded)
	case []byte:
		var decoded []any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return []string{}
		}
		return stringSlice(decoded)
	default:
		return []string{}
	}
}

// positionFromField keeps whatever subset of {x,y} / {lat,lng} the row
// carries. Missing coordinates are not synthesized here; projectPosition
// decides the display fallback.
func positionFromField(raw any) MapPosition {
	obj, ok := decodeField(raw)
	if !ok {
		return MapPosition{}
	}
	return MapPosition{
		X:   floatValue(obj["x"]),
		Y:   floatValue(obj["y"]),
		Lat: floatValue(obj["lat"]),
		Lng: floatValue(obj["lng"]),
	}
}

func normalizeType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, t := range billboardTypes {
		if strings.EqualFold(trimmed, t) {
			return t
		}
	}
	// Unknown category tags collapse to Static, the least capable kind.
	return TypeStatic
}

func normalizeStatus(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if containsString(billboardStatuses, trimmed) {
		return trimmed
	}
	return StatusAvailable
}

func clampRating(rating float64) float64 {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func stringValue(raw any) string {
	s, _ := raw.(string)
	return s
}

func stringSlice(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		if typed, ok := raw.([]string); ok {
			return typed
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func floatValue(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
