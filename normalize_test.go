package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRawRow() RawBillboardRow {
	return RawBillboardRow{
		ID:          "bb-1",
		Title:       map[string]any{"en": "Premium Digital Billboard", "ar": "لوحة رقمية متميزة"},
		Location:    map[string]any{"en": "King Fahd Road", "ar": "طريق الملك فهد"},
		Description: map[string]any{"en": "High traffic location"},
		Type:        "Digital",
		Size:        "12x4m",
		Price:       15000,
		Status:      "available",
		Impressions: "50K daily",
		Images:      []any{"https://example.com/a.jpg"},
		Features:    map[string]any{"en": []any{"LED display"}, "ar": []any{"شاشة LED"}},
		MapPosition: map[string]any{"x": 30.0, "y": 40.0},
		Rating:      4.8,
	}
}

func TestNormalizeBillboardHappyPath(t *testing.T) {
	record, err := normalizeBillboard(validRawRow())
	if err != nil {
		t.Fatalf("expected row to normalize: %v", err)
	}

	assert.Equal(t, "bb-1", record.ID)
	assert.Equal(t, "Premium Digital Billboard", record.Title.En)
	assert.Equal(t, "لوحة رقمية متميزة", record.Title.Ar)
	assert.Equal(t, TypeDigital, record.Type)
	assert.Equal(t, StatusAvailable, record.Status)
	assert.Equal(t, []string{"LED display"}, record.Features.En)
	if record.MapPosition.X == nil || *record.MapPosition.X != 30.0 {
		t.Fatalf("expected x=30, got %v", record.MapPosition.X)
	}
}

func TestNormalizeBillboardMissingFieldsGetDefaults(t *testing.T) {
	record, err := normalizeBillboard(RawBillboardRow{ID: "bb-2", Price: 100})
	if err != nil {
		t.Fatalf("expected row to normalize: %v", err)
	}

	// Bilingual fields are always present after normalization, never absent.
	assert.Equal(t, LocalizedText{}, record.Title)
	assert.Equal(t, LocalizedText{}, record.Description)
	assert.Equal(t, []string{}, record.Features.En)
	assert.Equal(t, []string{}, record.NearbyAttractions.En)
	assert.Equal(t, []string{}, record.Images)
	assert.Nil(t, record.MapPosition.X)
	assert.Nil(t, record.MapPosition.Lat)
}

func TestNormalizeBillboardParsesStringEncodedFields(t *testing.T) {
	raw := validRawRow()
	raw.Title = `{"en":"From String","ar":"من نص"}`
	raw.Features = []byte(`{"en":["one","two"]}`)
	raw.Images = `["https://example.com/b.jpg"]`

	record, err := normalizeBillboard(raw)
	if err != nil {
		t.Fatalf("expected row to normalize: %v", err)
	}

	assert.Equal(t, "From String", record.Title.En)
	assert.Equal(t, "من نص", record.Title.Ar)
	assert.Equal(t, []string{"one", "two"}, record.Features.En)
	assert.Equal(t, []string{"https://example.com/b.jpg"}, record.Images)
}

func TestNormalizeBillboardInvalidJSONFieldBecomesDefault(t *testing.T) {
	raw := validRawRow()
	raw.Title = `{not|valid json`
	raw.Features = `also broken`
	raw.MapPosition = `broken too`

	record, err := normalizeBillboard(raw)
	if err != nil {
		t.Fatalf("a malformed field must not reject the row: %v", err)
	}

	assert.Equal(t, LocalizedText{}, record.Title)
	assert.Equal(t, []string{}, record.Features.En)
	assert.Nil(t, record.MapPosition.X)
}

func TestNormalizeBillboardRejectsNegativePrice(t *testing.T) {
	raw := validRawRow()
	raw.Price = -100

	if _, err := normalizeBillboard(raw); err == nil {
		t.Fatal("expected negative price to reject the row")
	}
}

func TestNormalizeBillboardRejectsMissingID(t *testing.T) {
	raw := validRawRow()
	raw.ID = "   "

	if _, err := normalizeBillboard(raw); err == nil {
		t.Fatal("expected missing id to reject the row")
	}
}

func TestNormalizeTypeCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Digital", TypeDigital},
		{"digital", TypeDigital},
		{"LED", TypeLED},
		{"led", TypeLED},
		{"Static", TypeStatic},
		{"hologram", TypeStatic},
		{"", TypeStatic},
	}
	for _, tc := range cases {
		if got := normalizeType(tc.raw); got != tc.want {
			t.Errorf("normalizeType(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeStatusCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"available", StatusAvailable},
		{"BOOKED", StatusBooked},
		{"Maintenance", StatusMaintenance},
		{"retired", StatusAvailable},
		{"", StatusAvailable},
	}
	for _, tc := range cases {
		if got := normalizeStatus(tc.raw); got != tc.want {
			t.Errorf("normalizeStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 0.0, clampRating(-3))
	assert.Equal(t, 5.0, clampRating(7.2))
	assert.Equal(t, 4.8, clampRating(4.8))
}

func TestPositionFromFieldGeoPair(t *testing.T) {
	position := positionFromField(map[string]any{"lat": 24.7, "lng": 46.7})
	if position.Lat == nil || position.Lng == nil {
		t.Fatal("expected geo pair to survive")
	}
	assert.Equal(t, 24.7, *position.Lat)
	assert.Equal(t, 46.7, *position.Lng)
	assert.Nil(t, position.X)
}
