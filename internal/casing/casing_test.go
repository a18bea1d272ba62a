package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"totalPrice":     "total_price",
		"scientificName": "scientific_name",
		"countrySlug":    "country_slug",
		"locationX":      "location_x",
		"co2":            "co2",
		"name":           "name",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnake(in), "ToSnake(%q)", in)
	}
}

func TestToCamel(t *testing.T) {
	cases := map[string]string{
		"total_price":     "totalPrice",
		"scientific_name": "scientificName",
		"created_at":      "createdAt",
		"o2":              "o2",
		"name":            "name",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToCamel(in), "ToCamel(%q)", in)
	}
}

// Round trip must be lossless for names made of lowercase words, in both
// directions.
func TestRoundTrip(t *testing.T) {
	wire := []string{"totalPrice", "scientificName", "categorySlug", "locationY", "updatedAt", "price", "co2"}
	for _, w := range wire {
		assert.Equal(t, w, ToCamel(ToSnake(w)))
	}
	storage := []string{"total_price", "scientific_name", "category_slug", "location_y", "updated_at", "price", "o2"}
	for _, s := range storage {
		assert.Equal(t, s, ToSnake(ToCamel(s)))
	}
}

func TestMapTranslation(t *testing.T) {
	in := map[string]any{"totalPrice": 42, "status": 2}
	out := MapToSnake(in)
	assert.Equal(t, map[string]any{"total_price": 42, "status": 2}, out)
	assert.Equal(t, in, MapToCamel(out))
}
