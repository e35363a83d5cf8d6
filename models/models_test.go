package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryAll, ParseCategory(""))
	assert.Equal(t, CategoryTools, ParseCategory(" Tools "))
	assert.False(t, ParseCategory("bulbs").Valid())
	assert.False(t, CategoryAll.Valid())
}

func TestProductValidate(t *testing.T) {
	ok := Product{ID: 1, Name: "Gloves", Category: CategoryGloves, Price: 12.99}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.ID = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Category = "bulbs"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Price = -1
	assert.Error(t, bad.Validate())
}

func TestCartLineJSONIsFlat(t *testing.T) {
	line := CartLine{Product: Product{ID: 2, Name: "Watering Can", Category: CategoryTools, Price: 24.99}, Quantity: 3}
	data, err := json.Marshal(line)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Watering Can", raw["name"])
	assert.EqualValues(t, 3, raw["quantity"])
	assert.NotContains(t, raw, "Product")

	assert.InDelta(t, 74.97, line.Subtotal(), 1e-9)
	assert.Error(t, CartLine{Product: line.Product}.Validate())
}

func TestGardenEntryReadsBrowserDates(t *testing.T) {
	in := `{"name":"Basil","wateringFrequency":"Daily in summer","addedDate":"2024-03-01T08:30:00.000Z","nextWatering":"2024-03-02"}`

	var e GardenEntry
	require.NoError(t, json.Unmarshal([]byte(in), &e))
	assert.Equal(t, "Basil", e.Name)
	assert.Equal(t, "Daily in summer", e.WateringFrequency)
	assert.True(t, e.AddedDate.Equal(time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)))
	assert.Equal(t, 2024, e.NextWatering.Year())
	assert.Equal(t, time.March, e.NextWatering.Month())
	assert.Equal(t, 2, e.NextWatering.Day())
}

func TestGardenEntryRoundTrip(t *testing.T) {
	next := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
	e := GardenEntry{Plant: Plant{Name: "Fern"}, AddedDate: next.Add(-48 * time.Hour), NextWatering: next}
	require.NoError(t, e.Validate())

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nextWatering":"2026-05-20T09:00:00Z"`)

	var back GardenEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.NextWatering.Equal(next))
}

func TestGardenEntryBadDate(t *testing.T) {
	var e GardenEntry
	assert.Error(t, json.Unmarshal([]byte(`{"name":"Fern","nextWatering":"not a date"}`), &e))
	assert.Error(t, GardenEntry{Plant: Plant{Name: "Fern"}}.Validate())
}
