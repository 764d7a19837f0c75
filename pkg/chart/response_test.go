package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderedDoc = `{
  "chart": {
    "graha": {
      "Sa": {"longitude": 262.5, "rashi": 9},
      "Sy": {"longitude": 256.9, "rashi": 9},
      "Ch": {"longitude": 330.0, "rashi": 12},
      "Ur": {"longitude": 10, "rashi": 1}
    }
  }
}`

func TestGrahaOrderPreserved(t *testing.T) {
	resp, err := ParseString(orderedDoc)
	require.NoError(t, err)
	require.NotNil(t, resp.Chart)

	assert.Equal(t, []string{"Sa", "Sy", "Ch", "Ur"}, resp.Chart.Graha.Codes())
	assert.Equal(t, 4, resp.Chart.Graha.Len())

	ch, ok := resp.Chart.Graha.Get("Ch")
	require.True(t, ok)
	assert.Equal(t, "330.0", ch.Longitude.String())

	_, ok = resp.Chart.Graha.Get("Pl")
	assert.False(t, ok)
}

func TestGrahaDuplicateKeyKeepsFirstPosition(t *testing.T) {
	resp, err := ParseString(`{"chart":{"graha":{"Sy":{"rashi":1},"Ch":{"rashi":2},"Sy":{"rashi":3}}}}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sy", "Ch"}, resp.Chart.Graha.Codes())
	sy, _ := resp.Chart.Graha.Get("Sy")
	n, ok := sy.Rashi.Int()
	require.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestParseOptionalSections(t *testing.T) {
	resp, err := ParseString(`{"chart":{"graha":{}}}`)
	require.NoError(t, err)
	assert.Nil(t, resp.Chart.Panchanga)
	assert.Nil(t, resp.Chart.Rising)
	assert.Empty(t, resp.Chart.SunRising())

	resp, err = ParseString(`{"other": true}`)
	require.NoError(t, err)
	assert.Nil(t, resp.Chart)

	_, err = ParseString(`{"chart":`)
	assert.Error(t, err)
}

func TestResponseMarshalKeepsDocument(t *testing.T) {
	resp, err := ParseString(orderedDoc)
	require.NoError(t, err)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, orderedDoc, string(b))

	// Graha order survives re-encoding when built in code as well
	var g Grahas
	g.Set("Ke", Graha{Rashi: NewValue("3")})
	g.Set("Ra", Graha{Rashi: NewValue("9")})
	b, err = json.Marshal(Response{Chart: &Chart{Graha: g}})
	require.NoError(t, err)

	reparsed, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ke", "Ra"}, reparsed.Chart.Graha.Codes())
}

func TestValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		present bool
		str     string
		intVal  int
		intOK   bool
	}{
		{"absent", "", false, "N/A", 0, false},
		{"null", "null", false, "N/A", 0, false},
		{"integer", "10", true, "10", 10, true},
		{"float keeps precision", "280.0", true, "280.0", 280, true},
		{"fraction", "12.75", true, "12.75", 0, false},
		{"string unquoted", `"Shukla"`, true, "Shukla", 0, false},
		{"unicode string", `"शुक्ल"`, true, "शुक्ल", 0, false},
		{"bool", "true", true, "true", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValue(tt.raw)
			assert.Equal(t, tt.present, v.Present())
			assert.Equal(t, tt.str, v.String())

			n, ok := v.Int()
			assert.Equal(t, tt.intOK, ok)
			assert.Equal(t, tt.intVal, n)
		})
	}
}

func TestLookupTables(t *testing.T) {
	assert.Equal(t, "Sun (Surya)", PlanetName("Sy"))
	assert.Equal(t, "Ketu", PlanetName("Ke"))
	assert.Equal(t, "Pl", PlanetName("Pl"))

	name, ok := RashiName(10)
	assert.True(t, ok)
	assert.Equal(t, "Makara (Capricorn)", name)

	name, ok = RashiName(1)
	assert.True(t, ok)
	assert.Equal(t, "Mesha (Aries)", name)

	name, ok = RashiName(12)
	assert.True(t, ok)
	assert.Equal(t, "Meena (Pisces)", name)

	_, ok = RashiName(0)
	assert.False(t, ok)
	_, ok = RashiName(13)
	assert.False(t, ok)

	assert.Equal(t, "Ashvini", NakshatraName(1))
	assert.Equal(t, "Revati", NakshatraName(27))
	assert.Equal(t, "Nakshatra 28", NakshatraName(28))

	assert.Equal(t, "Pratipada", TithiName(1))
	assert.Equal(t, "Purnima", TithiName(15))
	assert.Equal(t, "Pratipada", TithiName(16))
	assert.Equal(t, "Chaturdashi", TithiName(29))
	assert.Equal(t, "Amavasya", TithiName(30))
}
