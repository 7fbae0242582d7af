package neighborhood

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit squares side by side; "Centro" has a hole in the middle.
const boundariesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"NOMBRE": "Centro", "id": 1},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[0,0],[1,0],[1,1],[0,1],[0,0]],
          [[0.4,0.4],[0.6,0.4],[0.6,0.6],[0.4,0.6],[0.4,0.4]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"nombre": "Este"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [[[[1,0],[2,0],[2,1],[1,1],[1,0]]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"nombre": "Punto"},
      "geometry": {"type": "Point", "coordinates": [5,5]}
    },
    {
      "type": "Feature",
      "properties": {"other": "x"},
      "geometry": {"type": "Polygon", "coordinates": [[[3,3],[4,3],[4,4],[3,4],[3,3]]]}
    }
  ]
}`

func TestParseGeoJSON_Locate(t *testing.T) {
	idx, err := ParseGeoJSON([]byte(boundariesGeoJSON), "")
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	tests := []struct {
		name     string
		lat, lng float64
		want     string
		wantOK   bool
	}{
		{"inside centro", 0.2, 0.2, "Centro", true},
		{"inside hole", 0.5, 0.5, "", false},
		{"inside este", 0.5, 1.5, "Este", true},
		{"outside all", 10, 10, "", false},
		{"unnamed polygon skipped", 3.5, 3.5, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Locate(tt.lat, tt.lng)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGeoJSON_NameField(t *testing.T) {
	idx, err := ParseGeoJSON([]byte(boundariesGeoJSON), "other")
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	got, ok := idx.Resolve(context.Background(), 3.5, 3.5)
	assert.True(t, ok)
	assert.Equal(t, "x", got)
}

func TestParseGeoJSON_Errors(t *testing.T) {
	_, err := ParseGeoJSON([]byte(`{"type":`), "")
	assert.Error(t, err)

	_, err = ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`), "")
	assert.Error(t, err)
}

func TestLoadBoundaries_GeoJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barrios.geojson")
	require.NoError(t, os.WriteFile(path, []byte(boundariesGeoJSON), 0o600))

	idx, err := LoadBoundaries(path, "")
	require.NoError(t, err)
	name, ok := idx.Locate(0.9, 0.1)
	assert.True(t, ok)
	assert.Equal(t, "Centro", name)
}

func TestLoadBoundaries_Shapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barrios.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("BARRIO", 40)}))

	square := func(x0, y0 float64) *shp.Polygon {
		p := shp.Polygon(*shp.NewPolyLine([][]shp.Point{{
			{X: x0, Y: y0}, {X: x0, Y: y0 + 1}, {X: x0 + 1, Y: y0 + 1}, {X: x0 + 1, Y: y0}, {X: x0, Y: y0},
		}}))
		return &p
	}
	w.Write(square(0, 0))
	require.NoError(t, w.WriteAttribute(0, 0, "Palermo"))
	w.Write(square(1, 0))
	require.NoError(t, w.WriteAttribute(1, 0, "Recoleta"))
	w.Close()

	idx, err := LoadBoundaries(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	name, ok := idx.Locate(0.5, 1.5)
	assert.True(t, ok)
	assert.Equal(t, "Recoleta", name)

	_, err = LoadBoundaries(path, "COMUNA")
	assert.Error(t, err)
}

func TestLoadBoundaries_UnsupportedExtension(t *testing.T) {
	_, err := LoadBoundaries("barrios.kml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

type stubResolver struct {
	name string
	ok   bool
}

func (s stubResolver) Resolve(context.Context, float64, float64) (string, bool) { return s.name, s.ok }

func TestChain_Resolve(t *testing.T) {
	ctx := context.Background()

	c := NewChain("Palermo", nil, stubResolver{}, stubResolver{"Boedo", true}, stubResolver{"Flores", true})
	name, ok := c.Resolve(ctx, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, "Boedo", name)

	c = NewChain("Palermo", stubResolver{"", true}, stubResolver{"x", false})
	name, ok = c.Resolve(ctx, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, "Palermo", name)
}
