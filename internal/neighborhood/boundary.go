package neighborhood

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
)

// DefaultNameFields are the attribute names tried, in order, when a boundary
// file does not say which property holds the neighborhood name.
var DefaultNameFields = []string{"nombre", "barrio", "name"}

type boundary struct {
	name string
	mp   *geom.MultiPolygon
}

// BoundaryIndex resolves coordinates to neighborhood names by
// point-in-polygon against a fixed set of boundaries (lng/lat, WGS 84).
type BoundaryIndex struct {
	boundaries []boundary
}

// Len returns the number of indexed boundaries.
func (b *BoundaryIndex) Len() int { return len(b.boundaries) }

// Locate returns the name of the first boundary containing the point.
func (b *BoundaryIndex) Locate(lat, lng float64) (string, bool) {
	pt := geom.Coord{lng, lat}
	for _, bd := range b.boundaries {
		if !bd.mp.Bounds().OverlapsPoint(bd.mp.Layout(), pt) {
			continue
		}
		if multiPolygonContains(bd.mp, pt) {
			return bd.name, true
		}
	}
	return "", false
}

// Resolve implements Resolver.
func (b *BoundaryIndex) Resolve(_ context.Context, lat, lng float64) (string, bool) {
	return b.Locate(lat, lng)
}

// multiPolygonContains reports whether pt is inside any polygon's shell and
// outside all of that polygon's holes.
func multiPolygonContains(mp *geom.MultiPolygon, pt geom.Coord) bool {
	layout := mp.Layout()
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		if poly.NumLinearRings() == 0 {
			continue
		}
		if !xy.IsPointInRing(layout, pt, poly.LinearRing(0).FlatCoords()) {
			continue
		}
		inHole := false
		for r := 1; r < poly.NumLinearRings(); r++ {
			if xy.IsPointInRing(layout, pt, poly.LinearRing(r).FlatCoords()) {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

// LoadBoundaries builds an index from a GeoJSON FeatureCollection
// (.geojson/.json) or an ESRI shapefile (.shp). nameField selects the
// property holding the neighborhood name; empty tries DefaultNameFields.
func LoadBoundaries(path, nameField string) (*BoundaryIndex, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "neighborhood: read boundaries %s", path)
		}
		return ParseGeoJSON(data, nameField)
	case ".shp":
		return loadShapefile(path, nameField)
	default:
		return nil, eris.Errorf("neighborhood: unsupported boundary file %s", path)
	}
}

// ParseGeoJSON builds an index from a GeoJSON FeatureCollection. Features
// that are not (multi)polygons or carry no name are skipped.
func ParseGeoJSON(data []byte, nameField string) (*BoundaryIndex, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "neighborhood: parse geojson")
	}

	idx := &BoundaryIndex{}
	var skipped int
	for _, f := range fc.Features {
		name := featureName(f.Properties, nameField)
		var mp *geom.MultiPolygon
		switch g := f.Geometry.(type) {
		case *geom.Polygon:
			mp = geom.NewMultiPolygon(g.Layout())
			if err := mp.Push(g); err != nil {
				mp = nil
			}
		case *geom.MultiPolygon:
			mp = g
		}
		if mp == nil || name == "" {
			skipped++
			continue
		}
		idx.boundaries = append(idx.boundaries, boundary{name: name, mp: mp})
	}

	if skipped > 0 {
		zap.L().Debug("neighborhood: skipped geojson features", zap.Int("skipped", skipped))
	}
	if len(idx.boundaries) == 0 {
		return nil, eris.New("neighborhood: no polygon features with a name")
	}
	return idx, nil
}

func featureName(props map[string]interface{}, nameField string) string {
	fields := DefaultNameFields
	if nameField != "" {
		fields = []string{nameField}
	}
	for _, want := range fields {
		for k, v := range props {
			if !strings.EqualFold(k, want) {
				continue
			}
			if v == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

func loadShapefile(path, nameField string) (*BoundaryIndex, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "neighborhood: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := -1
	wanted := DefaultNameFields
	if nameField != "" {
		wanted = []string{nameField}
	}
	fields := reader.Fields()
	for _, want := range wanted {
		for i, f := range fields {
			if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), want) {
				fieldIdx = i
				break
			}
		}
		if fieldIdx >= 0 {
			break
		}
	}
	if fieldIdx < 0 {
		return nil, eris.Errorf("neighborhood: shapefile %s has no name field %v", path, wanted)
	}

	idx := &BoundaryIndex{}
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(fieldIdx), "\x00"))
		mp := shpPolygonToMultiPolygon(poly)
		if name == "" || mp == nil {
			continue
		}
		idx.boundaries = append(idx.boundaries, boundary{name: name, mp: mp})
	}

	if len(idx.boundaries) == 0 {
		return nil, eris.Errorf("neighborhood: shapefile %s has no polygons", path)
	}
	return idx, nil
}

// shpPolygonToMultiPolygon treats every shapefile part as its own shell.
// Shapefile holes are wound counter-clockwise and would need ring
// orientation to attach them to a shell; neighborhood boundaries have none.
func shpPolygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("neighborhood: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("neighborhood: skipping malformed polygon", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
