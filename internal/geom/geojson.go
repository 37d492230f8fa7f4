package geom

import (
	"encoding/json"
	"fmt"
)

// DecodeGeoJSON reads a GeoJSON Feature or FeatureCollection and returns one
// Feature per input feature carrying Polygon or MultiPolygon geometry. The
// name comes from properties.name.
func DecodeGeoJSON(data []byte) ([]Feature, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return [2]float64{lon, lat}, true
			}
		}
		return [2]float64{}, false
	}
	parseRing := func(v any) (ring [][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		return ring, true
	}
	parsePolygon := func(v any) (poly [][][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, r := range arr {
			if ring, ok := parseRing(r); ok && len(ring) >= 3 {
				poly = append(poly, ring)
			}
		}
		return poly, len(poly) > 0
	}
	parseMultiPolygon := func(v any) (mp [][][][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if poly, ok := parsePolygon(el); ok {
				mp = append(mp, poly)
			}
		}
		return mp, len(mp) > 0
	}
	polygons := func(g map[string]any) [][][][2]float64 {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			if poly, ok := parsePolygon(g["coordinates"]); ok {
				return [][][][2]float64{poly}
			}
		case "MultiPolygon":
			if mp, ok := parseMultiPolygon(g["coordinates"]); ok {
				return mp
			}
		}
		return nil
	}
	var out []Feature
	addFeature := func(fm map[string]any) {
		g, ok := fm["geometry"].(map[string]any)
		if !ok {
			return
		}
		polys := polygons(g)
		if len(polys) == 0 {
			return
		}
		props, _ := fm["properties"].(map[string]any)
		name, _ := props["name"].(string)
		out = append(out, newFeature(name, idString(fm["id"]), polys))
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		addFeature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					addFeature(fm)
				}
			}
		}
	default:
		return nil, fmt.Errorf("geojson: unsupported type %q", t)
	}
	if len(out) == 0 {
		return nil, ErrNoFeatures
	}
	return out, nil
}

func idString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
