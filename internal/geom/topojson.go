package geom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type topology struct {
	Type      string                     `json:"type"`
	Transform *topoTransform             `json:"transform"`
	Objects   map[string]json.RawMessage `json:"objects"`
	Arcs      [][][]float64              `json:"arcs"`
}

type topoTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoGeometry struct {
	Type       string          `json:"type"`
	ID         any             `json:"id"`
	Properties map[string]any  `json:"properties"`
	Arcs       json.RawMessage `json:"arcs"`
	Geometries []topoGeometry  `json:"geometries"`
}

// DecodeTopoJSON converts the named object of a TopoJSON topology into
// features. Quantized topologies (with a transform) have delta-encoded
// arcs; a negative arc index ~i refers to arc i reversed.
func DecodeTopoJSON(data []byte, object string) ([]Feature, error) {
	var topo topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("topojson: %w", err)
	}
	if topo.Type != "Topology" {
		return nil, fmt.Errorf("topojson: unexpected type %q", topo.Type)
	}
	rawObj, ok := topo.Objects[object]
	if !ok {
		return nil, fmt.Errorf("topojson: object %q not found", object)
	}
	var root topoGeometry
	if err := json.Unmarshal(rawObj, &root); err != nil {
		return nil, fmt.Errorf("topojson: object %q: %w", object, err)
	}
	arcs := topo.decodeArcs()

	var out []Feature
	var walk func(g topoGeometry) error
	walk = func(g topoGeometry) error {
		var polys [][][][2]float64
		switch g.Type {
		case "GeometryCollection":
			for _, child := range g.Geometries {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		case "Polygon":
			var idx [][]int
			if err := json.Unmarshal(g.Arcs, &idx); err != nil {
				return fmt.Errorf("topojson: polygon arcs: %w", err)
			}
			if poly := polygon(arcs, idx); len(poly) > 0 {
				polys = append(polys, poly)
			}
		case "MultiPolygon":
			var idx [][][]int
			if err := json.Unmarshal(g.Arcs, &idx); err != nil {
				return fmt.Errorf("topojson: multipolygon arcs: %w", err)
			}
			for _, p := range idx {
				if poly := polygon(arcs, p); len(poly) > 0 {
					polys = append(polys, poly)
				}
			}
		default:
			return nil
		}
		if len(polys) == 0 {
			return nil
		}
		name, _ := g.Properties["name"].(string)
		out = append(out, newFeature(name, idString(g.ID), polys))
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoFeatures
	}
	return out, nil
}

func (t *topology) decodeArcs() [][][2]float64 {
	out := make([][][2]float64, len(t.Arcs))
	for i, arc := range t.Arcs {
		pts := make([][2]float64, 0, len(arc))
		var x, y float64
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			if t.Transform == nil {
				pts = append(pts, [2]float64{p[0], p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			pts = append(pts, [2]float64{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			})
		}
		out[i] = pts
	}
	return out
}

func polygon(arcs [][][2]float64, rings [][]int) [][][2]float64 {
	var poly [][][2]float64
	for _, r := range rings {
		if ring := stitch(arcs, r); len(ring) >= 3 {
			poly = append(poly, ring)
		}
	}
	return poly
}

// stitch joins arcs into one ring. Consecutive arcs share their end point,
// so the first point of every arc after the first is dropped.
func stitch(arcs [][][2]float64, idx []int) [][2]float64 {
	var ring [][2]float64
	for _, i := range idx {
		reversed := i < 0
		if reversed {
			i = ^i
		}
		if i >= len(arcs) {
			continue
		}
		a := arcs[i]
		if reversed {
			r := make([][2]float64, len(a))
			for k := range a {
				r[len(a)-1-k] = a[k]
			}
			a = r
		}
		if len(ring) > 0 && len(a) > 0 {
			a = a[1:]
		}
		ring = append(ring, a...)
	}
	return ring
}

// Decode detects TopoJSON or GeoJSON by the top-level type and decodes it.
// object names the TopoJSON object to read; it is ignored for GeoJSON.
func Decode(data []byte, object string) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &head); err != nil {
		return nil, fmt.Errorf("boundaries: %w", err)
	}
	if head.Type == "Topology" {
		return DecodeTopoJSON(data, object)
	}
	return DecodeGeoJSON(data)
}
