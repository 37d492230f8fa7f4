package geom

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func featureNames(fs []Feature) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

func TestDecodeTopoJSON(t *testing.T) {
	fs, err := DecodeTopoJSON(mustRead(t, "testdata/topo.json"), "countries")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Square", "Tri", "TriRev"}, featureNames(fs)); diff != "" {
		t.Fatalf("features (-want +got):\n%s", diff)
	}
	square := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	if diff := cmp.Diff(square, fs[0].Polygons[0][0]); diff != "" {
		t.Errorf("square ring (-want +got):\n%s", diff)
	}
	tri := [][2]float64{{20, 0}, {30, 0}, {25, 10}, {20, 0}}
	if diff := cmp.Diff(tri, fs[1].Polygons[0][0]); diff != "" {
		t.Errorf("stitched ring (-want +got):\n%s", diff)
	}
	triRev := [][2]float64{{20, 0}, {25, 10}, {30, 0}, {20, 0}}
	if diff := cmp.Diff(triRev, fs[2].Polygons[0][0]); diff != "" {
		t.Errorf("reversed ring (-want +got):\n%s", diff)
	}
	if len(fs[2].Polygons) != 2 {
		t.Errorf("multipolygon: got %d polygons", len(fs[2].Polygons))
	}
	if fs[0].ID != "001" || fs[1].ID != "2" {
		t.Errorf("ids = %q, %q", fs[0].ID, fs[1].ID)
	}
	want := BBox{MinX: 0, MinY: 0, MaxX: 30, MaxY: 10}
	if diff := cmp.Diff(want, fs[2].BBox); diff != "" {
		t.Errorf("bbox (-want +got):\n%s", diff)
	}
}

func TestDecodeTopoJSON_Transform(t *testing.T) {
	data := []byte(`{"type":"Topology","transform":{"scale":[0.5,2],"translate":[100,-50]},
		"objects":{"o":{"type":"GeometryCollection","geometries":[
			{"type":"Polygon","properties":{"name":"A"},"arcs":[[0]]}]}},
		"arcs":[[[0,0],[4,0],[0,5],[-4,-5]]]}`)
	fs, err := DecodeTopoJSON(data, "o")
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]float64{{100, -50}, {102, -50}, {102, -40}, {100, -50}}
	if diff := cmp.Diff(want, fs[0].Polygons[0][0]); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeTopoJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		obj  string
	}{
		{"not json", `{`, "countries"},
		{"wrong type", `{"type":"FeatureCollection"}`, "countries"},
		{"missing object", `{"type":"Topology","objects":{},"arcs":[]}`, "countries"},
		{"bad arcs", `{"type":"Topology","objects":{"c":{"type":"Polygon","arcs":"x"}},"arcs":[]}`, "c"},
	}
	for _, tt := range tests {
		if _, err := DecodeTopoJSON([]byte(tt.data), tt.obj); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	empty := `{"type":"Topology","objects":{"c":{"type":"GeometryCollection","geometries":[]}},"arcs":[]}`
	if _, err := DecodeTopoJSON([]byte(empty), "c"); !errors.Is(err, ErrNoFeatures) {
		t.Errorf("expected ErrNoFeatures, got %v", err)
	}
}

func TestDecodeGeoJSON(t *testing.T) {
	fs, err := DecodeGeoJSON(mustRead(t, "testdata/world.geojson"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Norway", "Islands"}, featureNames(fs)); diff != "" {
		t.Fatalf("features (-want +got):\n%s", diff)
	}
	if fs[0].ID != "578" {
		t.Errorf("id = %q", fs[0].ID)
	}
	if len(fs[1].Polygons) != 2 {
		t.Errorf("expected 2 polygons, got %d", len(fs[1].Polygons))
	}
	if _, err := DecodeGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`)); err == nil {
		t.Error("expected error for bare geometry")
	}
}

func TestDecode_Detects(t *testing.T) {
	topo, err := Decode(mustRead(t, "testdata/topo.json"), "countries")
	if err != nil || len(topo) != 3 {
		t.Fatalf("topology: %d features, err %v", len(topo), err)
	}
	geo, err := Decode(mustRead(t, "testdata/world.geojson"), "ignored")
	if err != nil || len(geo) != 2 {
		t.Fatalf("geojson: %d features, err %v", len(geo), err)
	}
	if _, err := Decode([]byte("not json"), "countries"); err == nil {
		t.Error("expected error")
	}
}

func TestMercator(t *testing.T) {
	x, y := Mercator(0, 0)
	if x != 0 || math.Abs(y) > 1e-12 {
		t.Errorf("origin = %v, %v", x, y)
	}
	x, _ = Mercator(180, 0)
	if math.Abs(x-math.Pi) > 1e-12 {
		t.Errorf("antimeridian x = %v", x)
	}
	_, yClamped := Mercator(0, 90)
	_, yMax := Mercator(0, MaxLat)
	if yClamped != yMax {
		t.Errorf("latitude not clamped: %v vs %v", yClamped, yMax)
	}
	_, north := Mercator(0, 60)
	_, south := Mercator(0, -60)
	if north <= 0 || math.Abs(north+south) > 1e-12 {
		t.Errorf("asymmetric: %v %v", north, south)
	}
}

func TestFit(t *testing.T) {
	f := NewFit(BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, 21, 11, 1, 0, 0)
	if !f.Valid() {
		t.Fatal("fit should be valid")
	}
	// Height limits the scale: 10 units over 10 pixels, centred horizontally.
	if x, y := f.Apply(0, 10); x != 5 || y != 0 {
		t.Errorf("top-left = %d,%d", x, y)
	}
	if x, y := f.Apply(10, 0); x != 15 || y != 10 {
		t.Errorf("bottom-right = %d,%d", x, y)
	}
	if NewFit(BBox{}, 10, 10, 1, 0, 0).Valid() {
		t.Error("empty box should not fit")
	}
}
