package adtjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/parp-tools/adt"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("json.Unmarshal: %v", err)
		}
		out = append(out, m)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func TestRecorderEmitsWorldAndTile(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	worldID, err := rec.BeginWorld(adt.WorldInfo{Path: "Azeroth.wdt", Format: adt.FormatRetail, Version: 18})
	if err != nil {
		t.Fatalf("BeginWorld: %v", err)
	}
	if _, err := rec.AddTile(worldID, adt.TileInfo{Coord: adt.TileCoord{X: 32, Y: 48}}); err != nil {
		t.Fatalf("AddTile: %v", err)
	}
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0]["kind"] != "world" || lines[0]["path"] != "Azeroth.wdt" {
		t.Fatalf("world record = %+v", lines[0])
	}
	if lines[1]["kind"] != "tile" || lines[1]["x"].(float64) != 32 || lines[1]["y"].(float64) != 48 {
		t.Fatalf("tile record = %+v", lines[1])
	}
}

func TestRecorderEmitsPlacementWithBounds(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	tileID := adt.NewTileId()

	rec.AddPlacement(adt.WorldId{}, tileID, adt.Placement{
		Kind: adt.PlacementObject, Name: "world\\Azeroth.wmo", NameResolved: true,
		Position: adt.Vec3{X: 1, Y: 2, Z: 3}, HasBounds: true,
		BoundsMin: adt.Vec3{X: 0, Y: 0, Z: 0}, BoundsMax: adt.Vec3{X: 10, Y: 10, Z: 10},
	})
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	p := lines[0]
	if p["kind"] != "placement" || p["name"] != "world\\Azeroth.wmo" {
		t.Fatalf("placement = %+v", p)
	}
	if _, ok := p["bounds_min"]; !ok {
		t.Fatal("expected bounds_min for an object placement with HasBounds set")
	}
}

func TestRecorderShadowMapExpandsTo4096Bits(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	mcnkID := adt.NewMcnkId()

	var sm adt.ShadowMap
	sm[0] = 0x01 // bit (0,0) set

	rec.AddShadowMap(mcnkID, sm)
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	values, ok := lines[0]["values"].([]any)
	if !ok || len(values) != 4096 {
		t.Fatalf("values = %v (len %d), want length 4096", lines[0]["values"], len(values))
	}
	if values[0].(float64) != 1 {
		t.Fatalf("values[0] = %v, want 1", values[0])
	}
	if values[1].(float64) != 0 {
		t.Fatalf("values[1] = %v, want 0", values[1])
	}
}

func TestRecorderLiquidModernLayers(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	mcnkID := adt.NewMcnkId()

	rec.AddLiquid(mcnkID, adt.LiquidFields{Liquid: adt.Liquid{
		Kind: adt.LiquidModern,
		Modern: []adt.ModernLiquidLayer{
			{HeightLevel: 1, Width: 8, Height: 8, Fishable: true},
		},
	}})
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := decodeLines(t, &buf)
	if lines[0]["kind"] != "liquid" {
		t.Fatalf("kind = %v, want liquid", lines[0]["kind"])
	}
	layers, ok := lines[0]["layers"].([]any)
	if !ok || len(layers) != 1 {
		t.Fatalf("layers = %v", lines[0]["layers"])
	}
	layer := layers[0].(map[string]any)
	if layer["fishable"] != true {
		t.Fatalf("layer = %+v", layer)
	}
}

func TestRecorderStopsEmittingAfterWriteError(t *testing.T) {
	rec := NewRecorder(&failingWriter{})
	if _, err := rec.BeginWorld(adt.WorldInfo{}); err != nil {
		t.Fatalf("BeginWorld: %v (bufio should still be buffering)", err)
	}
	// A second call after the underlying writer starts failing must not
	// panic; the failure surfaces once Flush forces the buffer out.
	rec.AddTexture(adt.WorldId{}, adt.TileId{}, 0, "tex")
	if err := rec.Flush(); err == nil {
		t.Fatal("expected Flush to report the underlying writer's error")
	}
}

type failingWriter struct{}

func (f *failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = &writeError{"write failed"}

type writeError struct{ msg string }

func (e *writeError) Error() string { return e.msg }
