package adt

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDecodeTileMH2OOverridesLegacyLiquid(t *testing.T) {
	mb := newMcnkBuilder()
	mclq := make([]byte, mclqHeaderSize)
	binary.LittleEndian.PutUint16(mclq[6:], 1) // flags = 1
	liquidOff := mb.write("MCLQ", mclq)
	mb.putU32(96, uint32(liquidOff))
	mb.putU32(100, mclqHeaderSize)

	mh2o := make([]byte, mh2oMaxLayers*mh2oLayerHdrSize)
	infoMask := uint32(mh2oFishable)
	binary.LittleEndian.PutUint32(mh2o[0:], infoMask)

	fileData := buildChunks(
		chunk("MVER", []byte{18, 0, 0, 0}),
		chunk("MCNK", mb.buf),
		chunk("MH2O", mh2o),
	)
	path := writeTempFile(t, "tile.adt", fileData)

	sink := NewMemorySink()
	if err := DecodeTile(path, Options{}, sink); err != nil {
		t.Fatalf("DecodeTile: %v", err)
	}

	if len(sink.World.Tiles) != 1 {
		t.Fatalf("len(Tiles) = %d, want 1", len(sink.World.Tiles))
	}
	tile := sink.World.Tiles[0]
	if len(tile.Mcnks) != 1 {
		t.Fatalf("len(Mcnks) = %d, want 1", len(tile.Mcnks))
	}
	liq := tile.Mcnks[0].Liquid
	if liq == nil || liq.Kind != LiquidModern {
		t.Fatalf("liquid = %+v, want LiquidModern override", liq)
	}
	if len(liq.Modern) != 1 || !liq.Modern[0].Fishable {
		t.Fatalf("modern layers = %+v", liq.Modern)
	}
}

func TestDecodeTileRejectsWorldTableFile(t *testing.T) {
	fileData := buildChunks(
		chunk("MVER", []byte{18, 0, 0, 0}),
		chunk("MAIN", make([]byte, 64*64*8)),
	)
	path := writeTempFile(t, "world.wdt", fileData)

	sink := NewMemorySink()
	err := DecodeTile(path, Options{}, sink)
	if err != ErrNotTile {
		t.Fatalf("err = %v, want ErrNotTile", err)
	}
}

func TestDecodeTileRowMajorMcnkOrdering(t *testing.T) {
	// Two MCNKs written out of row-major order on disk; the decoder must
	// re-sort them by (index_y, index_x) before emitting.
	second := newMcnkBuilder()
	second.putU32(4, 1) // index_x = 1
	second.putU32(8, 0) // index_y = 0

	first := newMcnkBuilder()
	first.putU32(4, 0) // index_x = 0
	first.putU32(8, 0) // index_y = 0

	fileData := buildChunks(
		chunk("MVER", []byte{18, 0, 0, 0}),
		chunk("MCNK", second.buf),
		chunk("MCNK", first.buf),
	)
	path := writeTempFile(t, "tile_unordered.adt", fileData)

	sink := NewMemorySink()
	if err := DecodeTile(path, Options{}, sink); err != nil {
		t.Fatalf("DecodeTile: %v", err)
	}
	mcnks := sink.World.Tiles[0].Mcnks
	if len(mcnks) != 2 {
		t.Fatalf("len(Mcnks) = %d, want 2", len(mcnks))
	}
	if mcnks[0].Header.Coord.I != 0 || mcnks[1].Header.Coord.I != 1 {
		t.Fatalf("mcnks not re-sorted row-major: %+v, %+v", mcnks[0].Header.Coord, mcnks[1].Header.Coord)
	}
}
