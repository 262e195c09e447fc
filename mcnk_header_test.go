package adt

import (
	"encoding/binary"
	"testing"
)

func TestRetailMcnkHeaderOffsets(t *testing.T) {
	payload := make([]byte, retailMcnkHeaderSize)
	binary.LittleEndian.PutUint32(payload[0:], 0x1)    // flags
	binary.LittleEndian.PutUint32(payload[4:], 3)       // index_x
	binary.LittleEndian.PutUint32(payload[8:], 5)       // index_y
	binary.LittleEndian.PutUint32(payload[12:], 2)      // n_layers
	binary.LittleEndian.PutUint32(payload[16:], 4)      // n_doodad_refs
	binary.LittleEndian.PutUint32(payload[20:], 128)    // offset heights
	binary.LittleEndian.PutUint32(payload[24:], 716)     // offset normals
	binary.LittleEndian.PutUint32(payload[52:], 99)      // area_id
	binary.LittleEndian.PutUint32(payload[56:], 6)       // n_map_obj_refs
	binary.LittleEndian.PutUint32(payload[60:], 0xFFFF)  // holes

	r := newByteReader(byteSlice(payload))
	h, off, err := retailMcnkHeader(r)
	if err != nil {
		t.Fatalf("retailMcnkHeader: %v", err)
	}
	if h.Coord != (McnkCoord{I: 3, J: 5}) {
		t.Fatalf("coord = %+v", h.Coord)
	}
	if h.NLayers != 2 || h.NDoodadRefs != 4 || h.NMapObjRefs != 6 {
		t.Fatalf("header counts = %+v", h)
	}
	if !h.AreaIDReliable || h.AreaID != 99 {
		t.Fatalf("area id = %d reliable=%v", h.AreaID, h.AreaIDReliable)
	}
	if off.heights != 128 || off.normals != 716 {
		t.Fatalf("offsets = %+v", off)
	}
}

func TestAlphaMcnkHeaderComputesChainedOffsets(t *testing.T) {
	payload := make([]byte, alphaMcnkHeaderSize)
	binary.LittleEndian.PutUint32(payload[0:], 0x2) // flags
	binary.LittleEndian.PutUint32(payload[4:], 7)    // area_id
	binary.LittleEndian.PutUint32(payload[8:], 2)    // n_layers
	binary.LittleEndian.PutUint32(payload[12:], 3)   // n_doodad_refs

	r := newByteReader(byteSlice(payload))
	h, off, err := alphaMcnkHeader(r)
	if err != nil {
		t.Fatalf("alphaMcnkHeader: %v", err)
	}
	if h.AreaIDReliable {
		t.Fatal("alpha header should report AreaIDReliable=false")
	}
	if off.heights != 16 {
		t.Fatalf("heights offset = %d, want 16", off.heights)
	}
	wantNormals := int64(16 + 580)
	if off.normals != wantNormals {
		t.Fatalf("normals offset = %d, want %d", off.normals, wantNormals)
	}
	wantLayers := wantNormals + 435
	if off.layers != wantLayers {
		t.Fatalf("layers offset = %d, want %d", off.layers, wantLayers)
	}
	wantRefs := wantLayers + 2*8
	if off.refs != wantRefs {
		t.Fatalf("refs offset = %d, want %d", off.refs, wantRefs)
	}
	wantShadow := wantRefs + 3*4
	if off.shadow != wantShadow {
		t.Fatalf("shadow offset = %d, want %d", off.shadow, wantShadow)
	}
	if off.shadowSize != 64 {
		t.Fatalf("shadowSize = %d, want 64", off.shadowSize)
	}
	wantVertexColors := wantShadow + 64
	if off.vertexColors != wantVertexColors {
		t.Fatalf("vertexColors offset = %d, want %d", off.vertexColors, wantVertexColors)
	}
	wantLiquid := wantVertexColors + 580
	if off.liquid != wantLiquid {
		t.Fatalf("liquid offset = %d, want %d", off.liquid, wantLiquid)
	}
	if off.liquidSize != -1 {
		t.Fatalf("liquidSize = %d, want -1 (read-to-end sentinel)", off.liquidSize)
	}
}
