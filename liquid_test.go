package adt

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func TestDecodeLegacyLiquid(t *testing.T) {
	// header: first_vertex=1, n_vertices=2, n_faces=1, flags=0x3
	payload := make([]byte, mclqHeaderSize+2*4+1*12)
	binary.LittleEndian.PutUint16(payload[0:], 1)
	binary.LittleEndian.PutUint16(payload[2:], 2)
	binary.LittleEndian.PutUint16(payload[4:], 1)
	binary.LittleEndian.PutUint16(payload[6:], 3)
	putF32(payload[8:], 1.5)
	putF32(payload[12:], 2.5)
	binary.LittleEndian.PutUint32(payload[16:], 0)
	binary.LittleEndian.PutUint32(payload[20:], 1)
	binary.LittleEndian.PutUint32(payload[24:], 2)

	liq, err := decodeLegacyLiquid(payload)
	if err != nil {
		t.Fatalf("decodeLegacyLiquid: %v", err)
	}
	want := &LegacyLiquid{
		FirstVertexIndex: 1,
		Flags:            3,
		Heights:          []float32{1.5, 2.5},
		Faces:            [][3]uint32{{0, 1, 2}},
	}
	if diff := cmp.Diff(want, liq); diff != "" {
		t.Fatalf("decodeLegacyLiquid mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLegacyLiquidTruncated(t *testing.T) {
	_, err := decodeLegacyLiquid(make([]byte, 4))
	if err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestDecodeModernLiquidSkipsZeroInfoMask(t *testing.T) {
	payload := make([]byte, mh2oMaxLayers*mh2oLayerHdrSize)
	layers, err := decodeModernLiquid(payload)
	if err != nil {
		t.Fatalf("decodeModernLiquid: %v", err)
	}
	if len(layers) != 0 {
		t.Fatalf("len(layers) = %d, want 0", len(layers))
	}
}

func TestDecodeModernLiquidOneLayerWithGrids(t *testing.T) {
	const vertexOff = mh2oMaxLayers * mh2oLayerHdrSize
	width, height := 2, 2
	n := width * height
	renderOff := vertexOff + n*4

	payload := make([]byte, renderOff+n)
	infoMask := uint32(mh2oHasVertexGrid|mh2oHasRenderFlags|mh2oFishable) | uint32(width-1)<<16 | uint32(height-1)<<24
	binary.LittleEndian.PutUint32(payload[0:], infoMask)
	binary.LittleEndian.PutUint32(payload[4:], 7) // base height bits
	binary.LittleEndian.PutUint32(payload[8:], uint32(vertexOff))
	binary.LittleEndian.PutUint32(payload[12:], uint32(renderOff))
	for i := 0; i < n; i++ {
		putF32(payload[vertexOff+i*4:], float32(i))
		payload[renderOff+i] = byte(i + 1)
	}

	layers, err := decodeModernLiquid(payload)
	if err != nil {
		t.Fatalf("decodeModernLiquid: %v", err)
	}
	want := []ModernLiquidLayer{{
		HeightLevel: 7,
		Width:       width, Height: height,
		Fishable:    true,
		Vertices:    []float32{0, 1, 2, 3},
		RenderFlags: []uint8{1, 2, 3, 4},
	}}
	if diff := cmp.Diff(want, layers); diff != "" {
		t.Fatalf("decodeModernLiquid mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeModernLiquidTruncatedHeader(t *testing.T) {
	_, err := decodeModernLiquid(make([]byte, 10))
	if err == nil {
		t.Fatal("expected error for short MH2O header block")
	}
}
