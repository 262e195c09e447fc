package adt

import (
	"encoding/binary"
	"testing"
)

// buildChunks concatenates a run of {tag[4], size:u32, payload} records.
func buildChunks(chunks ...struct {
	tag     string
	payload []byte
}) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, []byte(c.tag)...)
		var size [4]byte
		binary.LittleEndian.PutUint32(size[:], uint32(len(c.payload)))
		out = append(out, size[:]...)
		out = append(out, c.payload...)
	}
	return out
}

func chunk(tag string, payload []byte) struct {
	tag     string
	payload []byte
} {
	return struct {
		tag     string
		payload []byte
	}{tag, payload}
}

func TestScanForwardOrientation(t *testing.T) {
	data := buildChunks(
		chunk("MVER", []byte{18, 0, 0, 0}),
		chunk("MAIN", make([]byte, 16)),
	)
	idx, err := scan(newByteReader(byteSlice(data)), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if idx.Orientation != OrientationForward {
		t.Fatalf("orientation = %v, want forward", idx.Orientation)
	}
	if !idx.Has("MVER") || !idx.Has("MAIN") {
		t.Fatalf("expected MVER and MAIN present")
	}
	loc, ok := idx.First("MAIN")
	if !ok || loc.Size != 16 {
		t.Fatalf("MAIN locator = %+v, ok=%v", loc, ok)
	}
}

func TestScanReversedOrientation(t *testing.T) {
	data := buildChunks(
		chunk(reverseTag("MVER"), []byte{18, 0, 0, 0}),
		chunk(reverseTag("MAIN"), make([]byte, 8)),
	)
	idx, err := scan(newByteReader(byteSlice(data)), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if idx.Orientation != OrientationReversed {
		t.Fatalf("orientation = %v, want reversed", idx.Orientation)
	}
	if !idx.Has("MVER") {
		t.Fatalf("expected forward-keyed MVER present after reversal")
	}
}

func TestScanMultipleSameTag(t *testing.T) {
	data := buildChunks(
		chunk("MVER", []byte{18, 0, 0, 0}),
		chunk("MCNK", []byte{1}),
		chunk("MCNK", []byte{2}),
	)
	idx, err := scan(newByteReader(byteSlice(data)), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	locs := idx.Tags("MCNK")
	if len(locs) != 2 {
		t.Fatalf("len(locs) = %d, want 2", len(locs))
	}
}

func TestScanTruncatedPayload(t *testing.T) {
	data := []byte("MVER")
	data = append(data, 10, 0, 0, 0) // claims 10 bytes, provides none
	_, err := scan(newByteReader(byteSlice(data)), nil)
	if err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestScanNoChunks(t *testing.T) {
	_, err := scan(newByteReader(byteSlice(nil)), nil)
	if err != ErrNoChunks {
		t.Fatalf("err = %v, want ErrNoChunks", err)
	}
}

func TestScanAmbiguousOrientationDefaultsForward(t *testing.T) {
	data := buildChunks(chunk("XXXX", []byte{1, 2, 3, 4}))
	idx, err := scan(newByteReader(byteSlice(data)), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if idx.Orientation != OrientationForward {
		t.Fatalf("orientation = %v, want forward default", idx.Orientation)
	}
}
