package adt

import "testing"

func TestDecodeHeights(t *testing.T) {
	payload := make([]byte, mcvtSize)
	putF32(payload[0:], 12.5)
	putF32(payload[4:], -3.25)

	h, err := decodeHeights(payload)
	if err != nil {
		t.Fatalf("decodeHeights: %v", err)
	}
	if h[0] != 12.5 || h[1] != -3.25 {
		t.Fatalf("h[0..1] = %v %v", h[0], h[1])
	}
}

func TestDecodeHeightsBadSize(t *testing.T) {
	_, err := decodeHeights(make([]byte, mcvtSize-1))
	if err == nil {
		t.Fatal("expected error for wrong-sized payload")
	}
}
