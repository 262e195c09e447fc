package adt

const (
	// MphdUseBigAlpha selects high-resolution alpha-map storage.
	MphdUseBigAlpha = 0x4
	// MphdBigAlphaExtra is the second flag bit contributing to high-res
	// selection alongside MphdUseBigAlpha (§4.6).
	MphdBigAlphaExtra = 0x80
	// McnkDoNotFixAlphaMap governs the last-row/last-column fixup.
	McnkDoNotFixAlphaMap = 0x8000
)

// AlphaMapMode is the three-flag-word decision isolated into a single
// value, computed once per layer, per the "Config vs code" design note
// (§9): the alpha-map codec takes this value, never raw flag words.
type AlphaMapMode struct {
	Compressed bool
	HighRes    bool
	DoNotFix   bool
}

// newAlphaMapMode derives an AlphaMapMode from the three source flag
// fields: the layer's own flags (compressed bit), MPHD's world flags
// (high-res bits), and the MCNK's flags (do-not-fix bit).
func newAlphaMapMode(layerFlags, mphdFlags, mcnkFlags uint32) AlphaMapMode {
	return AlphaMapMode{
		Compressed: layerFlags&LayerFlagAlphaMapCompressed != 0,
		HighRes:    mphdFlags&MphdUseBigAlpha != 0 || mphdFlags&MphdBigAlphaExtra != 0,
		DoNotFix:   mcnkFlags&McnkDoNotFixAlphaMap != 0,
	}
}

// decodeAlphaMap decodes one layer's MCAL payload into a 64x64 AlphaMap
// using the encoding selected by mode, per §4.6's three encodings.
// Grounded on WoozyMasta-paa/mip_map.go's readMipMap (branch on stored size
// vs. expected size to pick a codec) and decode_pixel.go's nibble-widening
// idiom (PaxARGB4's "<<4" channel expansion is the model for the 4-bit
// alpha expansion below).
func decodeAlphaMap(payload []byte, mode AlphaMapMode) (AlphaMap, error) {
	var out AlphaMap

	switch {
	case mode.Compressed:
		if err := decodeAlphaRLE(payload, &out); err != nil {
			return out, err
		}
	case mode.HighRes:
		if len(payload) < 4096 {
			return out, &BadEncoding{Kind: "MCAL", Reason: "high-res payload shorter than 4096 bytes"}
		}
		copy(out[:], payload[:4096])
	default:
		if len(payload) < 2048 {
			return out, &BadEncoding{Kind: "MCAL", Reason: "low-res payload shorter than 2048 bytes"}
		}
		decodeAlphaLowRes(payload, &out)
	}

	if mode.DoNotFix {
		fixAlphaMap(&out)
	}
	return out, nil
}

// decodeAlphaLowRes expands 2048 packed-nibble bytes into 4096 output
// bytes: each byte holds two 4-bit samples, widened to 8 bits via
// v = (v << 4) | v.
func decodeAlphaLowRes(payload []byte, out *AlphaMap) {
	for i := 0; i < 2048; i++ {
		b := payload[i]
		a := b & 0x0F
		hi := (b >> 4) & 0x0F
		out[i*2] = a<<4 | a
		out[i*2+1] = hi<<4 | hi
	}
}

// decodeAlphaRLE decodes the compressed command stream: each command byte
// is (fill = ctl&0x80, count = ctl&0x7F); a fill command emits one payload
// byte count times, otherwise count raw payload bytes are emitted once
// each. Decoding stops at 4096 output bytes or when input is exhausted; if
// fewer than 4096 bytes were produced, the remainder is zero-filled and a
// *BadEncoding is still returned (so callers keep whatever was decoded,
// per §4.6's "as many complete alpha-maps as fit").
func decodeAlphaRLE(payload []byte, out *AlphaMap) error {
	oi, pi := 0, 0
	for oi < len(out) && pi < len(payload) {
		ctl := payload[pi]
		pi++
		fill := ctl&0x80 != 0
		count := int(ctl & 0x7F)

		if fill {
			if pi >= len(payload) {
				break
			}
			v := payload[pi]
			pi++
			n := count
			if oi+n > len(out) {
				n = len(out) - oi
			}
			for k := 0; k < n; k++ {
				out[oi+k] = v
			}
			oi += n
		} else {
			n := count
			if pi+n > len(payload) {
				n = len(payload) - pi
			}
			if oi+n > len(out) {
				n = len(out) - oi
			}
			copy(out[oi:oi+n], payload[pi:pi+n])
			oi += n
			pi += count
		}
	}

	if oi < len(out) {
		return &BadEncoding{Kind: "MCAL", Reason: "RLE stream exhausted before 4096 output bytes"}
	}
	return nil
}

// fixAlphaMap applies the do-not-fix-alpha-map correction: the last column
// (x=63) of each row is replaced with the value at x=62, and the last row
// (y=63) with the values of row y=62. Applying it twice is equivalent to
// applying it once (§8 invariant 7), since the second application copies
// x=62/y=62 onto x=63/y=63 again with the same result.
func fixAlphaMap(m *AlphaMap) {
	for y := 0; y < 64; y++ {
		m[y*64+63] = m[y*64+62]
	}
	for x := 0; x < 64; x++ {
		m[63*64+x] = m[62*64+x]
	}
}
