package adt

// mcshFullSize is the complete MCSH payload size: 512 bytes, 64x64 bits
// packed LSB-first.
const mcshFullSize = 512

// decodeShadowMap decodes an MCSH payload into a 64x64 bit grid. A payload
// shorter than 512 bytes is zero-padded and reported incomplete via the
// returned bool (§4.6); the do-not-fix fixup, when requested, is applied on
// bits instead of bytes.
func decodeShadowMap(payload []byte, doNotFix bool) (ShadowMap, bool) {
	var out ShadowMap
	complete := len(payload) >= mcshFullSize
	n := len(payload)
	if n > mcshFullSize {
		n = mcshFullSize
	}
	copy(out[:], payload[:n])

	if doNotFix {
		fixShadowMap(&out)
	}
	return out, complete
}

// fixShadowMap is the bit analog of fixAlphaMap: the last column is
// replaced with the second-to-last column's bits, and likewise for the
// last row.
func fixShadowMap(m *ShadowMap) {
	for y := 0; y < 64; y++ {
		m.setBit(63, y, m.Bit(62, y))
	}
	for x := 0; x < 64; x++ {
		m.setBit(x, 63, m.Bit(x, 62))
	}
}
