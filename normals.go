package adt

// mcnrCoreSize is the fixed MCNR normal data size: 3*145 signed bytes. Retail
// chunks carry an additional 13-byte pad that is part of the chunk payload
// but not normal data (§3); alpha omits the pad.
const (
	mcnrCoreSize = 3 * 145
	mcnrPadSize  = 13
	mcnrRetailSize = mcnrCoreSize + mcnrPadSize
)

// decodeNormals decodes an MCNR payload into 145 unit vectors, dividing
// each signed-byte component by 127 (§3). payload must be mcnrCoreSize
// (alpha) or mcnrRetailSize (retail; trailing pad ignored) bytes.
func decodeNormals(payload []byte) ([145]Normal, error) {
	var out [145]Normal
	if len(payload) != mcnrCoreSize && len(payload) != mcnrRetailSize {
		return out, &BadSize{Tag: "MCNR", Got: len(payload), Want: mcnrRetailSize}
	}
	for i := range out {
		off := i * 3
		out[i] = Normal{
			X: float32(int8(payload[off])) / 127,
			Y: float32(int8(payload[off+1])) / 127,
			Z: float32(int8(payload[off+2])) / 127,
		}
	}
	return out, nil
}
