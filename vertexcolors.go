package adt

// mccvSize is the fixed MCCV payload size: 145 BGRA quads.
const mccvSize = 145 * 4

// decodeVertexColors decodes an MCCV payload, stored BGRA on disk, into
// RGBA (§3/§4.6). Grounded on WoozyMasta-paa/decode_pixel.go's
// decodePixelFormat PaxARGB8 case, which performs the identical B<->R swap
// for a BGRA-on-disk pixel format.
func decodeVertexColors(payload []byte) ([145]VertexColor, error) {
	var out [145]VertexColor
	if len(payload) != mccvSize {
		return out, &BadSize{Tag: "MCCV", Got: len(payload), Want: mccvSize}
	}
	for i := range out {
		off := i * 4
		out[i] = VertexColor{
			R: payload[off+2],
			G: payload[off+1],
			B: payload[off+0],
			A: payload[off+3],
		}
	}
	return out, nil
}
