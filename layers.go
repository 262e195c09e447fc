package adt

import "encoding/binary"

const (
	retailLayerSize = 16
	alphaLayerSize  = 8
)

// decodeLayers decodes an MCLY payload into up to nLayers texture layer
// records. Retail entries are 16 bytes (texture index, flags, alpha-map
// offset, effect id); alpha entries are 8 bytes (texture index, flags),
// per §3/§4.6.
func decodeLayers(payload []byte, nLayers int, format Format) ([]TextureLayer, error) {
	size := alphaLayerSize
	if format == FormatRetail {
		size = retailLayerSize
	}
	want := nLayers * size
	if len(payload) < want {
		return nil, &Truncated{Offset: 0, Wanted: int64(want), Available: int64(len(payload))}
	}

	out := make([]TextureLayer, nLayers)
	for i := 0; i < nLayers; i++ {
		off := i * size
		texIdx := binary.LittleEndian.Uint32(payload[off:])
		flags := binary.LittleEndian.Uint32(payload[off+4:])
		l := TextureLayer{TextureIndex: texIdx, Flags: flags}
		if format == FormatRetail {
			l.AlphaMapOffset = binary.LittleEndian.Uint32(payload[off+8:])
			l.EffectID = int32(binary.LittleEndian.Uint32(payload[off+12:]))
		}
		out[i] = l
	}
	return out, nil
}
