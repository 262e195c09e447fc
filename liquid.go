package adt

import (
	"encoding/binary"
	"math"
)

const mclqHeaderSize = 8

// decodeLegacyLiquid decodes an MCLQ payload: an 8-byte header
// (first_vertex_index, n_vertices, n_faces, flags), n_vertices f32 height
// values, then n_faces uint32 triples (face indices). Grounded on
// original_source's chunks/mclq/parser.py field order.
func decodeLegacyLiquid(payload []byte) (*LegacyLiquid, error) {
	if len(payload) < mclqHeaderSize {
		return nil, &Truncated{Offset: 0, Wanted: mclqHeaderSize, Available: int64(len(payload))}
	}
	firstVertex := binary.LittleEndian.Uint16(payload[0:])
	nVertices := binary.LittleEndian.Uint16(payload[2:])
	nFaces := binary.LittleEndian.Uint16(payload[4:])
	flags := binary.LittleEndian.Uint16(payload[6:])

	off := mclqHeaderSize
	want := off + int(nVertices)*4 + int(nFaces)*12
	if len(payload) < want {
		return nil, &Truncated{Offset: int64(off), Wanted: int64(want - off), Available: int64(len(payload) - off)}
	}

	heights := make([]float32, nVertices)
	for i := range heights {
		bits := binary.LittleEndian.Uint32(payload[off+i*4:])
		heights[i] = math.Float32frombits(bits)
	}
	off += int(nVertices) * 4

	faces := make([][3]uint32, nFaces)
	for i := range faces {
		faces[i] = [3]uint32{
			binary.LittleEndian.Uint32(payload[off+i*12:]),
			binary.LittleEndian.Uint32(payload[off+i*12+4:]),
			binary.LittleEndian.Uint32(payload[off+i*12+8:]),
		}
	}

	return &LegacyLiquid{
		FirstVertexIndex: firstVertex,
		Flags:            flags,
		Heights:          heights,
		Faces:            faces,
	}, nil
}

const (
	mh2oMaxLayers    = 8
	mh2oLayerHdrSize = 16

	mh2oHasVertexGrid  = 1 << 0
	mh2oHasRenderFlags = 1 << 1
	mh2oFishable       = 1 << 2
	mh2oCausesFatigue  = 1 << 3
)

// decodeModernLiquid decodes an MH2O chunk payload into up to 8 layers, per
// §4.6 and original_source's chunks/mh2o/parser.py (MAX_LAYERS=8, 16-byte
// headers, skip when info_mask==0).
func decodeModernLiquid(payload []byte) ([]ModernLiquidLayer, error) {
	if len(payload) < mh2oMaxLayers*mh2oLayerHdrSize {
		return nil, &Truncated{Offset: 0, Wanted: mh2oMaxLayers * mh2oLayerHdrSize, Available: int64(len(payload))}
	}

	var layers []ModernLiquidLayer
	for i := 0; i < mh2oMaxLayers; i++ {
		hoff := i * mh2oLayerHdrSize
		infoMask := binary.LittleEndian.Uint32(payload[hoff:])
		if infoMask == 0 {
			continue
		}
		baseHeight := binary.LittleEndian.Uint32(payload[hoff+4:])
		offVertex := binary.LittleEndian.Uint32(payload[hoff+8:])
		offRender := binary.LittleEndian.Uint32(payload[hoff+12:])

		width := int((infoMask>>16)&0xFF) + 1
		height := int((infoMask>>24)&0xFF) + 1

		layer := ModernLiquidLayer{
			HeightLevel:   baseHeight,
			Width:         width,
			Height:        height,
			Fishable:      infoMask&mh2oFishable != 0,
			CausesFatigue: infoMask&mh2oCausesFatigue != 0,
		}

		if infoMask&mh2oHasVertexGrid != 0 && offVertex != 0 {
			n := width * height
			end := int(offVertex) + n*4
			if end > len(payload) {
				return nil, &Truncated{Offset: int64(offVertex), Wanted: int64(n * 4), Available: int64(len(payload) - int(offVertex))}
			}
			verts := make([]float32, n)
			for k := range verts {
				bits := binary.LittleEndian.Uint32(payload[int(offVertex)+k*4:])
				verts[k] = math.Float32frombits(bits)
			}
			layer.Vertices = verts
		}

		if infoMask&mh2oHasRenderFlags != 0 && offRender != 0 {
			n := width * height
			end := int(offRender) + n
			if end > len(payload) {
				return nil, &Truncated{Offset: int64(offRender), Wanted: int64(n), Available: int64(len(payload) - int(offRender))}
			}
			flags := make([]uint8, n)
			copy(flags, payload[offRender:end])
			layer.RenderFlags = flags
		}

		layers = append(layers, layer)
	}

	return layers, nil
}
