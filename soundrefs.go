package adt

import (
	"encoding/binary"
	"math"
)

// mcseEntrySize is the fixed MCSE entry size, grounded on original_source's
// chunks/mcse/entry.py: sound_id:u32, sound_type:u32, pos:[f32;3],
// min_distance:f32, max_distance:f32.
const mcseEntrySize = 28

// decodeSoundEmitters decodes an MCSE payload into a slice of emitters, one
// per mcseEntrySize-byte entry.
func decodeSoundEmitters(payload []byte) ([]SoundEmitter, error) {
	if len(payload)%mcseEntrySize != 0 {
		return nil, &BadSize{Tag: "MCSE", Got: len(payload), Want: (len(payload) / mcseEntrySize) * mcseEntrySize}
	}
	n := len(payload) / mcseEntrySize
	out := make([]SoundEmitter, n)
	for i := 0; i < n; i++ {
		off := i * mcseEntrySize
		out[i] = SoundEmitter{
			SoundID:     binary.LittleEndian.Uint32(payload[off:]),
			SoundType:   binary.LittleEndian.Uint32(payload[off+4:]),
			Position:    readVec3(payload[off+8:]),
			MinDistance: readF32(payload[off+20:]),
			MaxDistance: readF32(payload[off+24:]),
		}
	}
	return out, nil
}

// decodeMcnkRefs decodes an MCRF payload: a flat array of u32 indices into
// the tile's MDDF/MODF placement arrays, split at nDoodadRefs using the
// MCNK header's own counts (original_source's chunks/mcrf/parser.py treats
// it as one flat array; the header tells us where doodad refs end and
// object refs begin).
func decodeMcnkRefs(payload []byte, nDoodadRefs, nMapObjRefs int) (McnkRefs, error) {
	want := (nDoodadRefs + nMapObjRefs) * 4
	if len(payload) < want {
		return McnkRefs{}, &Truncated{Offset: 0, Wanted: int64(want), Available: int64(len(payload))}
	}
	doodad := make([]uint32, nDoodadRefs)
	for i := range doodad {
		doodad[i] = binary.LittleEndian.Uint32(payload[i*4:])
	}
	object := make([]uint32, nMapObjRefs)
	for i := range object {
		object[i] = binary.LittleEndian.Uint32(payload[(nDoodadRefs+i)*4:])
	}
	return McnkRefs{DoodadRefs: doodad, ObjectRefs: object}, nil
}

func readVec3(b []byte) Vec3 {
	return Vec3{X: readF32(b), Y: readF32(b[4:]), Z: readF32(b[8:])}
}

func readF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
