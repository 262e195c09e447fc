package adt

import (
	"encoding/binary"
)

const (
	mddfEntrySize = 36
	modfEntrySize = 64
)

// decodeDoodadPlacements decodes an MDDF payload into unresolved doodad
// placements: name_id:u32, unique_id:u32, pos:[f32;3], rot:[f32;3],
// scale:u16, flags:u16 (§4.5).
func decodeDoodadPlacements(payload []byte) ([]Placement, error) {
	if len(payload)%mddfEntrySize != 0 {
		return nil, &BadSize{Tag: "MDDF", Got: len(payload), Want: (len(payload) / mddfEntrySize) * mddfEntrySize}
	}
	n := len(payload) / mddfEntrySize
	out := make([]Placement, n)
	for i := 0; i < n; i++ {
		off := i * mddfEntrySize
		out[i] = Placement{
			Kind:     PlacementDoodad,
			NameID:   binary.LittleEndian.Uint32(payload[off:]),
			UniqueID: binary.LittleEndian.Uint32(payload[off+4:]),
			Position: readVec3(payload[off+8:]),
			Rotation: readVec3(payload[off+20:]),
			Scale:    scaleToFloat(binary.LittleEndian.Uint16(payload[off+32:])),
			Flags:    binary.LittleEndian.Uint16(payload[off+34:]),
		}
	}
	return out, nil
}

// decodeObjectPlacements decodes a MODF payload into unresolved
// world-object placements: the MDDF prefix plus bounds_min, bounds_max,
// flags, doodad_set, name_set, scale (§4.5).
func decodeObjectPlacements(payload []byte) ([]Placement, error) {
	if len(payload)%modfEntrySize != 0 {
		return nil, &BadSize{Tag: "MODF", Got: len(payload), Want: (len(payload) / modfEntrySize) * modfEntrySize}
	}
	n := len(payload) / modfEntrySize
	out := make([]Placement, n)
	for i := 0; i < n; i++ {
		off := i * modfEntrySize
		out[i] = Placement{
			Kind:      PlacementObject,
			NameID:    binary.LittleEndian.Uint32(payload[off:]),
			UniqueID:  binary.LittleEndian.Uint32(payload[off+4:]),
			Position:  readVec3(payload[off+8:]),
			Rotation:  readVec3(payload[off+20:]),
			BoundsMin: readVec3(payload[off+32:]),
			BoundsMax: readVec3(payload[off+44:]),
			HasBounds: true,
			Flags:     binary.LittleEndian.Uint16(payload[off+56:]),
			DoodadSet: binary.LittleEndian.Uint16(payload[off+58:]),
			NameSet:   binary.LittleEndian.Uint16(payload[off+60:]),
			Scale:     scaleToFloat(binary.LittleEndian.Uint16(payload[off+62:])),
		}
	}
	return out, nil
}

// scaleToFloat converts the 16-bit fixed-point placement scale to its
// logical float value. scale=0 yields 0.0, never a divide-by-zero (§8
// boundary behavior).
func scaleToFloat(scale uint16) float32 {
	return float32(scale) / 1024.0
}
