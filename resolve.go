package adt

import "fmt"

// NameTable is a parsed MMDX/MWMO/MDNM/MONM name block: the set of
// null-terminated strings found in the payload, keyed by each string's byte
// offset from the start of the payload (§4.4/§4.7).
type NameTable map[uint32]string

// parseNameTable splits a name-chunk payload into null-terminated strings,
// recording each one's starting byte offset so the paired index array
// (MMID/MWID) can resolve into it.
func parseNameTable(payload []byte) NameTable {
	table := make(NameTable)
	start := 0
	for i := 0; i < len(payload); i++ {
		if payload[i] == 0 {
			if i > start {
				table[uint32(start)] = string(payload[start:i])
			}
			start = i + 1
		}
	}
	if start < len(payload) {
		table[uint32(start)] = string(payload[start:])
	}
	return table
}

// parseNameTableOrdered is parseNameTable plus the list-order sequence of
// offsets, used to build a synthetic index array for alpha's MDNM/MONM
// tables, which have no paired MMID/MWID: alpha's placement name_id is
// simply the string's position in list order (§9 Open Question
// resolution), so offsets[i] gives the i-th string's table key directly.
func parseNameTableOrdered(payload []byte) (NameTable, []uint32) {
	table := make(NameTable)
	var offsets []uint32
	start := 0
	for i := 0; i < len(payload); i++ {
		if payload[i] == 0 {
			if i > start {
				table[uint32(start)] = string(payload[start:i])
				offsets = append(offsets, uint32(start))
			}
			start = i + 1
		}
	}
	if start < len(payload) {
		table[uint32(start)] = string(payload[start:])
		offsets = append(offsets, uint32(start))
	}
	return table, offsets
}

// parseIndexArray decodes an MMID/MWID payload into a u32 array; the i-th
// placement's name_id indexes into this array, and the array entry is the
// byte offset into the paired NameTable.
func parseIndexArray(payload []byte) []uint32 {
	n := len(payload) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = readU32LE(payload[i*4:])
	}
	return out
}

func readU32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// AssetResolver joins a tile's model-name and world-object-name tables with
// their index arrays to resolve placement name_id fields into names (§4.7).
// Unique-id tracking for uid.ini is a separate concern, handled by
// uidTracker at the world level.
type AssetResolver struct {
	doodadNames NameTable
	doodadIndex []uint32
	objectNames NameTable
	objectIndex []uint32
}

// NewAssetResolver builds a resolver from a tile's parsed name tables and
// index arrays. Any of these may be nil/empty (an alpha tile with no
// world-object names, for instance).
func NewAssetResolver(doodadNames, objectNames NameTable, doodadIndex, objectIndex []uint32) *AssetResolver {
	return &AssetResolver{
		doodadNames: doodadNames,
		doodadIndex: doodadIndex,
		objectNames: objectNames,
		objectIndex: objectIndex,
	}
}

// Resolve fills in p.Name and p.NameResolved and returns the updated
// Placement. Unique-id tracking is the caller's responsibility (uidTracker).
func (r *AssetResolver) Resolve(p Placement) Placement {
	var index []uint32
	var names NameTable
	if p.Kind == PlacementObject {
		index, names = r.objectIndex, r.objectNames
	} else {
		index, names = r.doodadIndex, r.doodadNames
	}

	if int(p.NameID) < 0 || int(p.NameID) >= len(index) {
		p.Name = invalidAssetName(p.NameID)
		p.NameResolved = false
		return p
	}
	offset := index[p.NameID]
	name, ok := names[offset]
	if !ok {
		p.Name = invalidAssetName(p.NameID)
		p.NameResolved = false
		return p
	}
	p.Name = name
	p.NameResolved = true
	return p
}

func invalidAssetName(index uint32) string {
	return fmt.Sprintf("<invalid:%d>", index)
}
