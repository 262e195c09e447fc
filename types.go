/*
Package adt decodes the WDT (world table) and ADT (tile) binary terrain
formats used by a family of MMO world data, in both the older "alpha"
variant (terrain embedded in the world file) and the newer "retail" variant
(one file per tile). It normalizes both into a common stream of typed
records handed to a Sink (see Sink).

The package auto-detects both the container's tag byte orientation (see
ChunkIndex.Orientation) and the on-disk format era (see DetectFormat); callers never need to
know in advance which variant a file uses.

Decoding is single-threaded per file and allocates no process-wide state;
a caller wanting to decode many files concurrently can use DecodeAll, or
simply call DecodeWorld/DecodeTile from multiple goroutines with distinct
Options (Options.Cancel aside, nothing is shared).
*/
package adt

// TileCoord identifies a world tile. 0 <= X, Y < 64.
type TileCoord struct {
	X, Y int
}

// McnkCoord identifies a sub-tile within one tile. 0 <= I, J < 16.
type McnkCoord struct {
	I, J int
}

// Format distinguishes the on-disk chunk-layout era of a file.
type Format int

const (
	// FormatRetail is the newer per-tile-file layout.
	FormatRetail Format = iota
	// FormatAlpha is the older layout with terrain embedded in the world file.
	FormatAlpha
)

func (f Format) String() string {
	if f == FormatAlpha {
		return "alpha"
	}
	return "retail"
}

// Container distinguishes a world-table file from a tile file.
type Container int

const (
	// ContainerTile holds a single tile's terrain and placement data.
	ContainerTile Container = iota
	// ContainerWorldTable holds the 64x64 tile-presence grid and, for alpha
	// files, embedded tile payloads.
	ContainerWorldTable
)

// Orientation is the per-file tag byte order, auto-detected once per file
// and held constant for the remainder of the parse.
type Orientation int

const (
	// OrientationForward stores tags in natural left-to-right byte order.
	OrientationForward Orientation = iota
	// OrientationReversed stores tags byte-reversed across the whole file.
	OrientationReversed
)

// Vec3 is a 3-component float32 vector (position, rotation axis, or similar).
type Vec3 struct {
	X, Y, Z float32
}

// Heightfield is a 145-entry vertex grid: a row-major 9x9 outer grid
// interleaved with a row-major 8x8 inner grid, stored in that order on disk
// and kept in that order here.
type Heightfield [145]float32

// Normal is a unit vector derived from a signed 8-bit triple by dividing
// each component by 127.
type Normal struct {
	X, Y, Z float32
}

// VertexColor is one of 145 per-MCNK vertex colors, stored BGRA on disk and
// normalized to RGBA here.
type VertexColor struct {
	R, G, B, A uint8
}

// TextureLayer references one texture-name-table entry plus blending flags.
type TextureLayer struct {
	TextureIndex uint32
	Flags        uint32
	// EffectID is only meaningful for retail layers; zero in alpha.
	EffectID int32
	// AlphaMapOffset is the retail MCAL offset recorded on the layer; alpha
	// layers never carry one (always zero).
	AlphaMapOffset uint32
}

const (
	// LayerFlagAlphaMapPresent (bit 8) signals a following MCAL entry.
	LayerFlagAlphaMapPresent = 0x100
	// LayerFlagAlphaMapCompressed (bit 9) selects the RLE alpha-map encoding.
	LayerFlagAlphaMapCompressed = 0x200
)

// HasAlphaMap reports whether this layer has an associated alpha map.
func (l TextureLayer) HasAlphaMap() bool {
	return l.Flags&LayerFlagAlphaMapPresent != 0
}

// Compressed reports whether this layer's alpha map uses the RLE encoding.
func (l TextureLayer) Compressed() bool {
	return l.Flags&LayerFlagAlphaMapCompressed != 0
}

// AlphaMap is a decoded 64x64 blending mask, row-major, one per texture
// layer beyond the first.
type AlphaMap [4096]byte

// ShadowMap is a 64x64 bit-packed (LSB-first) shadow mask.
type ShadowMap [512]byte

// Bit returns the shadow bit at (x, y), 0 <= x, y < 64.
func (s ShadowMap) Bit(x, y int) bool {
	idx := y*64 + x
	return s[idx/8]&(1<<(uint(idx)%8)) != 0
}

// setBit sets the shadow bit at (x, y).
func (s *ShadowMap) setBit(x, y int, v bool) {
	idx := y*64 + x
	mask := byte(1 << (uint(idx) % 8))
	if v {
		s[idx/8] |= mask
	} else {
		s[idx/8] &^= mask
	}
}

// PlacementKind distinguishes a doodad (M2) placement from a world-object
// (WMO) placement.
type PlacementKind int

const (
	// PlacementDoodad is an MDDF entry (small placed model).
	PlacementDoodad PlacementKind = iota
	// PlacementObject is an MODF entry (large placed model with bounds).
	PlacementObject
)

// Placement is a fully- or partially-resolved model/WMO placement record.
type Placement struct {
	Name           string
	Kind           PlacementKind
	NameID         uint32
	UniqueID       uint32
	Position       Vec3
	Rotation       Vec3
	BoundsMin      Vec3
	BoundsMax      Vec3
	Scale          float32
	Flags          uint16
	DoodadSet      uint16
	NameSet        uint16
	NameResolved   bool
	HasBounds      bool
}

// PresenceGrid is the 64x64 tile-presence grid parsed from MAIN. Consumed by
// the map-grid visualizer (external collaborator); this package only
// produces it.
type PresenceGrid [64][64]bool

// SoundEmitter is one MCSE entry.
type SoundEmitter struct {
	SoundID     uint32
	SoundType   uint32
	Position    Vec3
	MinDistance float32
	MaxDistance float32
}

// McnkRefs is the decoded MCRF reference index, split into doodad and
// world-object references using the MCNK header's own counts.
type McnkRefs struct {
	DoodadRefs []uint32
	ObjectRefs []uint32
}

// LiquidKind distinguishes the legacy per-MCNK liquid chunk from the
// modern tile-level MH2O layer set.
type LiquidKind int

const (
	// LiquidNone means the MCNK carries no liquid data.
	LiquidNone LiquidKind = iota
	// LiquidLegacy is a decoded MCLQ chunk.
	LiquidLegacy
	// LiquidModern is a decoded MH2O layer set.
	LiquidModern
)

// Liquid is a tagged union: exactly one of Legacy or Modern is populated,
// selected by Kind. Modeled as a sum type per the "prefer sum-type-driven
// dispatch" design note rather than an interface hierarchy.
type Liquid struct {
	Kind   LiquidKind
	Legacy *LegacyLiquid
	Modern []ModernLiquidLayer
}

// LegacyLiquid is the decoded body of an MCLQ chunk.
type LegacyLiquid struct {
	FirstVertexIndex uint16
	Flags            uint16
	Heights          []float32
	Faces            [][3]uint32
}

// ModernLiquidLayer is one MH2O layer.
type ModernLiquidLayer struct {
	HeightLevel     uint32
	Width, Height   int
	Fishable        bool
	CausesFatigue   bool
	Vertices        []float32 // len == Width*Height when present
	RenderFlags     []uint8   // len == Width*Height when present
}
