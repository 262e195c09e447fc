package adt

import "github.com/google/uuid"

// WorldId, TileId, McnkId, and LayerId are opaque record identities handed
// back by a Sink so later calls (add_heights, add_alpha_map, ...) can
// reference the record they belong to. Represented as uuid.UUID since the
// spec leaves identity representation to the implementer (§4.8).
type (
	WorldId uuid.UUID
	TileId  uuid.UUID
	McnkId  uuid.UUID
	LayerId uuid.UUID
)

// NewWorldId, NewTileId, NewMcnkId, and NewLayerId mint fresh record
// identities. Sink implementations (MemorySink, adtjson.Recorder) call
// these to produce the ids they return; the decoder only passes ids back.
func NewWorldId() WorldId { return WorldId(uuid.New()) }
func NewTileId() TileId   { return TileId(uuid.New()) }
func NewMcnkId() McnkId   { return McnkId(uuid.New()) }
func NewLayerId() LayerId { return LayerId(uuid.New()) }

// WorldInfo is the set of fields known when a world's parse begins.
type WorldInfo struct {
	Path      string
	Format    Format
	Version   uint32
	Flags     uint32
	Cancelled bool
}

// TileInfo is the set of fields known when a tile begins, mirroring the
// MAIN cell that announced it (§4.4 phase 2). Offset/Size are zero for
// retail tiles, which carry no embedded-blob geometry.
type TileInfo struct {
	Coord   TileCoord
	Offset  uint32
	Size    uint32
	Flags   uint32
	AsyncID uint32
}

// AssetKind distinguishes a texture name from a model (M2/WMO) name.
type AssetKind int

const (
	AssetTexture AssetKind = iota
	AssetModelDoodad
	AssetModelObject
)

// McnkHeaderFields carries the header values common to both MCNK formats,
// normalized to one shape regardless of which 128-byte/16-byte on-disk
// layout produced them.
type McnkHeaderFields struct {
	Coord            McnkCoord
	Flags            uint32
	AreaID           uint32
	AreaIDReliable   bool
	NLayers          uint32
	NDoodadRefs      uint32
	NMapObjRefs      uint32
	Holes            uint32
	WorldPosition    Vec3
	HasHeights       bool
	HasNormals       bool
	HasVertexColors  bool
	HasShadowMap     bool
	HasLiquid        bool
	PartiallyDecoded bool
	// SubErrors collects the per-sub-chunk errors attached to this MCNK,
	// per the failure model in §4.6/§7: a sub-chunk error never aborts the
	// MCNK, it is recorded here instead.
	SubErrors []error
}

// LayerFields is what add_layer receives; AlphaMapOffset/EffectID are only
// meaningful for retail.
type LayerFields struct {
	TextureIndex   uint32
	Flags          uint32
	EffectID       int32
	AlphaMapOffset uint32
}

// LiquidFields is what add_liquid receives.
type LiquidFields struct {
	Liquid
}

// Sink is the normalized-record stream consumed by the decoder (§4.8). An
// implementation may persist, stream, or discard records; the decoder
// issues calls in tile-major then MCNK-major order within a world and
// assumes each call succeeds synchronously or panics/returns from the
// enclosing Decode* call (there is no backpressure protocol, per §5).
type Sink interface {
	BeginWorld(info WorldInfo) (WorldId, error)
	AddTile(world WorldId, info TileInfo) (TileId, error)
	AddTexture(world WorldId, tile TileId, index int, name string)
	AddModel(world WorldId, tile TileId, kind AssetKind, index int, name string)
	AddPlacement(world WorldId, tile TileId, p Placement)
	AddMcnk(tile TileId, header McnkHeaderFields) (McnkId, error)
	AddHeights(mcnk McnkId, h Heightfield)
	AddNormals(mcnk McnkId, n [145]Normal)
	AddLayer(mcnk McnkId, fields LayerFields) (LayerId, error)
	AddAlphaMap(layer LayerId, m AlphaMap)
	AddShadowMap(mcnk McnkId, m ShadowMap)
	AddVertexColors(mcnk McnkId, c [145]VertexColor)
	AddLiquid(mcnk McnkId, l LiquidFields)
	AddSoundEmitters(mcnk McnkId, emitters []SoundEmitter)
	AddRefs(mcnk McnkId, refs McnkRefs)
	EndWorld(world WorldId, cancelled bool) error
}
