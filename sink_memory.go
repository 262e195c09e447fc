package adt

// MemorySink is a reference Sink implementation that builds an in-memory
// tree of every record it receives, for use in tests and small tools that
// want the whole parse result as one value rather than a stream.
type MemorySink struct {
	World *WorldRecord

	tiles  map[TileId]*TileRecord
	mcnks  map[McnkId]*McnkRecord
	layers map[LayerId]*LayerRecord
}

// NewMemorySink returns an empty MemorySink ready for one world's worth of
// decode calls.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		tiles:  make(map[TileId]*TileRecord),
		mcnks:  make(map[McnkId]*McnkRecord),
		layers: make(map[LayerId]*LayerRecord),
	}
}

// WorldRecord is the root of a decoded world.
type WorldRecord struct {
	Info      WorldInfo
	Tiles     []*TileRecord
	Cancelled bool
}

// TileRecord is one decoded tile.
type TileRecord struct {
	Info       TileInfo
	Textures   []string
	Models     []ModelRef
	Placements []Placement
	Mcnks      []*McnkRecord
}

// ModelRef is one resolved AddModel call.
type ModelRef struct {
	Kind  AssetKind
	Index int
	Name  string
}

// McnkRecord is one decoded terrain sub-tile.
type McnkRecord struct {
	Header        McnkHeaderFields
	Heights       *Heightfield
	Normals       *[145]Normal
	Layers        []*LayerRecord
	ShadowMap     *ShadowMap
	VertexColors  *[145]VertexColor
	Liquid        *LiquidFields
	SoundEmitters []SoundEmitter
	Refs          *McnkRefs
}

// LayerRecord is one decoded texture layer, with its alpha map if any.
type LayerRecord struct {
	Fields   LayerFields
	AlphaMap *AlphaMap
}

func (s *MemorySink) BeginWorld(info WorldInfo) (WorldId, error) {
	s.World = &WorldRecord{Info: info}
	return NewWorldId(), nil
}

func (s *MemorySink) AddTile(world WorldId, info TileInfo) (TileId, error) {
	id := NewTileId()
	t := &TileRecord{Info: info}
	s.tiles[id] = t
	s.World.Tiles = append(s.World.Tiles, t)
	return id, nil
}

func (s *MemorySink) AddTexture(world WorldId, tile TileId, index int, name string) {
	s.tiles[tile].Textures = append(s.tiles[tile].Textures, name)
}

func (s *MemorySink) AddModel(world WorldId, tile TileId, kind AssetKind, index int, name string) {
	t := s.tiles[tile]
	t.Models = append(t.Models, ModelRef{Kind: kind, Index: index, Name: name})
}

func (s *MemorySink) AddPlacement(world WorldId, tile TileId, p Placement) {
	t := s.tiles[tile]
	t.Placements = append(t.Placements, p)
}

func (s *MemorySink) AddMcnk(tile TileId, header McnkHeaderFields) (McnkId, error) {
	id := NewMcnkId()
	m := &McnkRecord{Header: header}
	s.mcnks[id] = m
	t := s.tiles[tile]
	t.Mcnks = append(t.Mcnks, m)
	return id, nil
}

func (s *MemorySink) AddHeights(mcnk McnkId, h Heightfield) {
	v := h
	s.mcnks[mcnk].Heights = &v
}

func (s *MemorySink) AddNormals(mcnk McnkId, n [145]Normal) {
	v := n
	s.mcnks[mcnk].Normals = &v
}

func (s *MemorySink) AddLayer(mcnk McnkId, fields LayerFields) (LayerId, error) {
	id := NewLayerId()
	l := &LayerRecord{Fields: fields}
	s.layers[id] = l
	m := s.mcnks[mcnk]
	m.Layers = append(m.Layers, l)
	return id, nil
}

func (s *MemorySink) AddAlphaMap(layer LayerId, m AlphaMap) {
	v := m
	s.layers[layer].AlphaMap = &v
}

func (s *MemorySink) AddShadowMap(mcnk McnkId, m ShadowMap) {
	v := m
	s.mcnks[mcnk].ShadowMap = &v
}

func (s *MemorySink) AddVertexColors(mcnk McnkId, c [145]VertexColor) {
	v := c
	s.mcnks[mcnk].VertexColors = &v
}

func (s *MemorySink) AddLiquid(mcnk McnkId, l LiquidFields) {
	v := l
	s.mcnks[mcnk].Liquid = &v
}

func (s *MemorySink) AddSoundEmitters(mcnk McnkId, emitters []SoundEmitter) {
	s.mcnks[mcnk].SoundEmitters = emitters
}

func (s *MemorySink) AddRefs(mcnk McnkId, refs McnkRefs) {
	v := refs
	s.mcnks[mcnk].Refs = &v
}

func (s *MemorySink) EndWorld(world WorldId, cancelled bool) error {
	s.World.Cancelled = cancelled
	return nil
}
