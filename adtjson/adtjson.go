/*
Package adtjson implements the reference JSON encoding of a decoded world
(spec §6): one record per line, keys matching field names, tuple
coordinates rendered as {x,y,z}, grids as flat row-major arrays, and
alpha/shadow maps as length-4096 arrays.

Grounded on WoozyMasta-paa/img/img.go, a thin adapter package that
implements a stdlib-facing interface (image.Decoder) by delegating to the
core codec package; adtjson plays the same role relative to adt.Sink.
*/
package adtjson

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/parp-tools/adt"
)

// Recorder is an adt.Sink that writes one newline-delimited JSON object per
// record to w, in the order the decoder emits them.
type Recorder struct {
	w   *bufio.Writer
	err error
}

// NewRecorder returns a Recorder writing to w. Callers must call Flush
// after the decode call returns.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: bufio.NewWriter(w)}
}

// Flush flushes any buffered output and returns the first write error
// encountered, if any.
func (r *Recorder) Flush() error {
	if ferr := r.w.Flush(); ferr != nil && r.err == nil {
		r.err = ferr
	}
	return r.err
}

func (r *Recorder) emit(kind string, fields map[string]any) {
	if r.err != nil {
		return
	}
	fields["kind"] = kind
	b, err := json.Marshal(fields)
	if err != nil {
		r.err = err
		return
	}
	if _, err := r.w.Write(b); err != nil {
		r.err = err
		return
	}
	if err := r.w.WriteByte('\n'); err != nil {
		r.err = err
	}
}

func vec3(v adt.Vec3) map[string]any {
	return map[string]any{"x": v.X, "y": v.Y, "z": v.Z}
}

func (r *Recorder) BeginWorld(info adt.WorldInfo) (adt.WorldId, error) {
	id := adt.NewWorldId()
	r.emit("world", map[string]any{
		"id": uuid.UUID(id).String(), "path": info.Path,
		"format": info.Format.String(), "version": info.Version, "flags": info.Flags,
	})
	return id, r.err
}

func (r *Recorder) AddTile(world adt.WorldId, info adt.TileInfo) (adt.TileId, error) {
	id := adt.NewTileId()
	r.emit("tile", map[string]any{
		"id": uuid.UUID(id).String(), "world": uuid.UUID(world).String(),
		"x": info.Coord.X, "y": info.Coord.Y,
		"offset": info.Offset, "size": info.Size, "flags": info.Flags,
	})
	return id, r.err
}

func (r *Recorder) AddTexture(world adt.WorldId, tile adt.TileId, index int, name string) {
	r.emit("texture", map[string]any{
		"tile": uuid.UUID(tile).String(), "index": index, "name": name,
	})
}

func (r *Recorder) AddModel(world adt.WorldId, tile adt.TileId, kind adt.AssetKind, index int, name string) {
	r.emit("model", map[string]any{
		"tile": uuid.UUID(tile).String(), "kind": assetKindString(kind), "index": index, "name": name,
	})
}

func assetKindString(k adt.AssetKind) string {
	switch k {
	case adt.AssetModelDoodad:
		return "doodad"
	case adt.AssetModelObject:
		return "object"
	default:
		return "texture"
	}
}

func (r *Recorder) AddPlacement(world adt.WorldId, tile adt.TileId, p adt.Placement) {
	fields := map[string]any{
		"tile": uuid.UUID(tile).String(), "kind": placementKindString(p.Kind),
		"name": p.Name, "name_resolved": p.NameResolved, "name_id": p.NameID,
		"unique_id": p.UniqueID, "pos": vec3(p.Position), "rot": vec3(p.Rotation),
		"scale": p.Scale, "flags": p.Flags,
	}
	if p.HasBounds {
		fields["bounds_min"] = vec3(p.BoundsMin)
		fields["bounds_max"] = vec3(p.BoundsMax)
		fields["doodad_set"] = p.DoodadSet
		fields["name_set"] = p.NameSet
	}
	r.emit("placement", fields)
}

func placementKindString(k adt.PlacementKind) string {
	if k == adt.PlacementObject {
		return "object"
	}
	return "doodad"
}

func (r *Recorder) AddMcnk(tile adt.TileId, header adt.McnkHeaderFields) (adt.McnkId, error) {
	id := adt.NewMcnkId()
	r.emit("mcnk", map[string]any{
		"id": uuid.UUID(id).String(), "tile": uuid.UUID(tile).String(),
		"i": header.Coord.I, "j": header.Coord.J, "flags": header.Flags,
		"area_id": header.AreaID, "area_id_reliable": header.AreaIDReliable,
		"n_layers": header.NLayers, "holes": header.Holes,
		"position": vec3(header.WorldPosition),
		"partially_decoded": header.PartiallyDecoded,
	})
	return id, r.err
}

func (r *Recorder) AddHeights(mcnk adt.McnkId, h adt.Heightfield) {
	r.emit("heights", map[string]any{"mcnk": uuid.UUID(mcnk).String(), "values": h[:]})
}

func (r *Recorder) AddNormals(mcnk adt.McnkId, n [145]adt.Normal) {
	out := make([]map[string]any, len(n))
	for i, v := range n {
		out[i] = vec3(adt.Vec3{X: v.X, Y: v.Y, Z: v.Z})
	}
	r.emit("normals", map[string]any{"mcnk": uuid.UUID(mcnk).String(), "values": out})
}

func (r *Recorder) AddLayer(mcnk adt.McnkId, fields adt.LayerFields) (adt.LayerId, error) {
	id := adt.NewLayerId()
	r.emit("layer", map[string]any{
		"id": uuid.UUID(id).String(), "mcnk": uuid.UUID(mcnk).String(),
		"texture_index": fields.TextureIndex, "flags": fields.Flags,
		"effect_id": fields.EffectID, "alpha_map_offset": fields.AlphaMapOffset,
	})
	return id, r.err
}

func (r *Recorder) AddAlphaMap(layer adt.LayerId, m adt.AlphaMap) {
	values := make([]int, len(m))
	for i, v := range m {
		values[i] = int(v)
	}
	r.emit("alpha_map", map[string]any{"layer": uuid.UUID(layer).String(), "values": values})
}

func (r *Recorder) AddShadowMap(mcnk adt.McnkId, m adt.ShadowMap) {
	bits := make([]int, 4096)
	for i := range bits {
		if m.Bit(i%64, i/64) {
			bits[i] = 1
		}
	}
	r.emit("shadow_map", map[string]any{"mcnk": uuid.UUID(mcnk).String(), "values": bits})
}

func (r *Recorder) AddVertexColors(mcnk adt.McnkId, c [145]adt.VertexColor) {
	out := make([]map[string]any, len(c))
	for i, v := range c {
		out[i] = map[string]any{"r": v.R, "g": v.G, "b": v.B, "a": v.A}
	}
	r.emit("vertex_colors", map[string]any{"mcnk": uuid.UUID(mcnk).String(), "values": out})
}

func (r *Recorder) AddLiquid(mcnk adt.McnkId, l adt.LiquidFields) {
	fields := map[string]any{"mcnk": uuid.UUID(mcnk).String()}
	switch l.Kind {
	case adt.LiquidLegacy:
		fields["kind"] = "legacy"
		if l.Legacy != nil {
			fields["flags"] = l.Legacy.Flags
			fields["heights"] = l.Legacy.Heights
		}
	case adt.LiquidModern:
		fields["kind"] = "modern"
		layers := make([]map[string]any, len(l.Modern))
		for i, ml := range l.Modern {
			layers[i] = map[string]any{
				"height_level": ml.HeightLevel, "width": ml.Width, "height": ml.Height,
				"fishable": ml.Fishable, "causes_fatigue": ml.CausesFatigue,
			}
		}
		fields["layers"] = layers
	default:
		fields["kind"] = "none"
	}
	r.emit("liquid", fields)
}

func (r *Recorder) AddSoundEmitters(mcnk adt.McnkId, emitters []adt.SoundEmitter) {
	out := make([]map[string]any, len(emitters))
	for i, e := range emitters {
		out[i] = map[string]any{
			"sound_id": e.SoundID, "sound_type": e.SoundType, "pos": vec3(e.Position),
			"min_distance": e.MinDistance, "max_distance": e.MaxDistance,
		}
	}
	r.emit("sound_emitters", map[string]any{"mcnk": uuid.UUID(mcnk).String(), "values": out})
}

func (r *Recorder) AddRefs(mcnk adt.McnkId, refs adt.McnkRefs) {
	r.emit("refs", map[string]any{
		"mcnk": uuid.UUID(mcnk).String(), "doodad_refs": refs.DoodadRefs, "object_refs": refs.ObjectRefs,
	})
}

func (r *Recorder) EndWorld(world adt.WorldId, cancelled bool) error {
	r.emit("end_world", map[string]any{"world": uuid.UUID(world).String(), "cancelled": cancelled})
	return r.err
}
