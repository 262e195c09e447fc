package adt

import (
	"encoding/binary"
	"sort"
)

// DecodeTile decodes a standalone retail tile file at path (no enclosing
// WDT), emitting its records to sink under a single-tile world whose
// coordinate is unknown (recorded as (0, 0); callers that know the tile's
// true grid position from its filename should adjust the resulting
// TileInfo/records themselves — the decoder has no access to filenames).
func DecodeTile(path string, opts Options, sink Sink) error {
	src, err := openMapped(path)
	if err != nil {
		return err
	}
	defer src.Close()

	r := newByteReader(src)
	idx, err := scan(r, opts.Logger)
	if err != nil {
		return err
	}
	container, format, err := DetectFormat(idx, r)
	if err != nil {
		return err
	}
	if container != ContainerTile {
		return ErrNotTile
	}
	return decodeStandaloneTileBody(path, r, idx, format, &opts, sink)
}

// decodeStandaloneTileBody runs a standalone tile file through BeginWorld/
// AddTile/decodeTileBody/EndWorld, used by both DecodeTile and DecodeAll's
// per-file dispatch once the container has already been detected.
func decodeStandaloneTileBody(path string, r *byteReader, idx *ChunkIndex, format Format, opts *Options, sink Sink) error {
	version, _ := readMver(idx, r)
	worldID, err := sink.BeginWorld(WorldInfo{Path: path, Format: format, Version: version})
	if err != nil {
		return err
	}

	tileID, err := sink.AddTile(worldID, TileInfo{Coord: TileCoord{X: 0, Y: 0}})
	if err != nil {
		sink.EndWorld(worldID, true)
		return err
	}

	uidTrack := &uidTracker{}
	cancelled := false
	if err := decodeTileBody(worldID, tileID, idx, r, format, 0, opts, uidTrack, nil, sink); err != nil {
		if err == ErrCancelled {
			cancelled = true
		} else {
			sink.EndWorld(worldID, true)
			return err
		}
	}
	if err := sink.EndWorld(worldID, cancelled); err != nil {
		return err
	}
	if !cancelled {
		return uidTrack.WriteUIDIni(uidIniPath(path))
	}
	return nil
}

// decodeTileBody parses one tile's non-terrain chunks and its up-to-256
// MCNK sub-tiles from an already-scanned ChunkIndex, and emits every
// record to sink in the mandated order: asset tables, then placements,
// then MCNKs in row-major order (§4.5's shell plus §4.6's per-MCNK
// sequence, tied together by the §4.4 ordering guarantee).
//
// mphdFlags is the world's MPHD flags, needed to resolve each layer's
// AlphaMapMode; for a standalone retail tile file with no accompanying
// WDT, callers pass 0 (no big-alpha; the fixup is still governed by each
// MCNK's own flags).
//
// worldTables carries the global name/index tables parsed at world level
// (§4.4 phase 3), used as a fallback when the tile itself carries none of
// its own — the case for every alpha embedded tile, whose MDNM/MONM (when
// present at all) live only in the enclosing world file.
func decodeTileBody(worldID WorldId, tileID TileId, idx *ChunkIndex, r *byteReader, format Format, mphdFlags uint32, opts *Options, uidTrack *uidTracker, worldTables *assetTables, sink Sink) error {
	if err := decodeTileTextures(worldID, tileID, idx, r, opts, sink); err != nil {
		return err
	}

	doodadNames, doodadIndex, objectNames, objectIndex, err := decodeTileModelTables(worldID, tileID, idx, r, format, opts, sink)
	if err != nil {
		return err
	}
	if len(doodadIndex) == 0 && len(objectIndex) == 0 && worldTables != nil {
		doodadNames, doodadIndex = worldTables.doodadNames, worldTables.doodadIndex
		objectNames, objectIndex = worldTables.objectNames, worldTables.objectIndex
	}
	resolver := NewAssetResolver(doodadNames, objectNames, doodadIndex, objectIndex)

	if err := decodeTilePlacements(worldID, tileID, idx, r, resolver, uidTrack, sink); err != nil {
		return err
	}

	return decodeTileMcnks(tileID, idx, r, format, mphdFlags, opts, sink)
}

// decodeTileTextures parses MTEX into an ordered texture-name list; order
// is the texture id referenced by MCLY entries (§4.5).
func decodeTileTextures(worldID WorldId, tileID TileId, idx *ChunkIndex, r *byteReader, opts *Options, sink Sink) error {
	loc, ok := idx.First("MTEX")
	if !ok {
		return nil
	}
	payload, err := r.bytes(loc.Offset, loc.Size)
	if err != nil {
		return err
	}
	table, offsets := parseNameTableOrdered(payload)
	for i, off := range offsets {
		name := table[off]
		sink.AddTexture(worldID, tileID, i, name)
		opts.reportMissing(name, "MTEX")
	}
	return nil
}

// decodeTileModelTables parses the doodad and world-object name/index
// tables, in whichever pair of tags the format uses, and registers every
// resolvable name with the sink via AddModel.
func decodeTileModelTables(worldID WorldId, tileID TileId, idx *ChunkIndex, r *byteReader, format Format, opts *Options, sink Sink) (doodadNames NameTable, doodadIndex []uint32, objectNames NameTable, objectIndex []uint32, err error) {
	if format == FormatRetail {
		doodadNames, doodadIndex, err = readIndexedNameTable(idx, r, "MMDX", "MMID")
		if err != nil {
			return
		}
		objectNames, objectIndex, err = readIndexedNameTable(idx, r, "MWMO", "MWID")
		if err != nil {
			return
		}
	} else {
		doodadNames, doodadIndex, err = readOrderedNameTable(idx, r, "MDNM")
		if err != nil {
			return
		}
		objectNames, objectIndex, err = readOrderedNameTable(idx, r, "MONM")
		if err != nil {
			return
		}
	}

	registerModelNames(worldID, tileID, doodadNames, doodadIndex, AssetModelDoodad, opts, sink)
	registerModelNames(worldID, tileID, objectNames, objectIndex, AssetModelObject, opts, sink)
	return
}

func readIndexedNameTable(idx *ChunkIndex, r *byteReader, namesTag, indexTag string) (NameTable, []uint32, error) {
	namesLoc, hasNames := idx.First(namesTag)
	if !hasNames {
		return nil, nil, nil
	}
	namesPayload, err := r.bytes(namesLoc.Offset, namesLoc.Size)
	if err != nil {
		return nil, nil, err
	}
	names := parseNameTable(namesPayload)

	var index []uint32
	if indexLoc, ok := idx.First(indexTag); ok {
		indexPayload, err := r.bytes(indexLoc.Offset, indexLoc.Size)
		if err != nil {
			return nil, nil, err
		}
		index = parseIndexArray(indexPayload)
	}
	return names, index, nil
}

func readOrderedNameTable(idx *ChunkIndex, r *byteReader, namesTag string) (NameTable, []uint32, error) {
	loc, ok := idx.First(namesTag)
	if !ok {
		return nil, nil, nil
	}
	payload, err := r.bytes(loc.Offset, loc.Size)
	if err != nil {
		return nil, nil, err
	}
	names, offsets := parseNameTableOrdered(payload)
	return names, offsets, nil
}

func registerModelNames(worldID WorldId, tileID TileId, names NameTable, index []uint32, kind AssetKind, opts *Options, sink Sink) {
	for i, offset := range index {
		name, ok := names[offset]
		if !ok {
			continue
		}
		sink.AddModel(worldID, tileID, kind, i, name)
		opts.reportMissing(name, namesTagFor(kind))
	}
}

func namesTagFor(kind AssetKind) string {
	if kind == AssetModelObject {
		return "MWMO/MONM"
	}
	return "MMDX/MDNM"
}

// decodeTilePlacements parses MDDF and MODF, resolves each entry's name,
// folds its unique_id into uidTrack, and emits it to the sink.
func decodeTilePlacements(worldID WorldId, tileID TileId, idx *ChunkIndex, r *byteReader, resolver *AssetResolver, uidTrack *uidTracker, sink Sink) error {
	if loc, ok := idx.First("MDDF"); ok {
		payload, err := r.bytes(loc.Offset, loc.Size)
		if err != nil {
			return err
		}
		placements, err := decodeDoodadPlacements(payload)
		if err != nil {
			return err
		}
		emitPlacements(worldID, tileID, placements, resolver, uidTrack, sink)
	}
	if loc, ok := idx.First("MODF"); ok {
		payload, err := r.bytes(loc.Offset, loc.Size)
		if err != nil {
			return err
		}
		placements, err := decodeObjectPlacements(payload)
		if err != nil {
			return err
		}
		emitPlacements(worldID, tileID, placements, resolver, uidTrack, sink)
	}
	return nil
}

func emitPlacements(worldID WorldId, tileID TileId, placements []Placement, resolver *AssetResolver, uidTrack *uidTracker, sink Sink) {
	for _, p := range placements {
		p = resolver.Resolve(p)
		uidTrack.observe(p.UniqueID)
		sink.AddPlacement(worldID, tileID, p)
	}
}

// decodeTileMcnks decodes every MCNK chunk in row-major (j-outer, i-inner)
// order. Retail MCNKs carry their own index_x/index_y in the header, so
// on-disk order is re-sorted to match; alpha MCNKs carry no coordinate
// field and are assumed already row-major on disk (§9 Open Question
// resolution).
func decodeTileMcnks(tileID TileId, idx *ChunkIndex, r *byteReader, format Format, mphdFlags uint32, opts *Options, sink Sink) error {
	locs := idx.Tags("MCNK")
	if len(locs) == 0 {
		return nil
	}

	order := make([]int, len(locs))
	for i := range order {
		order[i] = i
	}
	if format == FormatRetail {
		coords := make([]McnkCoord, len(locs))
		for i, loc := range locs {
			ix, iy, err := peekRetailMcnkCoord(r, loc)
			if err != nil {
				return err
			}
			coords[i] = McnkCoord{I: ix, J: iy}
		}
		sort.Slice(order, func(a, b int) bool {
			ca, cb := coords[order[a]], coords[order[b]]
			if ca.J != cb.J {
				return ca.J < cb.J
			}
			return ca.I < cb.I
		})
	}

	mcnkIDs := make([]McnkId, 0, len(locs))
	for _, i := range order {
		if opts.cancelled() {
			return ErrCancelled
		}
		loc := locs[i]
		payload, err := r.bytes(loc.Offset, loc.Size)
		if err != nil {
			return err
		}
		mcnkID, _, err := decodeMcnk(tileID, payload, format, mphdFlags, opts, sink)
		if err != nil {
			return err
		}
		mcnkIDs = append(mcnkIDs, mcnkID)
	}

	return applyModernLiquid(tileID, idx, r, mcnkIDs, sink)
}

// applyModernLiquid overrides every MCNK's liquid record with the tile's
// MH2O layer set, when the tile carries one: MH2O wins over the legacy
// MCLQ already emitted during decodeMcnk (§4.6 tie-break). The layer
// header block carries no per-coordinate indirection, so the same layer
// set applies uniformly to every MCNK in the tile.
func applyModernLiquid(tileID TileId, idx *ChunkIndex, r *byteReader, mcnkIDs []McnkId, sink Sink) error {
	loc, ok := idx.First("MH2O")
	if !ok {
		return nil
	}
	payload, err := r.bytes(loc.Offset, loc.Size)
	if err != nil {
		return err
	}
	layers, err := decodeModernLiquid(payload)
	if err != nil {
		return err
	}
	if len(layers) == 0 {
		return nil
	}
	for _, mcnkID := range mcnkIDs {
		sink.AddLiquid(mcnkID, LiquidFields{Liquid{Kind: LiquidModern, Modern: layers}})
	}
	return nil
}

// peekRetailMcnkCoord reads index_x/index_y (offsets 4 and 8) from a
// retail MCNK header without parsing the rest, used only to establish
// row-major emission order.
func peekRetailMcnkCoord(r *byteReader, loc ChunkLocator) (ix, iy int, err error) {
	b, err := r.bytes(loc.Offset, 12)
	if err != nil {
		return 0, 0, err
	}
	return int(int32(binary.LittleEndian.Uint32(b[4:8]))), int(int32(binary.LittleEndian.Uint32(b[8:12]))), nil
}
