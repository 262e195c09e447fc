package adt

import (
	"path/filepath"
	"sort"
)

const (
	// MphdWMOOnly is MPHD flag bit 0: the map has no terrain, only a
	// placed world object (§4.4).
	MphdWMOOnly = 0x1
	// MphdHasMH2O is the MPHD bit signalling tile-level MH2O presence
	// where the format makes it optional.
	MphdHasMH2O = 0x2
)

// assetTables holds the global name/index tables parsed at world level
// (§4.4 phase 3), used to resolve world-level MODF/MDDF placements and as
// a fallback for alpha embedded tiles that carry no per-tile copy. Retail
// tile files are decoded separately and never see these tables.
type assetTables struct {
	doodadNames NameTable
	doodadIndex []uint32
	objectNames NameTable
	objectIndex []uint32
}

// DecodeWorld decodes a WDT world-table file at path, emitting every
// record to sink. Memory-maps the file for the duration of the call.
func DecodeWorld(path string, opts Options, sink Sink) error {
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
	if container != ContainerWorldTable {
		return ErrNotWorldTable
	}
	return decodeWorldBody(path, r, idx, format, &opts, sink)
}

// decodeWorldBody is exported internally (lowercase) so DecodeAll's
// per-file dispatch can reuse it after detecting the container itself.

func decodeWorldBody(path string, r *byteReader, idx *ChunkIndex, format Format, opts *Options, sink Sink) error {
	version, err := readMver(idx, r)
	if err != nil {
		return err
	}
	mphdFlags, err := readMphdFlags(idx, r, format)
	if err != nil {
		return err
	}

	worldID, err := sink.BeginWorld(WorldInfo{Path: path, Format: format, Version: version, Flags: mphdFlags})
	if err != nil {
		return err
	}

	uidTrack := &uidTracker{}
	cancelled := false
	if err := decodeWorldInner(worldID, r, idx, format, mphdFlags, opts, uidTrack, sink); err != nil {
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

// uidIniPath places uid.ini alongside the decoded file, per §6's auxiliary
// output (no naming or location override is exposed; callers that need a
// different layout post-process the file themselves).
func uidIniPath(path string) string {
	return filepath.Join(filepath.Dir(path), "uid.ini")
}

func decodeWorldInner(worldID WorldId, r *byteReader, idx *ChunkIndex, format Format, mphdFlags uint32, opts *Options, uidTrack *uidTracker, sink Sink) error {
	grid, cells, err := readMain(idx, r, format)
	if err != nil {
		return err
	}

	tables, err := readWorldAssetTables(idx, r, format)
	if err != nil {
		return err
	}

	if format == FormatAlpha {
		if err := decodeEmbeddedTiles(worldID, r, grid, cells, mphdFlags, opts, uidTrack, tables, sink); err != nil {
			return err
		}
	}

	if idx.Has("MODF") || idx.Has("MDDF") {
		if err := decodeWorldLevelPlacements(worldID, idx, r, tables, uidTrack, sink); err != nil {
			return err
		}
	}

	if idx.Has("MCNK") {
		if err := decodeOrphanMcnks(worldID, idx, r, format, mphdFlags, opts, sink); err != nil {
			return err
		}
	}

	return nil
}

func readMver(idx *ChunkIndex, r *byteReader) (uint32, error) {
	loc, ok := idx.First("MVER")
	if !ok {
		return 0, ErrMissingMVER
	}
	return r.u32(loc.Offset)
}

func readMphdFlags(idx *ChunkIndex, r *byteReader, format Format) (uint32, error) {
	loc, ok := idx.First("MPHD")
	if !ok {
		return 0, nil
	}
	if loc.Size < 4 {
		return 0, nil
	}
	return r.u32(loc.Offset)
}

// readMain parses MAIN into a presence grid; for alpha, also returns each
// present cell's embedded-tile offset/size (§4.4 phase 2).
func readMain(idx *ChunkIndex, r *byteReader, format Format) (PresenceGrid, map[TileCoord]ChunkLocator, error) {
	var grid PresenceGrid
	cells := make(map[TileCoord]ChunkLocator)

	loc, ok := idx.First("MAIN")
	if !ok {
		return grid, cells, ErrMissingMAIN
	}

	entrySize := int64(8)
	if format == FormatAlpha {
		entrySize = 16
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			cellOff := loc.Offset + int64(y*64+x)*entrySize
			if format == FormatAlpha {
				offset, err := r.u32(cellOff)
				if err != nil {
					return grid, cells, err
				}
				size, err := r.u32(cellOff + 4)
				if err != nil {
					return grid, cells, err
				}
				if offset > 0 {
					grid[y][x] = true
					cells[TileCoord{X: x, Y: y}] = ChunkLocator{Offset: int64(offset), Size: int64(size)}
				}
			} else {
				flags, err := r.u32(cellOff)
				if err != nil {
					return grid, cells, err
				}
				if flags&0x1 != 0 {
					grid[y][x] = true
				}
			}
		}
	}
	return grid, cells, nil
}

func readWorldAssetTables(idx *ChunkIndex, r *byteReader, format Format) (*assetTables, error) {
	t := &assetTables{}
	var err error
	if format == FormatRetail {
		t.doodadNames, t.doodadIndex, err = readIndexedNameTable(idx, r, "MMDX", "MMID")
		if err != nil {
			return nil, err
		}
		t.objectNames, t.objectIndex, err = readIndexedNameTable(idx, r, "MWMO", "MWID")
		if err != nil {
			return nil, err
		}
	} else {
		t.doodadNames, t.doodadIndex, err = readOrderedNameTable(idx, r, "MDNM")
		if err != nil {
			return nil, err
		}
		t.objectNames, t.objectIndex, err = readOrderedNameTable(idx, r, "MONM")
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// decodeEmbeddedTiles dispatches each present alpha cell's payload view to
// the tile decoder, as if it were a standalone file, per §4.4 phase 4.
func decodeEmbeddedTiles(worldID WorldId, r *byteReader, grid PresenceGrid, cells map[TileCoord]ChunkLocator, mphdFlags uint32, opts *Options, uidTrack *uidTracker, tables *assetTables, sink Sink) error {
	coords := make([]TileCoord, 0, len(cells))
	for c := range cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(a, b int) bool {
		if coords[a].Y != coords[b].Y {
			return coords[a].Y < coords[b].Y
		}
		return coords[a].X < coords[b].X
	})

	for _, coord := range coords {
		if opts.cancelled() {
			return ErrCancelled
		}
		loc := cells[coord]
		tileReader := r.withOrigin(loc.Offset)
		tileView, err := r.bytes(loc.Offset, loc.Size)
		if err != nil {
			return err
		}
		tileIdx, err := scan(newByteReader(byteSlice(tileView)), opts.Logger)
		if err != nil {
			return err
		}

		tileID, err := sink.AddTile(worldID, TileInfo{Coord: coord, Offset: uint32(loc.Offset), Size: uint32(loc.Size)})
		if err != nil {
			return err
		}
		if err := decodeTileBody(worldID, tileID, tileIdx, tileReader, FormatAlpha, mphdFlags, opts, uidTrack, tables, sink); err != nil {
			return err
		}
	}
	return nil
}

// decodeWorldLevelPlacements handles retail world tables that carry MODF
// (and optionally MDDF) directly, for terrain-less "world-model" maps
// (§4.4's closing paragraph). Emitted under a synthetic tile at (-1, -1).
func decodeWorldLevelPlacements(worldID WorldId, idx *ChunkIndex, r *byteReader, tables *assetTables, uidTrack *uidTracker, sink Sink) error {
	tileID, err := sink.AddTile(worldID, TileInfo{Coord: TileCoord{X: -1, Y: -1}})
	if err != nil {
		return err
	}
	resolver := NewAssetResolver(tables.doodadNames, tables.objectNames, tables.doodadIndex, tables.objectIndex)
	return decodeTilePlacements(worldID, tileID, idx, r, resolver, uidTrack, sink)
}

// decodeOrphanMcnks handles world-level MCNK chunks found outside any
// embedded-tile payload view — not part of the normal format, but tolerated
// and emitted under synthetic tile (-1, -1) with a warning (§9 Open
// Question resolution 2).
func decodeOrphanMcnks(worldID WorldId, idx *ChunkIndex, r *byteReader, format Format, mphdFlags uint32, opts *Options, sink Sink) error {
	warn(opts.Logger, "world-level orphan MCNK chunks found outside any tile payload")
	tileID, err := sink.AddTile(worldID, TileInfo{Coord: TileCoord{X: -1, Y: -1}})
	if err != nil {
		return err
	}
	for _, loc := range idx.Tags("MCNK") {
		payload, err := r.bytes(loc.Offset, loc.Size)
		if err != nil {
			return err
		}
		if _, _, err := decodeMcnk(tileID, payload, format, mphdFlags, opts, sink); err != nil {
			return err
		}
	}
	return nil
}
