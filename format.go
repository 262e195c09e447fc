package adt

// DetectFormat classifies a scanned file as alpha or retail, and as a
// world-table or tile container, per spec §4.3's decision rules (first
// match wins).
func DetectFormat(idx *ChunkIndex, r *byteReader) (Container, Format, error) {
	format, err := detectEra(idx, r)
	if err != nil {
		return 0, 0, err
	}
	container := detectContainer(idx)
	return container, format, nil
}

func detectEra(idx *ChunkIndex, r *byteReader) (Format, error) {
	// Rule 1: any MVER payload is a u32 version < 18 -> Alpha.
	for _, loc := range idx.Tags("MVER") {
		v, err := r.u32(loc.Offset)
		if err != nil {
			return 0, err
		}
		if v < 18 {
			return FormatAlpha, nil
		}
	}

	// Rule 2: MPHD payload size: 128 -> Alpha, 32 -> Retail.
	if loc, ok := idx.First("MPHD"); ok {
		switch loc.Size {
		case 128:
			return FormatAlpha, nil
		case 32:
			return FormatRetail, nil
		}
	}

	// Rule 3: alpha-only asset tags present -> Alpha.
	for _, tag := range []string{"MDNM", "MONM", "MAOC", "MAOF"} {
		if idx.Has(tag) {
			return FormatAlpha, nil
		}
	}

	// Rule 4: retail-only asset tags present -> Retail.
	for _, tag := range []string{"MMDX", "MMID", "MWMO", "MWID"} {
		if idx.Has(tag) {
			return FormatRetail, nil
		}
	}

	// Rule 5: default Retail.
	return FormatRetail, nil
}

// detectContainer reports whether idx describes a world-table (MAIN present)
// or a tile (MCNK present, no MAIN). A file carrying both is an alpha world
// with embedded tiles, and is treated as a world-table: its embedded tile
// payloads are dispatched separately (§4.4 phase 4).
func detectContainer(idx *ChunkIndex) Container {
	if idx.Has("MAIN") {
		return ContainerWorldTable
	}
	return ContainerTile
}
