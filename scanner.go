package adt


// ChunkLocator records where one chunk's payload lives relative to a
// byteReader's origin.
type ChunkLocator struct {
	Offset int64 // payload start, i.e. 8 bytes past the tag+size header
	Size   int64
}

// ChunkIndex is the scanner's output: every chunk found, indexed by its
// (orientation-corrected) forward tag.
type ChunkIndex struct {
	byTag       map[string][]ChunkLocator
	Orientation Orientation
}

// Tags returns all chunk locators for tag, in file order, or nil if absent.
func (c *ChunkIndex) Tags(tag string) []ChunkLocator {
	return c.byTag[tag]
}

// First returns the first chunk locator for tag, and whether it was found.
func (c *ChunkIndex) First(tag string) (ChunkLocator, bool) {
	locs := c.byTag[tag]
	if len(locs) == 0 {
		return ChunkLocator{}, false
	}
	return locs[0], true
}

// Has reports whether any chunk with tag was found.
func (c *ChunkIndex) Has(tag string) bool {
	return len(c.byTag[tag]) > 0
}

// orientationProbe is the set of tags used to auto-detect byte orientation
// (spec §4.2).
var orientationProbe = map[string]bool{
	"MVER": true, "MPHD": true, "MAIN": true,
}

func reverseTag(tag string) string {
	b := []byte(tag)
	return string([]byte{b[3], b[2], b[1], b[0]})
}

// scan walks r from offset 0 to end-of-data as a stream of
// {tag[4], size:u32, payload} records, auto-detecting tag orientation from
// the first 3 chunks against {MVER, MPHD, MAIN} (forward or reversed).
// A size that would push past the end of r terminates the scan with
// *Truncated. If no known tag appears in the first 3 chunks, orientation
// defaults to forward and a warning is logged.
func scan(r *byteReader, log Logger) (*ChunkIndex, error) {
	type rawEntry struct {
		tag string
		loc ChunkLocator
	}

	var entries []rawEntry
	var off int64

	for off < r.len() {
		rawTag, err := r.tag(off)
		if err != nil {
			return nil, err
		}
		size, err := r.u32(off + 4)
		if err != nil {
			return nil, err
		}

		payloadOff := off + 8
		payloadSize := int64(size)
		if payloadOff+payloadSize > r.len() {
			return nil, &Truncated{Offset: payloadOff, Wanted: payloadSize, Available: r.len() - payloadOff}
		}

		entries = append(entries, rawEntry{tag: rawTag, loc: ChunkLocator{Offset: payloadOff, Size: payloadSize}})
		off = payloadOff + payloadSize
	}

	if len(entries) == 0 {
		return nil, ErrNoChunks
	}

	// Determine orientation from the first 3 chunks against the probe set.
	orientation := OrientationForward
	orientationKnown := false
	for i := 0; i < len(entries) && i < 3; i++ {
		if orientationProbe[entries[i].tag] {
			orientation = OrientationForward
			orientationKnown = true
			break
		}
		if orientationProbe[reverseTag(entries[i].tag)] {
			orientation = OrientationReversed
			orientationKnown = true
			break
		}
	}
	if !orientationKnown {
		warn(log, "tag orientation ambiguous in first 3 chunks, defaulting to forward")
	}

	idx := &ChunkIndex{byTag: make(map[string][]ChunkLocator, 32), Orientation: orientation}
	for _, e := range entries {
		fwdTag := e.tag
		if orientation == OrientationReversed {
			fwdTag = reverseTag(e.tag)
		}
		idx.byTag[fwdTag] = append(idx.byTag[fwdTag], e.loc)
	}

	return idx, nil
}
