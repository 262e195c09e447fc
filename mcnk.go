package adt

import "encoding/binary"

// decodeMcnk parses one MCNK chunk payload (the bytes following the MCNK
// tag+size, in whichever orientation the scanner already normalized) and
// emits its records to sink, in the mandated order: header, heights,
// normals, layers (each with its alpha map), shadow, vertex colors, liquid,
// then the supplemented sound-emitter and reference records (§4.6's
// ordering guarantee plus the §4.6 additions drawn from the reference
// implementation).
//
// opts.EmitVertexColors/EmitShadowMap/EmitAlphaMaps gate the corresponding
// sub-chunk decode and sink calls (§6's Configuration table); when false,
// that sub-chunk is skipped entirely rather than decoded and discarded.
//
// A failure decoding any one sub-chunk is recorded on the returned header's
// SubErrors and does not abort the MCNK (§4.6/§7's failure model), unless
// opts.Strict is set, in which case any sub-chunk error fails the whole
// MCNK: decodeMcnk still finishes the traversal (so SubErrors/PartiallyDecoded
// reflect everything found), but returns the first recorded error instead of
// nil.
func decodeMcnk(tile TileId, payload []byte, format Format, mphdFlags uint32, opts *Options, sink Sink) (McnkId, McnkHeaderFields, error) {
	r := newByteReader(byteSlice(payload))

	var (
		header McnkHeaderFields
		off    mcnkOffsets
		err    error
	)
	if format == FormatRetail {
		header, off, err = retailMcnkHeader(r)
	} else {
		header, off, err = alphaMcnkHeader(r)
	}
	if err != nil {
		return McnkId{}, header, err
	}

	mcnkID, err := sink.AddMcnk(tile, header)
	if err != nil {
		return mcnkID, header, err
	}

	if b, serr := resolveSubchunk(payload, format, off.heights, mcvtSize, "MCVT"); serr == nil && b != nil {
		if h, derr := decodeHeights(b); derr != nil {
			header.SubErrors = append(header.SubErrors, derr)
		} else {
			sink.AddHeights(mcnkID, h)
			header.HasHeights = true
		}
	} else if serr != nil {
		header.SubErrors = append(header.SubErrors, serr)
	}

	normalsWant := int64(mcnrRetailSize)
	if format == FormatAlpha {
		normalsWant = mcnrCoreSize
	}
	if b, serr := resolveSubchunk(payload, format, off.normals, normalsWant, "MCNR"); serr == nil && b != nil {
		if n, derr := decodeNormals(b); derr != nil {
			header.SubErrors = append(header.SubErrors, derr)
		} else {
			sink.AddNormals(mcnkID, n)
			header.HasNormals = true
		}
	} else if serr != nil {
		header.SubErrors = append(header.SubErrors, serr)
	}

	if b, serr := resolveSubchunk(payload, format, off.layers, int64(header.NLayers)*layerEntrySize(format), "MCLY"); serr == nil && b != nil {
		layers, derr := decodeLayers(b, int(header.NLayers), format)
		if derr != nil {
			header.SubErrors = append(header.SubErrors, derr)
		} else {
			decodeMcnkLayers(mcnkID, layers, payload, format, mphdFlags, header.Flags, off, opts, sink, &header)
		}
	} else if serr != nil {
		header.SubErrors = append(header.SubErrors, serr)
	}

	if opts.EmitShadowMap {
		if b, serr := resolveSubchunk(payload, format, off.shadow, off.shadowSize, "MCSH"); serr == nil && b != nil {
			doNotFix := header.Flags&McnkDoNotFixAlphaMap != 0
			shadow, complete := decodeShadowMap(b, doNotFix)
			sink.AddShadowMap(mcnkID, shadow)
			header.HasShadowMap = true
			if !complete {
				header.PartiallyDecoded = true
			}
		} else if serr != nil {
			header.SubErrors = append(header.SubErrors, serr)
		}
	}

	if opts.EmitVertexColors {
		if b, serr := resolveSubchunk(payload, format, off.vertexColors, mccvSize, "MCCV"); serr == nil && b != nil {
			if c, derr := decodeVertexColors(b); derr != nil {
				header.SubErrors = append(header.SubErrors, derr)
			} else {
				sink.AddVertexColors(mcnkID, c)
				header.HasVertexColors = true
			}
		} else if serr != nil {
			header.SubErrors = append(header.SubErrors, serr)
		}
	}

	decodeMcnkLiquid(mcnkID, payload, format, off, sink, &header)

	if b, serr := resolveSubchunk(payload, format, off.soundEmitters, -1, "MCSE"); serr == nil && b != nil {
		if emitters, derr := decodeSoundEmitters(b); derr != nil {
			header.SubErrors = append(header.SubErrors, derr)
		} else if len(emitters) > 0 {
			sink.AddSoundEmitters(mcnkID, emitters)
		}
	} else if serr != nil {
		header.SubErrors = append(header.SubErrors, serr)
	}

	refsWant := int64(header.NDoodadRefs+header.NMapObjRefs) * 4
	if b, serr := resolveSubchunk(payload, format, off.refs, refsWant, "MCRF"); serr == nil && b != nil {
		if refs, derr := decodeMcnkRefs(b, int(header.NDoodadRefs), int(header.NMapObjRefs)); derr != nil {
			header.SubErrors = append(header.SubErrors, derr)
		} else {
			sink.AddRefs(mcnkID, refs)
		}
	} else if serr != nil {
		header.SubErrors = append(header.SubErrors, serr)
	}

	if len(header.SubErrors) > 0 {
		header.PartiallyDecoded = true
	}
	if opts.Strict && len(header.SubErrors) > 0 {
		return mcnkID, header, header.SubErrors[0]
	}
	return mcnkID, header, nil
}

// decodeMcnkLayers resolves and decodes each layer's MCAL alpha map, when
// opts.EmitAlphaMaps is set. The first layer never carries one; layer i
// (i>0) has a map only when its flags say so (§4.6). Retail locates the
// shared MCAL chunk once (its nested tag+size header is read a single
// time) and then slices each layer's map at that layer's own
// AlphaMapOffset within it. The alpha MCNK header supplies no MCAL offset
// (off.alpha stays 0), so no alpha maps are decoded for alpha-format
// MCNKs; their layers are still emitted.
func decodeMcnkLayers(mcnkID McnkId, layers []TextureLayer, payload []byte, format Format, mphdFlags, mcnkFlags uint32, off mcnkOffsets, opts *Options, sink Sink, header *McnkHeaderFields) {
	var mcalPayload []byte
	if opts.EmitAlphaMaps && off.alpha > 0 {
		b, serr := resolveSubchunk(payload, format, off.alpha, off.alphaSize, "MCAL")
		if serr != nil {
			header.SubErrors = append(header.SubErrors, serr)
		} else {
			mcalPayload = b
		}
	}

	for i, l := range layers {
		fields := LayerFields{TextureIndex: l.TextureIndex, Flags: l.Flags, EffectID: l.EffectID, AlphaMapOffset: l.AlphaMapOffset}
		layerID, err := sink.AddLayer(mcnkID, fields)
		if err != nil {
			header.SubErrors = append(header.SubErrors, err)
			continue
		}
		if i == 0 || !l.HasAlphaMap() || !opts.EmitAlphaMaps || mcalPayload == nil {
			continue
		}

		var b []byte
		if format == FormatRetail {
			start := int64(l.AlphaMapOffset)
			if start < 0 || start >= int64(len(mcalPayload)) {
				header.SubErrors = append(header.SubErrors, &Truncated{Offset: start, Wanted: 0, Available: int64(len(mcalPayload)) - start})
				continue
			}
			b = mcalPayload[start:]
		} else {
			b = mcalPayload
		}

		mode := newAlphaMapMode(l.Flags, mphdFlags, mcnkFlags)
		am, derr := decodeAlphaMap(b, mode)
		if derr != nil {
			header.SubErrors = append(header.SubErrors, derr)
			header.PartiallyDecoded = true
		}
		sink.AddAlphaMap(layerID, am)
	}
}

// decodeMcnkLiquid decodes this MCNK's legacy MCLQ liquid chunk, if any.
// An empty liquid region is treated as no liquid. A tile-level MH2O layer
// set is not handled here: tile.go's applyModernLiquid emits it afterwards,
// overriding this record (§4.6's tie-break).
func decodeMcnkLiquid(mcnkID McnkId, payload []byte, format Format, off mcnkOffsets, sink Sink, header *McnkHeaderFields) {
	b, serr := resolveSubchunk(payload, format, off.liquid, off.liquidSize, "MCLQ")
	if serr != nil {
		header.SubErrors = append(header.SubErrors, serr)
		return
	}
	if len(b) == 0 {
		return
	}
	legacy, derr := decodeLegacyLiquid(b)
	if derr != nil {
		header.SubErrors = append(header.SubErrors, derr)
		return
	}
	sink.AddLiquid(mcnkID, LiquidFields{Liquid{Kind: LiquidLegacy, Legacy: legacy}})
	header.HasLiquid = true
}

// layerEntrySize returns the on-disk MCLY entry size for format.
func layerEntrySize(format Format) int64 {
	if format == FormatRetail {
		return retailLayerSize
	}
	return alphaLayerSize
}

// resolveSubchunk locates one sub-chunk's payload within an MCNK body.
// Retail sub-chunks are addressed indirectly: the header offset points to
// a nested tag+size header (8 bytes) followed by the payload; alpha
// sub-chunks are addressed directly, with no nested tag, at a fixed
// computed offset and a size fixed by kind (§4.6). wantSize is the known
// payload size when fixed by kind; pass -1 when the size is read from the
// nested header (retail) or is otherwise variable.
//
// offset == 0 means "not present" for both formats: heights/normals always
// exist in practice, but an all-zero offset in a truncated or hand-built
// file is treated as absent rather than panicking.
func resolveSubchunk(mcnkPayload []byte, format Format, offset, wantSize int64, tag string) ([]byte, error) {
	if offset <= 0 {
		return nil, nil
	}
	if format == FormatAlpha {
		if wantSize < 0 {
			if offset > int64(len(mcnkPayload)) {
				return nil, &Truncated{Offset: offset, Wanted: 0, Available: int64(len(mcnkPayload)) - offset}
			}
			return mcnkPayload[offset:], nil
		}
		end := offset + wantSize
		if end > int64(len(mcnkPayload)) {
			return nil, &Truncated{Offset: offset, Wanted: wantSize, Available: int64(len(mcnkPayload)) - offset}
		}
		return mcnkPayload[offset:end], nil
	}
	return readNestedSubchunk(mcnkPayload, offset, wantSize, tag)
}

// readNestedSubchunk reads the 8-byte {tag, size} header at offset within
// a retail MCNK body and returns the payload that follows, clamped to
// wantSize when the main header also recorded an explicit size (MCAL,
// MCSH) as a cross-check, and to the available bytes otherwise.
func readNestedSubchunk(mcnkPayload []byte, offset, wantSize int64, tag string) ([]byte, error) {
	if offset+8 > int64(len(mcnkPayload)) {
		return nil, &Truncated{Offset: offset, Wanted: 8, Available: int64(len(mcnkPayload)) - offset}
	}
	size := int64(binary.LittleEndian.Uint32(mcnkPayload[offset+4 : offset+8]))
	start := offset + 8
	end := start + size
	if wantSize >= 0 && size != wantSize {
		if wantSize < size {
			end = start + wantSize
		}
	}
	if end > int64(len(mcnkPayload)) {
		end = int64(len(mcnkPayload))
	}
	if start > end {
		return nil, &Truncated{Offset: offset, Wanted: 8, Available: int64(len(mcnkPayload)) - offset}
	}
	return mcnkPayload[start:end], nil
}
