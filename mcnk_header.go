package adt

// retailMcnkHeaderSize and alphaMcnkHeaderSize are the two on-disk MCNK
// header layouts (§4.6).
const (
	retailMcnkHeaderSize = 128
	alphaMcnkHeaderSize  = 16
)

// mcnkOffsets holds the byte offsets (within the MCNK payload) of each
// sub-chunk, resolved uniformly for both formats so the traversal algorithm
// in mcnk.go never branches on format again after this point.
type mcnkOffsets struct {
	heights, normals, layers, refs, alpha, shadow, vertexColors, liquid, soundEmitters int64
	alphaSize, shadowSize, liquidSize                                                  int64
}

// retailMcnkHeader parses the 128-byte retail MCNK header at the exact
// byte offsets given in spec §4.6.
func retailMcnkHeader(r *byteReader) (McnkHeaderFields, mcnkOffsets, error) {
	var f McnkHeaderFields
	var o mcnkOffsets

	flags, err := r.u32(0)
	if err != nil {
		return f, o, err
	}
	ix, err := r.i32(4)
	if err != nil {
		return f, o, err
	}
	iy, err := r.i32(8)
	if err != nil {
		return f, o, err
	}
	nLayers, err := r.u32(12)
	if err != nil {
		return f, o, err
	}
	nDoodadRefs, err := r.u32(16)
	if err != nil {
		return f, o, err
	}
	offHeights, err := r.u32(20)
	if err != nil {
		return f, o, err
	}
	offNormals, err := r.u32(24)
	if err != nil {
		return f, o, err
	}
	offLayers, err := r.u32(28)
	if err != nil {
		return f, o, err
	}
	offRefs, err := r.u32(32)
	if err != nil {
		return f, o, err
	}
	offAlpha, err := r.u32(36)
	if err != nil {
		return f, o, err
	}
	sizeAlpha, err := r.u32(40)
	if err != nil {
		return f, o, err
	}
	offShadow, err := r.u32(44)
	if err != nil {
		return f, o, err
	}
	sizeShadow, err := r.u32(48)
	if err != nil {
		return f, o, err
	}
	areaID, err := r.u32(52)
	if err != nil {
		return f, o, err
	}
	nMapObjRefs, err := r.u32(56)
	if err != nil {
		return f, o, err
	}
	holes, err := r.u32(60)
	if err != nil {
		return f, o, err
	}
	offSound, err := r.u32(88)
	if err != nil {
		return f, o, err
	}
	offLiquid, err := r.u32(96)
	if err != nil {
		return f, o, err
	}
	sizeLiquid, err := r.u32(100)
	if err != nil {
		return f, o, err
	}
	posX, err := r.f32(104)
	if err != nil {
		return f, o, err
	}
	posY, err := r.f32(108)
	if err != nil {
		return f, o, err
	}
	posZ, err := r.f32(112)
	if err != nil {
		return f, o, err
	}
	offVertexColors, err := r.u32(116)
	if err != nil {
		return f, o, err
	}

	f = McnkHeaderFields{
		Coord:          McnkCoord{I: int(ix), J: int(iy)},
		Flags:          flags,
		AreaID:         areaID,
		AreaIDReliable: true,
		NLayers:        nLayers,
		NDoodadRefs:    nDoodadRefs,
		NMapObjRefs:    nMapObjRefs,
		Holes:          holes,
		WorldPosition:  Vec3{X: posX, Y: posY, Z: posZ},
	}
	o = mcnkOffsets{
		heights:       int64(offHeights),
		normals:       int64(offNormals),
		layers:        int64(offLayers),
		refs:          int64(offRefs),
		alpha:         int64(offAlpha),
		alphaSize:     int64(sizeAlpha),
		shadow:        int64(offShadow),
		shadowSize:    int64(sizeShadow),
		vertexColors:  int64(offVertexColors),
		liquid:        int64(offLiquid),
		liquidSize:    int64(sizeLiquid),
		soundEmitters: int64(offSound),
	}
	return f, o, nil
}

// alphaMcnkHeader parses the 16-byte alpha MCNK header. Sub-chunks follow
// at computable offsets: heights at 16 (580 bytes), normals after heights
// (435 bytes), layers after normals (8 bytes/layer), doodad refs after
// layers (4 bytes each), then optional
// shadow map (64 bytes... historically undersized, padded on read),
// vertex colors (580 bytes), and liquid.
//
// Per the resolved Open Question in §9, alpha exposes only
// {flags, area_id, n_layers, n_doodad_refs}; AreaIDReliable is false since
// the format gives no independent area_id field beyond this possibly
// repurposed word.
func alphaMcnkHeader(r *byteReader) (McnkHeaderFields, mcnkOffsets, error) {
	flags, err := r.u32(0)
	if err != nil {
		return McnkHeaderFields{}, mcnkOffsets{}, err
	}
	areaID, err := r.u32(4)
	if err != nil {
		return McnkHeaderFields{}, mcnkOffsets{}, err
	}
	nLayers, err := r.u32(8)
	if err != nil {
		return McnkHeaderFields{}, mcnkOffsets{}, err
	}
	nDoodadRefs, err := r.u32(12)
	if err != nil {
		return McnkHeaderFields{}, mcnkOffsets{}, err
	}

	const heightsOff = 16
	const heightsSize = 580
	const normalsSize = 435
	normalsOff := int64(heightsOff + heightsSize)
	layersOff := normalsOff + normalsSize
	refsOff := layersOff + int64(nLayers)*8
	afterRefsOff := refsOff + int64(nDoodadRefs)*4

	f := McnkHeaderFields{
		Flags:          flags,
		AreaID:         areaID,
		AreaIDReliable: false,
		NLayers:        nLayers,
		NDoodadRefs:    nDoodadRefs,
	}
	o := mcnkOffsets{
		heights:      heightsOff,
		normals:      normalsOff,
		layers:       layersOff,
		refs:         refsOff,
		shadow:       afterRefsOff,
		shadowSize:   64,
		vertexColors: afterRefsOff + 64,
	}
	o.liquid = o.vertexColors + 580
	o.liquidSize = -1
	return f, o, nil
}
