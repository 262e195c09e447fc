package adt

import "sync/atomic"

// Options configures one parse. All options are passed explicitly; none
// are read from the environment (§6).
type Options struct {
	// Listfile, if non-nil, is checked against every referenced texture and
	// model name; unknown names are appended to MissingAssets. Names are
	// compared lowercased with '\' converted to '/' and a trailing ".mdx"
	// rewritten to ".m2" (see listfile.go).
	Listfile map[string]struct{}

	// MissingAssets receives every AssetMissing report when Listfile is set.
	// Populated during the parse; read after Decode* returns.
	MissingAssets []AssetMissing

	// Strict, if true, fails the enclosing MCNK on any sub-chunk error
	// instead of attaching the error and continuing. Default false.
	Strict bool

	// EmitVertexColors, when false, skips decoding MCCV. Default true.
	EmitVertexColors bool
	// EmitShadowMap, when false, skips decoding MCSH. Default true.
	EmitShadowMap bool
	// EmitAlphaMaps, when false, skips decoding MCAL. Default true.
	EmitAlphaMaps bool

	// Cancel is a cooperative cancellation flag, observed between MCNKs.
	Cancel *atomic.Bool

	// Logger receives structural warnings (ambiguous tag orientation,
	// orphan world-level MCNKs). Sub-chunk failures are not logged; they
	// are recorded on the MCNK header's SubErrors. A nil Logger disables
	// logging.
	Logger Logger
}

// DefaultOptions returns the zero-value-equivalent defaults named in §6:
// emit_vertex_colors/emit_shadow_map/emit_alpha_maps default to true.
func DefaultOptions() Options {
	return Options{
		EmitVertexColors: true,
		EmitShadowMap:    true,
		EmitAlphaMaps:    true,
	}
}

// AssetMissing records one listfile lookup failure (informational, never
// fatal).
type AssetMissing struct {
	Name         string
	ReferencedBy string
}

// cancelled reports whether Options.Cancel is set, treating a nil flag as
// never cancelled.
func (o *Options) cancelled() bool {
	return o.Cancel != nil && o.Cancel.Load()
}

// reportMissing appends a missing-asset record if name fails the listfile
// check; a no-op when Listfile is nil.
func (o *Options) reportMissing(name, referencedBy string) {
	if o.Listfile == nil {
		return
	}
	if _, ok := o.Listfile[normalizeAssetName(name)]; ok {
		return
	}
	o.MissingAssets = append(o.MissingAssets, AssetMissing{Name: name, ReferencedBy: referencedBy})
}
