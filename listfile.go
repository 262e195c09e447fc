package adt

import "strings"

// normalizeAssetName applies the listfile comparison rule from §6:
// lowercase, '\' converted to '/', and a trailing ".mdx" rewritten to
// ".m2". Grounded on WoozyMasta-paa/encode_texconfig.go's filename-hint
// resolution (normalize a path-like string before matching it against a
// table), generalized from texture-hint resolution to listfile membership.
func normalizeAssetName(name string) string {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, `\`, "/")
	if strings.HasSuffix(n, ".mdx") {
		n = strings.TrimSuffix(n, ".mdx") + ".m2"
	}
	return n
}

// NewListfile builds a listfile membership set from a slice of raw names,
// normalizing each with normalizeAssetName so lookups in Options.Listfile
// use the same key space as the names recorded during a parse.
func NewListfile(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[normalizeAssetName(n)] = struct{}{}
	}
	return set
}
