/*
Package config loads adt.Options from a TOML file for command-line tooling,
so operators can check listfile paths and decode flags into a repo rather
than wiring flags by hand for every invocation.

Swapped from the teacher's custom TexConvert.cfg lexer (texconfig) to a
straight TOML decode: spec.md's options are already a flat key/value set,
unlike TexConvert.cfg's nested, inheriting hint classes.
*/
package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/parp-tools/adt"
)

// File is the on-disk shape of a decode config. Fields map directly onto
// adt.Options; ToOptions resolves ListfilePath into an in-memory set.
type File struct {
	// ListfilePath, if set, is read as one asset name per line (blank lines
	// and lines starting with '#' are skipped); ToOptions normalizes the
	// names when it builds the listfile set.
	ListfilePath string `toml:"listfile_path"`

	// Strict mirrors adt.Options.Strict.
	Strict bool `toml:"strict"`

	// EmitVertexColors mirrors adt.Options.EmitVertexColors. Left nil when
	// absent from the file; ToOptions then keeps the default of true.
	EmitVertexColors *bool `toml:"emit_vertex_colors"`
	// EmitShadowMap mirrors adt.Options.EmitShadowMap.
	EmitShadowMap *bool `toml:"emit_shadow_map"`
	// EmitAlphaMaps mirrors adt.Options.EmitAlphaMaps.
	EmitAlphaMaps *bool `toml:"emit_alpha_maps"`
}

// Load reads and decodes a TOML config file at path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListfileNames reads f.ListfilePath, one name per line, trimmed of
// surrounding whitespace but otherwise as written, or returns nil if
// ListfilePath is empty.
func (f *File) ListfileNames() ([]string, error) {
	if f.ListfilePath == "" {
		return nil, nil
	}
	fh, err := os.Open(f.ListfilePath)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var names []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// boolOr returns *p when p is non-nil, otherwise def.
func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// EmitVertexColorsOr returns the configured value, or def when unset.
func (f *File) EmitVertexColorsOr(def bool) bool { return boolOr(f.EmitVertexColors, def) }

// EmitShadowMapOr returns the configured value, or def when unset.
func (f *File) EmitShadowMapOr(def bool) bool { return boolOr(f.EmitShadowMap, def) }

// EmitAlphaMapsOr returns the configured value, or def when unset.
func (f *File) EmitAlphaMapsOr(def bool) bool { return boolOr(f.EmitAlphaMaps, def) }

// ToOptions builds an adt.Options from f, layered over adt.DefaultOptions.
func (f *File) ToOptions() (adt.Options, error) {
	opts := adt.DefaultOptions()
	opts.Strict = f.Strict
	opts.EmitVertexColors = f.EmitVertexColorsOr(opts.EmitVertexColors)
	opts.EmitShadowMap = f.EmitShadowMapOr(opts.EmitShadowMap)
	opts.EmitAlphaMaps = f.EmitAlphaMapsOr(opts.EmitAlphaMaps)
	opts.Logger = adt.NewDefaultLogger()

	names, err := f.ListfileNames()
	if err != nil {
		return opts, err
	}
	if names != nil {
		opts.Listfile = adt.NewListfile(names)
	}
	return opts, nil
}
