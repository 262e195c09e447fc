package adt

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Sentinel error kinds. Use errors.Is/errors.As to check; Truncated,
// BadSize, BadEncoding, and CrossRefUnresolved carry structured fields and
// should be recovered with errors.As.
var (
	// ErrUnknownTag is returned when a chunk tag is not in the catalog.
	// Non-fatal: the chunk is skipped and the scan continues.
	ErrUnknownTag = errors.New("adt: unknown chunk tag")
	// ErrAssetMissing indicates a referenced name failed a listfile lookup.
	// Informational only, reported on Options.MissingAssets, never fatal.
	ErrAssetMissing = errors.New("adt: asset missing from listfile")
	// ErrCancelled marks a parse stopped because Options.Cancel was observed
	// set between MCNKs or between embedded tiles. DecodeWorld and DecodeTile
	// do not return it: they report it through EndWorld(cancelled=true) and
	// return nil.
	ErrCancelled = errors.New("adt: parse cancelled")
	// Sentinels for malformed or unrecognized containers.
	ErrNoChunks      = errors.New("adt: no chunks found in file")
	ErrMissingMAIN   = errors.New("adt: world table has no MAIN chunk")
	ErrMissingMVER   = errors.New("adt: file has no MVER chunk")
	ErrNotWorldTable = errors.New("adt: not a world-table file")
	ErrNotTile       = errors.New("adt: not a tile file")
)

// Truncated indicates the scanner or a sub-decoder reached end-of-data
// before reading the requested number of bytes.
type Truncated struct {
	Offset    int64
	Wanted    int64
	Available int64
}

func (e *Truncated) Error() string {
	return fmt.Sprintf("adt: truncated at offset %d: wanted %s, only %s available",
		e.Offset, humanize.Bytes(uint64(e.Wanted)), humanize.Bytes(uint64(e.Available)))
}

// BadSize indicates a fixed-size chunk had the wrong length.
type BadSize struct {
	Tag      string
	Got, Want int
}

func (e *BadSize) Error() string {
	return fmt.Sprintf("adt: %s: bad size: got %d, want %d", e.Tag, e.Got, e.Want)
}

// BadEncoding indicates an alpha-map or shadow-map codec failed, or produced
// fewer than expected output bytes.
type BadEncoding struct {
	Kind   string
	Reason string
}

func (e *BadEncoding) Error() string {
	return fmt.Sprintf("adt: %s: bad encoding: %s", e.Kind, e.Reason)
}

// CrossRefUnresolved indicates a placement or reference cited a name index
// out of range of its index table. Never fatal; the record carrying this
// error is retained with a sentinel name.
type CrossRefUnresolved struct {
	Kind  string
	Index int
}

func (e *CrossRefUnresolved) Error() string {
	return fmt.Sprintf("adt: %s: index %d out of range", e.Kind, e.Index)
}

// UnknownTag is the structured form of ErrUnknownTag, carrying the offending
// tag and file offset.
type UnknownTag struct {
	Tag    string
	Offset int64
}

func (e *UnknownTag) Error() string {
	return fmt.Sprintf("adt: unknown tag %q at offset %d", e.Tag, e.Offset)
}

func (e *UnknownTag) Unwrap() error { return ErrUnknownTag }
