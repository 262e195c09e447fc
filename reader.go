package adt

import (
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
)

// ByteSource is a read-only, random-access byte store. It is satisfied by a
// plain []byte (used for embedded alpha tile views and in tests) and by
// mappedSource, which backs an on-disk file with a memory map.
type ByteSource interface {
	// Len returns the total number of bytes available.
	Len() int64
	// Slice returns a borrowed view [off, off+n). The returned slice must
	// not be retained past the source's lifetime.
	Slice(off, n int64) ([]byte, error)
}

// byteSlice adapts a plain []byte to ByteSource.
type byteSlice []byte

func (b byteSlice) Len() int64 { return int64(len(b)) }

func (b byteSlice) Slice(off, n int64) ([]byte, error) {
	if off < 0 || n < 0 || off+n > int64(len(b)) {
		return nil, &Truncated{Offset: off, Wanted: n, Available: int64(len(b)) - off}
	}
	return b[off : off+n], nil
}

// mappedSource backs a ByteSource with a read-only memory map, per spec
// §3/§5 ("Input bytes are read-only and may be memory-mapped"; "the memory
// map is owned by the decoder and released when the world finishes").
type mappedSource struct {
	f *os.File
	m mmap.MMap
}

// openMapped memory-maps path for read-only random access.
func openMapped(path string) (*mappedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &mappedSource{f: f, m: m}, nil
}

func (s *mappedSource) Len() int64 { return int64(len(s.m)) }

func (s *mappedSource) Slice(off, n int64) ([]byte, error) {
	if off < 0 || n < 0 || off+n > int64(len(s.m)) {
		return nil, &Truncated{Offset: off, Wanted: n, Available: int64(len(s.m)) - off}
	}
	return s.m[off : off+n], nil
}

// Close unmaps the file and releases the underlying descriptor.
func (s *mappedSource) Close() error {
	uerr := s.m.Unmap()
	ferr := s.f.Close()
	if uerr != nil {
		return uerr
	}
	return ferr
}

// byteReader provides bounds-checked little-endian primitive reads over a
// ByteSource, with an optional origin offset so that embedded-tile views
// (alpha worlds) can read using offsets relative to their own start while
// the underlying source is the whole world file.
type byteReader struct {
	src    ByteSource
	origin int64
}

func newByteReader(src ByteSource) *byteReader {
	return &byteReader{src: src}
}

// withOrigin returns a reader over the same source whose offset 0 is
// origin bytes into src; used for alpha embedded-tile payload views.
func (r *byteReader) withOrigin(origin int64) *byteReader {
	return &byteReader{src: r.src, origin: r.origin + origin}
}

// len returns the number of bytes visible from this reader's origin.
func (r *byteReader) len() int64 {
	return r.src.Len() - r.origin
}

func (r *byteReader) bytes(off, n int64) ([]byte, error) {
	return r.src.Slice(r.origin+off, n)
}

func (r *byteReader) u8(off int64) (uint8, error) {
	b, err := r.bytes(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) i8(off int64) (int8, error) {
	v, err := r.u8(off)
	return int8(v), err
}

func (r *byteReader) u16(off int64) (uint16, error) {
	b, err := r.bytes(off, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (r *byteReader) u32(off int64) (uint32, error) {
	b, err := r.bytes(off, 4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (r *byteReader) i32(off int64) (int32, error) {
	v, err := r.u32(off)
	return int32(v), err
}

func (r *byteReader) f32(off int64) (float32, error) {
	v, err := r.u32(off)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// tag reads a 4-byte chunk tag verbatim (no byte-order transform; scanner
// applies orientation separately).
func (r *byteReader) tag(off int64) (string, error) {
	b, err := r.bytes(off, 4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// cstring reads a null-terminated string starting at off, within the first
// limit bytes, decoding as UTF-8 with replacement for invalid sequences.
func (r *byteReader) cstring(off, limit int64) (string, int64, error) {
	b, err := r.bytes(off, limit)
	if err != nil {
		return "", 0, err
	}
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return toValidUTF8(b[:n]), int64(n) + 1, nil
}

// fixedString reads a fixed-width string, trimming at the first null byte.
func (r *byteReader) fixedString(off, width int64) (string, error) {
	b, err := r.bytes(off, width)
	if err != nil {
		return "", err
	}
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return toValidUTF8(b[:n]), nil
}

// toValidUTF8 decodes b as UTF-8, substituting the replacement character
// for invalid sequences, matching §4.1's "decodes as UTF-8 with replacement
// for invalid sequences."
func toValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
