package adt

import (
	"strings"
	"testing"
)

func TestParseNameTable(t *testing.T) {
	payload := []byte("foo\x00bar\x00")
	table := parseNameTable(payload)
	if table[0] != "foo" || table[4] != "bar" {
		t.Fatalf("table = %+v", table)
	}
}

func TestParseNameTableOrderedSyntheticIndex(t *testing.T) {
	payload := []byte("alpha\x00beta\x00gamma\x00")
	table, offsets := parseNameTableOrdered(payload)
	if len(offsets) != 3 {
		t.Fatalf("len(offsets) = %d, want 3", len(offsets))
	}
	if table[offsets[0]] != "alpha" || table[offsets[1]] != "beta" || table[offsets[2]] != "gamma" {
		t.Fatalf("offsets don't resolve to names in list order: %+v / %+v", offsets, table)
	}
}

func TestParseIndexArray(t *testing.T) {
	payload := []byte{0, 0, 0, 0, 10, 0, 0, 0}
	got := parseIndexArray(payload)
	if len(got) != 2 || got[0] != 0 || got[1] != 10 {
		t.Fatalf("parseIndexArray = %v", got)
	}
}

func TestAssetResolverResolvesDoodad(t *testing.T) {
	names := NameTable{0: "foo.m2"}
	index := []uint32{0}
	r := NewAssetResolver(names, nil, index, nil)

	p := Placement{Kind: PlacementDoodad, NameID: 0}
	got := r.Resolve(p)
	if !got.NameResolved || got.Name != "foo.m2" {
		t.Fatalf("Resolve = %+v", got)
	}
}

func TestAssetResolverResolvesObject(t *testing.T) {
	names := NameTable{0: "bar.wmo"}
	index := []uint32{0}
	r := NewAssetResolver(nil, names, nil, index)

	p := Placement{Kind: PlacementObject, NameID: 0}
	got := r.Resolve(p)
	if !got.NameResolved || got.Name != "bar.wmo" {
		t.Fatalf("Resolve = %+v", got)
	}
}

func TestAssetResolverOutOfRangeNameID(t *testing.T) {
	r := NewAssetResolver(nil, nil, nil, nil)
	p := Placement{Kind: PlacementDoodad, NameID: 5}
	got := r.Resolve(p)
	if got.NameResolved {
		t.Fatal("expected NameResolved=false for out-of-range name_id")
	}
	if !strings.Contains(got.Name, "invalid") {
		t.Fatalf("Name = %q, want sentinel containing \"invalid\"", got.Name)
	}
}

func TestAssetResolverDanglingIndexEntry(t *testing.T) {
	// index points at an offset with no matching name table entry.
	r := NewAssetResolver(NameTable{}, nil, []uint32{99}, nil)
	p := Placement{Kind: PlacementDoodad, NameID: 0}
	got := r.Resolve(p)
	if got.NameResolved {
		t.Fatal("expected NameResolved=false for dangling index entry")
	}
}
