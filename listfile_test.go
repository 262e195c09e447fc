package adt

import "testing"

func TestNormalizeAssetName(t *testing.T) {
	cases := []struct{ in, want string }{
		{`World\Models\Foo.MDX`, "world/models/foo.m2"},
		{"already/lower.m2", "already/lower.m2"},
		{`Mixed\Case.MDX`, "mixed/case.m2"},
	}
	for _, c := range cases {
		if got := normalizeAssetName(c.in); got != c.want {
			t.Errorf("normalizeAssetName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewListfileMembership(t *testing.T) {
	lf := NewListfile([]string{`World\Foo.mdx`})
	if _, ok := lf["world/foo.m2"]; !ok {
		t.Fatal("expected normalized name present in listfile set")
	}
}
