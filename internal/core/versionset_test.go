package core

import (
	"testing"

	"avular-packages/internal/types"
)

func TestVersionRangeSatisfiedBy(t *testing.T) {
	cases := []struct {
		name      string
		op        types.DebOp
		bound     string
		candidate string
		want      bool
	}{
		{"none matches anything", types.DebOpNone, "", "1.0", true},
		{"ge equal", types.DebOpGe, "1.0", "1.0", true},
		{"ge lower fails", types.DebOpGe, "1.0", "0.9", false},
		{"lt strict", types.DebOpLt, "2.0", "1.9", true},
		{"lt equal fails", types.DebOpLt, "2.0", "2.0", false},
		{"eq exact", types.DebOpEq, "1.2.3", "1.2.3", true},
		{"eq mismatch", types.DebOpEq, "1.2.3", "1.2.4", false},
		{"gt strict", types.DebOpGt, "1.0", "1.0", false},
		{"le equal", types.DebOpLe, "1.0", "1.0", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := versionRange{Op: c.op, Version: c.bound}
			if got := r.satisfiedBy(c.candidate); got != c.want {
				t.Fatalf("satisfiedBy(%q) = %v, want %v", c.candidate, got, c.want)
			}
		})
	}
}

func TestVersionSetTableDedups(t *testing.T) {
	table := newVersionSetTable()
	vs := versionSet{Arch: ArchAny, Name: 3, Range: versionRange{Op: types.DebOpGe, Version: "1.0"}}
	id1 := table.GetOrInsert(vs)
	id2 := table.GetOrInsert(vs)
	if id1 != id2 {
		t.Fatal("identical version sets must intern to the same id")
	}
	other := vs
	other.SelfRef = 7
	id3 := table.GetOrInsert(other)
	if id3 == id1 {
		t.Fatal("a differing self-reference must produce a distinct version set")
	}
}

func TestVersionSetUnionTableDedups(t *testing.T) {
	table := newVersionSetUnionTable()
	id1 := table.GetOrInsert([]VersionSetId{1, 2, 3})
	id2 := table.GetOrInsert([]VersionSetId{1, 2, 3})
	if id1 != id2 {
		t.Fatal("identical unions must intern to the same id")
	}
	id3 := table.GetOrInsert([]VersionSetId{3, 2, 1})
	if id3 == id1 {
		t.Fatal("member order distinguishes a union's identity")
	}
}
