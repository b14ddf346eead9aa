package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"avular-packages/internal/types"
)

func TestParseDependencyAtom(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  types.DependencyAtom
	}{
		{"bare name", "libfoo", types.DependencyAtom{Name: "libfoo"}},
		{"arch qualifier", "libfoo:amd64", types.DependencyAtom{Name: "libfoo", Arch: "amd64"}},
		{"version clause", "libfoo (>= 1.2.3)", types.DependencyAtom{Name: "libfoo", Op: types.DebOpGe, Version: "1.2.3"}},
		{"arch restriction stripped", "libfoo (>= 1.0) [amd64]", types.DependencyAtom{Name: "libfoo", Op: types.DebOpGe, Version: "1.0"}},
		{"arch qualifier and version", "libfoo:armhf (<< 2.0)", types.DependencyAtom{Name: "libfoo", Arch: "armhf", Op: types.DebOpLt, Version: "2.0"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := parseDependencyAtom(c.input)
			assert.True(t, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseDependencyGroupsAlternatives(t *testing.T) {
	groups := parseDependencyGroups([]string{"libfoo | libbar (>= 2.0)"})
	if assert.Len(t, groups, 1) {
		assert.Len(t, groups[0].Alternatives, 2)
		assert.Equal(t, "libfoo", groups[0].Alternatives[0].Name)
		assert.Equal(t, "libbar", groups[0].Alternatives[1].Name)
		assert.Equal(t, types.DebOpGe, groups[0].Alternatives[1].Op)
	}
}

func TestParseProvidesVersioned(t *testing.T) {
	entry := parseProvides("mail-transport-agent (= 1.0)")
	assert.Equal(t, types.ProvidesEntry{Name: "mail-transport-agent", Version: "1.0"}, entry)
}

func TestParseProvidesUnversioned(t *testing.T) {
	entry := parseProvides("mail-transport-agent")
	assert.Equal(t, types.ProvidesEntry{Name: "mail-transport-agent"}, entry)
}
