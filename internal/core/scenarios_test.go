package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func pkg(name, version string, mut func(*types.Package)) types.Package {
	p := types.Package{Name: name, Version: version, Architecture: "amd64"}
	if mut != nil {
		mut(&p)
	}
	return p
}

func dep(name string) types.DependencyGroup {
	return types.DependencyGroup{Alternatives: []types.DependencyAtom{{Name: name}}}
}

func depRange(name string, lo, hi string) []types.DependencyGroup {
	return []types.DependencyGroup{
		{Alternatives: []types.DependencyAtom{{Name: name, Op: types.DebOpGe, Version: lo}}},
		{Alternatives: []types.DependencyAtom{{Name: name, Op: types.DebOpLt, Version: hi}}},
	}
}

func mustUniverse(t *testing.T, sets ...types.PackageSet) *Universe {
	t.Helper()
	u, err := NewUniverse(context.Background(), sets, "amd64")
	require.NoError(t, err)
	return u
}

func solveNames(t *testing.T, u *Universe, reqs []Requirement) ([]string, *Conflict) {
	t.Helper()
	problem, err := u.Problem(context.Background(), reqs)
	require.NoError(t, err)
	solution, conflict, err := u.Solve(context.Background(), problem)
	require.NoError(t, err)
	if conflict != nil {
		return nil, conflict
	}
	var names []string
	for _, id := range solution.Selected {
		names = append(names, u.Package(id).Name)
	}
	return names, nil
}

// self_dependent (spec.md §8.1): alpha both provides and breaks beta;
// selecting alpha must not trip its own Breaks via its own Provides, and
// nothing else provides beta, so the solution is alpha alone.
func TestScenarioSelfDependent(t *testing.T) {
	alpha := pkg("alpha", "1.0", func(p *types.Package) {
		p.Provides = []types.ProvidesEntry{{Name: "beta"}}
		p.Breaks = []types.DependencyAtom{{Name: "beta"}}
	})
	u := mustUniverse(t, types.PackageSet{Name: "repo", Packages: []types.Package{alpha}})
	names, conflict := solveNames(t, u, []Requirement{{Name: "alpha"}})
	require.Nil(t, conflict)
	assert.Equal(t, []string{"alpha"}, names)
}

// absent (spec.md §8.2): alpha conflicts with a name nothing provides;
// the conflict is vacuously satisfied and alpha installs alone.
func TestScenarioAbsent(t *testing.T) {
	alpha := pkg("alpha", "1.0", func(p *types.Package) {
		p.Conflicts = []types.DependencyAtom{{Name: "beta"}}
	})
	u := mustUniverse(t, types.PackageSet{Name: "repo", Packages: []types.Package{alpha}})
	names, conflict := solveNames(t, u, []Requirement{{Name: "alpha"}})
	require.Nil(t, conflict)
	assert.Equal(t, []string{"alpha"}, names)
}

// absent_2 (spec.md §8.3): alpha depends on "beta (=1.0) | omega"; omega
// has no candidate at all, so the solver must fall back onto the present
// alternative beta.
func TestScenarioAbsentTransitive(t *testing.T) {
	alpha := pkg("alpha", "1.0", func(p *types.Package) {
		p.Depends = []types.DependencyGroup{{Alternatives: []types.DependencyAtom{
			{Name: "beta", Op: types.DebOpEq, Version: "1.0"},
			{Name: "omega"},
		}}}
	})
	beta := pkg("beta", "1.0", nil)
	u := mustUniverse(t, types.PackageSet{Name: "repo", Packages: []types.Package{alpha, beta}})
	names, conflict := solveNames(t, u, []Requirement{{Name: "alpha"}})
	require.Nil(t, conflict)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
}

// mutual (spec.md §8.4): alpha provides beta at its own version and
// breaks an old beta range; neither the self-provide nor the
// version-mismatched Breaks should block alpha from installing alone.
func TestScenarioMutual(t *testing.T) {
	alpha := pkg("alpha", "2.6.1", func(p *types.Package) {
		p.Provides = []types.ProvidesEntry{{Name: "beta", Version: "2.6.1"}}
		p.Breaks = []types.DependencyAtom{{Name: "beta", Op: types.DebOpLe, Version: "1.5~alpha4~"}}
	})
	u := mustUniverse(t, types.PackageSet{Name: "repo", Packages: []types.Package{alpha}})
	names, conflict := solveNames(t, u, []Requirement{{Name: "alpha"}})
	require.Nil(t, conflict)
	assert.Equal(t, []string{"alpha"}, names)
}

// dep_break (spec.md §8.5): alpha depends on beta, beta breaks an old
// alpha range that alpha's actual version does not fall into, so both
// install together.
func TestScenarioDepBreak(t *testing.T) {
	alpha := pkg("alpha", "2.38.1-5+deb12u2", func(p *types.Package) {
		p.Depends = []types.DependencyGroup{dep("beta")}
	})
	beta := pkg("beta", "2.38.1-5+deb12u2", func(p *types.Package) {
		p.Breaks = []types.DependencyAtom{{Name: "alpha", Op: types.DebOpLe, Version: "2.38~"}}
	})
	u := mustUniverse(t, types.PackageSet{Name: "repo", Packages: []types.Package{alpha, beta}})
	names, conflict := solveNames(t, u, []Requirement{{Name: "alpha"}})
	require.Nil(t, conflict)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
}

// dep_range (spec.md §8.6): an Architecture: all package's range
// dependency must resolve under the universe's preferred arch and
// select the unique xkb-data version inside the range.
func TestScenarioDepRange(t *testing.T) {
	kbd := pkg("keyboard-configuration", "1.221", func(p *types.Package) {
		p.Architecture = "all"
		p.Depends = depRange("xkb-data", "2.35.1~", "2.35.1A")
	})
	xkbData := pkg("xkb-data", "2.35.1-1", func(p *types.Package) { p.Architecture = "all" })
	u := mustUniverse(t, types.PackageSet{Name: "repo", Packages: []types.Package{kbd, xkbData}})
	names, conflict := solveNames(t, u, []Requirement{{Name: "keyboard-configuration"}})
	require.Nil(t, conflict)
	assert.ElementsMatch(t, []string{"keyboard-configuration", "xkb-data"}, names)
}
