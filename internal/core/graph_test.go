package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestSortSolutionOrdersDependenciesBeforeDependents(t *testing.T) {
	leaf := pkg("leaf", "1.0", nil)
	mid := pkg("mid", "1.0", func(p *types.Package) { p.Depends = []types.DependencyGroup{dep("leaf")} })
	top := pkg("top", "1.0", func(p *types.Package) { p.Depends = []types.DependencyGroup{dep("mid")} })

	u := mustUniverse(t, types.PackageSet{Name: "repo", Packages: []types.Package{leaf, mid, top}})
	problem, err := u.Problem(context.Background(), []Requirement{{Name: "top"}})
	require.NoError(t, err)
	solution, conflict, err := u.Solve(context.Background(), problem)
	require.NoError(t, err)
	require.Nil(t, conflict)

	order := u.SortSolution(context.Background(), solution)
	require.Len(t, order, 3)

	pos := make(map[string]int, 3)
	for i, id := range order {
		pos[u.Package(id).Name] = i
	}
	assert.Less(t, pos["leaf"], pos["mid"], "leaf must be installed before mid")
	assert.Less(t, pos["mid"], pos["top"], "mid must be installed before top")
}

func TestKosarajuSCCGroupsCycles(t *testing.T) {
	edges := map[SolvableId][]SolvableId{
		1: {2},
		2: {1},
		3: {},
	}
	sccs := kosarajuSCC([]SolvableId{1, 2, 3}, edges)
	require.Len(t, sccs, 2)

	var cycleFound, singletonFound bool
	for _, comp := range sccs {
		if len(comp) == 2 {
			cycleFound = true
		}
		if len(comp) == 1 {
			singletonFound = true
		}
	}
	assert.True(t, cycleFound)
	assert.True(t, singletonFound)
}
