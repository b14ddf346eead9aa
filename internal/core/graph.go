package core

import (
	"context"
	"fmt"
)

// DependencyGraph builds the directed graph over a solved solution: an
// edge from a to b means a's requirements are (at least partially)
// satisfied by b, restricted to solvables that are actually in the
// solution (spec.md §4.8). A selected solvable whose dependencies are
// unknown is an invariant violation and panics.
func (u *Universe) DependencyGraph(ctx context.Context, solution *Solution) map[SolvableId][]SolvableId {
	inSolution := make(map[SolvableId]bool, len(solution.Selected))
	for _, id := range solution.Selected {
		inSolution[id] = true
	}

	edges := make(map[SolvableId][]SolvableId, len(solution.Selected))
	for _, id := range solution.Selected {
		edges[id] = nil
		sv := u.idx.Solvable(id)
		if sv.DepsUnknown {
			panic(fmt.Sprintf("solved solvable %s has unknown dependencies: %s", u.DisplaySolvable(id), sv.DepsReason))
		}
		seen := make(map[SolvableId]bool)
		for _, unionID := range sv.Requirements {
			for _, vsID := range u.idx.unions.Get(unionID) {
				vs := u.idx.vsets.Get(vsID)
				for _, cand := range u.idx.CandidatesFor(vs.Name) {
					if cand == id || !inSolution[cand] || seen[cand] {
						continue
					}
					if !u.candidateMatchesVersionSet(cand, u.idx.Solvable(cand), vs) {
						continue
					}
					if !u.idx.archs.Satisfies(u.idx.Solvable(cand).Arch, vs.Arch) {
						continue
					}
					seen[cand] = true
					edges[id] = append(edges[id], cand)
				}
			}
		}
	}
	return edges
}

// SortSolution orders a solved solution so every solvable's dependencies
// appear at or before its own position — a reverse-topological order of
// the dependency graph (spec.md §4.8), computed via Kosaraju's strongly
// connected components algorithm so that mutually-dependent cycles are
// grouped together rather than causing an error.
func (u *Universe) SortSolution(ctx context.Context, solution *Solution) []SolvableId {
	edges := u.DependencyGraph(ctx, solution)
	sccs := kosarajuSCC(solution.Selected, edges)

	// kosarajuSCC returns components in the topological order of the
	// dependency graph itself (a depends-on b implies a's component
	// precedes b's). Install order needs dependencies before dependents,
	// so the components — not the members within each component — are
	// emitted in reverse.
	var out []SolvableId
	for i := len(sccs) - 1; i >= 0; i-- {
		out = append(out, sccs[i]...)
	}
	return out
}

// kosarajuSCC returns the strongly connected components of the graph
// described by edges (restricted to nodes), one slice per component, in
// the topological order of the component graph: if there is an edge
// from a node in component X to a node in component Y (X != Y), X comes
// before Y in the returned order.
func kosarajuSCC(nodes []SolvableId, edges map[SolvableId][]SolvableId) [][]SolvableId {
	visited := make(map[SolvableId]bool, len(nodes))
	var order []SolvableId

	var visit func(SolvableId)
	visit = func(n SolvableId) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, next := range edges[n] {
			visit(next)
		}
		order = append(order, n)
	}
	for _, n := range nodes {
		visit(n)
	}

	reverse := make(map[SolvableId][]SolvableId, len(nodes))
	for n, outs := range edges {
		for _, m := range outs {
			reverse[m] = append(reverse[m], n)
		}
	}

	assigned := make(map[SolvableId]bool, len(nodes))
	var components [][]SolvableId
	var collect func(SolvableId, *[]SolvableId)
	collect = func(n SolvableId, comp *[]SolvableId) {
		if assigned[n] {
			return
		}
		assigned[n] = true
		*comp = append(*comp, n)
		for _, next := range reverse[n] {
			collect(next, comp)
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if assigned[n] {
			continue
		}
		var comp []SolvableId
		collect(n, &comp)
		components = append(components, comp)
	}
	return components
}
