package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/crillab/gophersat/solver"
)

// Conflict explains why Solve found no satisfying assignment (spec.md
// §4.7, §7).
type Conflict struct {
	Reason  string
	Clauses []string
}

// Solution is the set of solvables the clause solver selected.
type Solution struct {
	Selected []SolvableId
}

// Solve generates CNF clauses from the Problem's requirements plus every
// solvable's own requirements/constrains, feeds them to gophersat, and
// returns the selected solvable set or a Conflict when unsatisfiable.
// SolvableIds double as SAT variable numbers directly: real solvables
// occupy ids 1..N, matching gophersat's 1-indexed variables exactly.
func (u *Universe) Solve(ctx context.Context, problem *Problem) (*Solution, *Conflict, error) {
	if err := u.ShouldCancel(ctx); err != nil {
		return nil, nil, err
	}
	nbVars := u.idx.SolvableCount() - 1
	if nbVars <= 0 {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("universe has no solvables to select from")
	}

	var clauses [][]int
	clauses = append(clauses, u.atMostOneClauses()...)

	rootClauses, conflict := u.requirementClauses(ctx, RootSolvable, problem.Requirements, false)
	if conflict != nil {
		return nil, conflict, nil
	}
	clauses = append(clauses, rootClauses...)

	transitive, conflict := u.transitiveClauses(ctx)
	if conflict != nil {
		return nil, conflict, nil
	}
	clauses = append(clauses, transitive...)

	costLits, costWeights := u.costFunc(ctx)

	prob := solver.ParseSliceNb(clauses, nbVars)
	prob.SetCostFunc(costLits, costWeights)
	sat := solver.New(prob)
	if err := u.ShouldCancel(ctx); err != nil {
		return nil, nil, err
	}
	if cost := sat.Minimize(); cost < 0 {
		return nil, &Conflict{Reason: "no satisfying assignment exists for the given requirements"}, nil
	}
	model := sat.Model()
	var selected []SolvableId
	for i, value := range model {
		if value {
			selected = append(selected, SolvableId(i+1))
		}
	}
	return &Solution{Selected: selected}, nil, nil
}

// atMostOneClauses forbids selecting two different versions of the same
// own package name simultaneously.
func (u *Universe) atMostOneClauses() [][]int {
	groups := make(map[NameId][]int)
	for i := 1; i < u.idx.SolvableCount(); i++ {
		sv := u.idx.Solvable(SolvableId(i))
		groups[sv.Name] = append(groups[sv.Name], i)
	}
	var clauses [][]int
	for _, ids := range groups {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				clauses = append(clauses, []int{-ids[i], -ids[j]})
			}
		}
	}
	return clauses
}

// requirementClauses flattens a list of requirement unions into "at
// least one alternative candidate holds" clauses, each optionally guarded
// by the owning solvable's own literal (owner==RootSolvable means an
// unconditional root demand).
func (u *Universe) requirementClauses(ctx context.Context, owner SolvableId, reqs []VersionSetUnionId, guarded bool) ([][]int, *Conflict) {
	var clauses [][]int
	for _, unionID := range reqs {
		var candidates []int
		for _, vsID := range u.idx.unions.Get(unionID) {
			vs := u.idx.vsets.Get(vsID)
			all := u.Candidates(ctx, vs.Name)
			matched := u.FilterCandidates(ctx, all, vsID, false)
			for _, m := range matched {
				candidates = append(candidates, int(m))
			}
		}
		candidates = dedupInts(candidates)
		if len(candidates) == 0 {
			if owner == RootSolvable {
				return nil, &Conflict{
					Reason:  "an explicit or baseline requirement has no satisfying candidate",
					Clauses: []string{u.describeUnion(unionID)},
				}
			}
			clauses = append(clauses, []int{-int(owner)})
			continue
		}
		clause := candidates
		if guarded || owner != RootSolvable {
			clause = append([]int{-int(owner)}, candidates...)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// transitiveClauses emits each real solvable's own requirement and
// constrains clauses: "if selected, at least one candidate for each
// requirement must hold" and "if selected, no constrained candidate may
// also hold".
func (u *Universe) transitiveClauses(ctx context.Context) ([][]int, *Conflict) {
	var clauses [][]int
	for i := 1; i < u.idx.SolvableCount(); i++ {
		id := SolvableId(i)
		known := u.Dependencies(ctx, id)
		if !known.Known {
			clauses = append(clauses, []int{-int(id)})
			continue
		}
		reqClauses, conflict := u.requirementClauses(ctx, id, known.Requirements, true)
		if conflict != nil {
			return nil, conflict
		}
		clauses = append(clauses, reqClauses...)

		for _, vsID := range known.Constrains {
			vs := u.idx.vsets.Get(vsID)
			all := u.Candidates(ctx, vs.Name)
			matched := u.FilterCandidates(ctx, all, vsID, false)
			for _, m := range matched {
				if m == id {
					continue
				}
				clauses = append(clauses, []int{-int(id), -int(m)})
			}
		}
	}
	return clauses, nil
}

// costFunc assigns each solvable a penalty weight within its own-name
// group: SortCandidates's ascending order means the last (best) entry
// gets weight 0 and earlier entries get increasingly penalized, so the
// minimizing solver prefers the best candidate per name whenever the
// clauses leave a choice.
func (u *Universe) costFunc(ctx context.Context) ([]solver.Lit, []int) {
	groups := make(map[NameId][]SolvableId)
	for i := 1; i < u.idx.SolvableCount(); i++ {
		sv := u.idx.Solvable(SolvableId(i))
		groups[sv.Name] = append(groups[sv.Name], SolvableId(i))
	}
	var lits []solver.Lit
	var weights []int
	for _, ids := range groups {
		ordered := u.SortCandidates(ctx, ids)
		for i, id := range ordered {
			lits = append(lits, solver.IntToLit(int32(id)))
			weights = append(weights, len(ordered)-1-i)
		}
	}
	return lits, weights
}

func (u *Universe) describeUnion(unionID VersionSetUnionId) string {
	out := ""
	for i, vsID := range u.idx.unions.Get(unionID) {
		if i > 0 {
			out += " | "
		}
		vs := u.idx.vsets.Get(vsID)
		out += u.idx.names.Name(vs.Name)
		if vs.Range.Op != "" {
			out += " (" + string(vs.Range.Op) + " " + vs.Range.Version + ")"
		}
	}
	return out
}

func dedupInts(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
