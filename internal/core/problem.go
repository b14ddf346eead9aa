package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/types"
)

// Problem is the fully-seeded requirement set handed to the solve
// driver: the baseline (every essential and required package) plus the
// caller's explicit requirements, all ANDed together as the synthetic
// RootSolvable's own requirements (spec.md §4.6).
type Problem struct {
	Requirements []VersionSetUnionId
}

// Requirement is one caller-supplied "name (op version)" request,
// resolved to a VersionSetId before being added to the Problem.
type Requirement struct {
	Name    string
	Arch    string
	Op      string
	Version string
}

// Problem builds the root requirement set: every essential package,
// every required package, and the caller's explicit requirements, each
// as its own mandatory (non-alternative) union member. A baseline entry
// pins the exact version (and arch) of every essential/required
// solvable sharing that name, unioned together, never an unversioned
// "any version of this name" requirement (spec.md §4.4). Explicit
// entries may carry a version range and resolve their arch qualifier
// against the universe's preferred architecture.
func (u *Universe) Problem(ctx context.Context, explicit []Requirement) (*Problem, error) {
	p := &Problem{}

	baseline := make(map[NameId][]SolvableId)
	var order []NameId
	addToBaseline := func(id SolvableId) {
		name := u.idx.Solvable(id).Name
		if _, ok := baseline[name]; !ok {
			order = append(order, name)
		}
		baseline[name] = append(baseline[name], id)
	}
	for _, id := range u.idx.essential {
		addToBaseline(id)
	}
	for _, id := range u.idx.required {
		addToBaseline(id)
	}
	for _, name := range order {
		p.addBaseline(u, baseline[name])
	}

	for _, req := range explicit {
		assert.NotEmpty(ctx, req.Name, "requirement name must be set")
		atom := types.DependencyAtom{Name: req.Name, Arch: req.Arch, Op: types.DebOp(req.Op), Version: req.Version}
		vsID, ok, reason := u.idx.internDependencyAtom(RootSolvable, -1, u.preferredArch, nil, atom)
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requirement %q: %s", req.Name, reason))
		}
		p.Requirements = append(p.Requirements, u.idx.unions.GetOrInsert([]VersionSetId{vsID}))
	}
	return p, nil
}

// addBaseline pins the exact (arch, version) of every solvable sharing
// one essential/required name, unioned as alternatives of one another
// so the solver may pick any of them but never a different version
// under that name.
func (p *Problem) addBaseline(u *Universe, solvables []SolvableId) {
	var members []VersionSetId
	seen := make(map[SolvableId]bool, len(solvables))
	for _, id := range solvables {
		if seen[id] {
			continue
		}
		seen[id] = true
		sv := u.idx.Solvable(id)
		vs := versionSet{Arch: sv.Arch, Name: sv.Name, Range: versionRange{Op: types.DebOpEq, Version: sv.Version}}
		members = append(members, u.idx.vsets.GetOrInsert(vs))
	}
	p.Requirements = append(p.Requirements, u.idx.unions.GetOrInsert(members))
}
