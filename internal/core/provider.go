package core

import (
	"context"
	"sort"

	debversion "github.com/knqyf263/go-deb-version"
)

// dependencyKnowledge is the provider's answer to "what does this
// solvable require and forbid" (spec.md §4.5's Known/Unknown result).
// A zero-value Known=false result means the solvable's dependencies
// could not be determined and must be treated as unsatisfiable.
type dependencyKnowledge struct {
	Known         bool
	Requirements  []VersionSetUnionId
	Constrains    []VersionSetId
	UnknownReason string
}

// Candidates returns every solvable known by name, own-name or
// Provides-name, in ingestion order (spec.md §4.5: get_candidates).
func (u *Universe) Candidates(ctx context.Context, name NameId) []SolvableId {
	return u.idx.CandidatesFor(name)
}

// FilterCandidates narrows candidates to those that satisfy vs, or (when
// inverse is true) those that do NOT satisfy it. Self-reference exclusion
// and architecture mismatch always remove a candidate regardless of
// inverse, matching the Rust original's filter ordering: exclusions are
// not inverted, only the positive version/name match is.
func (u *Universe) FilterCandidates(ctx context.Context, candidates []SolvableId, vs VersionSetId, inverse bool) []SolvableId {
	set := u.idx.vsets.Get(vs)
	out := make([]SolvableId, 0, len(candidates))
	for _, cand := range candidates {
		if set.SelfRef != 0 && cand == set.SelfRef {
			continue
		}
		sv := u.idx.Solvable(cand)
		if !u.idx.archs.Satisfies(sv.Arch, set.Arch) {
			continue
		}
		matches := u.candidateMatchesVersionSet(cand, sv, set)
		if matches != inverse {
			out = append(out, cand)
		}
	}
	return out
}

// candidateMatchesVersionSet checks the positive (non-exclusionary) half
// of version-set matching: either the candidate's own name/version
// satisfies the range, or one of its Provides entries does.
func (u *Universe) candidateMatchesVersionSet(cand SolvableId, sv solvable, set versionSet) bool {
	if sv.Name == set.Name {
		if set.Range.satisfiedBy(sv.Version) {
			return true
		}
	}
	pkg := u.Package(cand)
	for _, p := range pkg.Provides {
		provName, ok := u.idx.names.Lookup(p.Name)
		if !ok || provName != set.Name {
			continue
		}
		if p.Version == "" {
			if set.Range.Op == "" {
				return true
			}
			continue
		}
		if set.Range.satisfiedBy(p.Version) {
			return true
		}
	}
	return false
}

// Dependencies returns the precomputed requirements/constrains for a
// solvable, or an Unknown result when ingestion could not parse its
// dependency clauses (spec.md §4.5, §7).
func (u *Universe) Dependencies(ctx context.Context, id SolvableId) dependencyKnowledge {
	sv := u.idx.Solvable(id)
	if sv.DepsUnknown {
		return dependencyKnowledge{Known: false, UnknownReason: sv.DepsReason}
	}
	return dependencyKnowledge{Known: true, Requirements: sv.Requirements, Constrains: sv.Constrains}
}

// SortCandidates orders candidates of a non-preferred architecture
// before those satisfying the universe's preferred architecture (if
// any), then ascending by name, then ascending by version — so a solver
// that pops its pick from the end of the list prefers the highest
// version of the preferred architecture first. This reproduces the Rust
// original's comparator exactly (DESIGN.md's Open Question decision #2).
func (u *Universe) SortCandidates(ctx context.Context, candidates []SolvableId) []SolvableId {
	out := append([]SolvableId(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := u.idx.Solvable(out[i]), u.idx.Solvable(out[j])
		aNative := u.preferredArch != 0 && u.idx.archs.Satisfies(a.Arch, u.preferredArch)
		bNative := u.preferredArch != 0 && u.idx.archs.Satisfies(b.Arch, u.preferredArch)
		if aNative != bNative {
			return bNative // non-native sorts Less (first), native sorts last
		}
		if a.Name != b.Name {
			return u.idx.names.Name(a.Name) < u.idx.names.Name(b.Name)
		}
		if a.Version != b.Version {
			va, errA := debversion.NewVersion(a.Version)
			vb, errB := debversion.NewVersion(b.Version)
			if errA == nil && errB == nil {
				return va.LessThan(vb)
			}
			return a.Version < b.Version
		}
		return false
	})
	return out
}

// ShouldCancel always reports "do not cancel" unless the caller's own
// context is already done — the core never invents cancellation on its
// own (spec.md §5).
func (u *Universe) ShouldCancel(ctx context.Context) error {
	return ctx.Err()
}
