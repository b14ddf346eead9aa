package core

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"avular-packages/internal/ports"
	"avular-packages/internal/types"
)

// Universe owns the interning index and every ingested package set, and
// exposes the operation surface spec.md §6.3 names as the core's only
// public contract.
type Universe struct {
	idx           *index
	sets          []types.PackageSet
	preferredArch ArchId
	repo          ports.DebRepoPort
}

// WithRepo attaches the repository collaborator (spec.md §6.2) used by
// DebReader/DebFileReader/CopyDebFile to fetch and verify a solvable's
// backing .deb artifact. It returns u for fluent construction.
func (u *Universe) WithRepo(repo ports.DebRepoPort) *Universe {
	u.repo = repo
	return u
}

// NewUniverse ingests every package in every set, in order, interning
// names/architectures/version-sets as it goes. preferredArch (e.g.
// "amd64") makes SortCandidates prefer that architecture; an empty
// string disables arch-based preference. A structural parse
// error in any package aborts construction entirely (spec.md §7).
func NewUniverse(ctx context.Context, sets []types.PackageSet, preferredArch string) (*Universe, error) {
	idx := newIndex()
	u := &Universe{idx: idx, sets: sets}
	if preferredArch != "" {
		u.preferredArch = idx.archs.GetOrInsert(preferredArch)
	}
	for setIdx, set := range sets {
		for pkgIdx, pkg := range set.Packages {
			pkg.SourceSet = setIdx
			if _, err := idx.AddPackage(pkg, setIdx, pkgIdx); err != nil {
				return nil, err
			}
		}
	}
	log.Ctx(ctx).Debug().
		Int("package_sets", len(sets)).
		Int("solvables", idx.SolvableCount()-1).
		Msg("universe constructed")
	return u, nil
}

// Package projects a SolvableId back to the types.Package that produced
// it. The index itself never stores this value; it is looked up on
// demand from the owning package set.
func (u *Universe) Package(id SolvableId) types.Package {
	sv := u.idx.Solvable(id)
	p := u.sets[sv.SourceSet].Packages[sv.PackageIndex]
	p.SourceSet = sv.SourceSet
	return p
}

// Packages returns every solvable id known to the universe, in
// ingestion order (excluding the synthetic RootSolvable).
func (u *Universe) Packages() []SolvableId {
	out := make([]SolvableId, 0, u.idx.SolvableCount()-1)
	for i := 1; i < u.idx.SolvableCount(); i++ {
		out = append(out, SolvableId(i))
	}
	return out
}

// DisplaySolvable renders a solvable the way Debian tooling conventionally
// identifies a concrete package version, for use in conflict messages.
func (u *Universe) DisplaySolvable(id SolvableId) string {
	if id == RootSolvable {
		return "<root>"
	}
	return u.Package(id).FullName()
}

// DisplaySolvables renders a set of solvable ids as one compact,
// deterministic string, grouping multiple candidate versions under a
// shared package name the way Debian tooling summarizes a conflicting
// family of versions in one line (ported conceptually from the Rust
// original's display_merged_solvables).
func (u *Universe) DisplaySolvables(ids []SolvableId) string {
	groups := make(map[string][]string)
	var order []string
	for _, id := range ids {
		p := u.Package(id)
		if _, ok := groups[p.Name]; !ok {
			order = append(order, p.Name)
		}
		groups[p.Name] = append(groups[p.Name], p.Version+":"+p.Architecture)
	}
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, name+"="+strings.Join(groups[name], "|"))
	}
	return strings.Join(parts, ", ")
}

// DebFileReader opens a verified raw byte-stream reader for the
// .deb artifact backing the given solvable (spec.md §6.3), delegating
// the fetch-and-verify work to the attached repository collaborator.
func (u *Universe) DebFileReader(ctx context.Context, id SolvableId) (io.ReadCloser, error) {
	if u.repo == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("universe has no repository collaborator attached; call WithRepo first")
	}
	return u.repo.VerifyingReader(ctx, u.Package(id).RepoFile)
}

// DebReader opens the given solvable's backing .deb artifact wrapped
// with ar-archive semantics (spec.md §6.3), so a caller can walk its
// debian-binary/control.tar.*/data.tar.* members directly.
func (u *Universe) DebReader(ctx context.Context, id SolvableId) (*ports.DebReader, error) {
	if u.repo == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("universe has no repository collaborator attached; call WithRepo first")
	}
	return u.repo.VerifyingDebReader(ctx, u.Package(id).RepoFile)
}

// CopyDebFile streams the given solvable's verified .deb artifact into w,
// returning the number of bytes copied (spec.md §6.3).
func (u *Universe) CopyDebFile(ctx context.Context, w io.Writer, id SolvableId) (int64, error) {
	reader, err := u.DebFileReader(ctx, id)
	if err != nil {
		return 0, err
	}
	defer reader.Close()
	n, err := io.Copy(w, reader)
	if err != nil {
		return n, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to copy .deb artifact for %s", u.DisplaySolvable(id))).
			WithCause(err)
	}
	return n, nil
}

// DisplayConflict renders a *Conflict (see solve.go) as a human-readable
// explanation, one line per contributing clause.
func (u *Universe) DisplayConflict(c *Conflict) string {
	if c == nil {
		return ""
	}
	out := fmt.Sprintf("dependency resolution failed: %s", c.Reason)
	for _, line := range c.Clauses {
		out += "\n  " + line
	}
	return out
}
