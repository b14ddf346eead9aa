package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	debversion "github.com/knqyf263/go-deb-version"

	"avular-packages/internal/types"
)

// solvable is one interned package version plus its precomputed,
// fully-resolved dependency data (spec.md §3's "Solvable" record and
// §4.4's ingestion output).
type solvable struct {
	Name         NameId
	Arch         ArchId
	Version      string
	SourceSet    int
	PackageIndex int

	Essential bool
	Required  bool

	Requirements []VersionSetUnionId // Pre-Depends ++ Depends, ANDed
	Constrains   []VersionSetId      // Conflicts ++ Breaks, ANDed, none may hold

	DepsUnknown bool   // true when dependency parsing failed for this solvable
	DepsReason  string // human-readable reason, set iff DepsUnknown
}

// index is the universe's interning + ingestion core (spec.md §4.4). It
// never stores a *types.Package; only integer ids and the (set, index)
// pair needed to project back to the owning Package on demand.
type index struct {
	strs   *stringTable
	archs  *archTable
	names  *nameTable
	vsets  *versionSetTable
	unions *versionSetUnionTable

	solvables []solvable // solvables[0] is an unused placeholder for RootSolvable

	byName    map[NameId][]SolvableId // candidates, own-name or provides-name
	required  []SolvableId
	essential []SolvableId
}

func newIndex() *index {
	idx := &index{
		strs:   newStringTable(),
		archs:  newArchTable(),
		names:  newNameTable(),
		vsets:  newVersionSetTable(),
		unions: newVersionSetUnionTable(),
		byName: make(map[NameId][]SolvableId),
	}
	idx.solvables = append(idx.solvables, solvable{}) // reserve id 0 for RootSolvable
	return idx
}

// AddPackage ingests one parsed package version, interning its name,
// architecture, and every dependency/conflict/provides clause, and
// returns the new SolvableId. Structural errors (an empty alternatives
// group, an unparseable own-version) abort ingestion; a single bad
// dependency clause instead marks that solvable DepsUnknown, matching
// spec.md §7's distinction between construction-fatal and per-solvable
// parse errors.
func (idx *index) AddPackage(pkg types.Package, sourceSet, pkgIndex int) (SolvableId, error) {
	if pkg.Name == "" {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	if _, err := debversion.NewVersion(pkg.Version); err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package %s has unparseable version %q", pkg.Name, pkg.Version)).
			WithCause(err)
	}

	nameID := idx.names.GetOrInsert(pkg.Name, true)
	archID := resolveArch(idx.archs, pkg.Architecture)

	provNameIDs := make([]NameId, len(pkg.Provides))
	providesNames := make(map[NameId]bool, len(pkg.Provides))
	for i, p := range pkg.Provides {
		provNameIDs[i] = idx.names.GetOrInsert(p.Name, false)
		providesNames[provNameIDs[i]] = true
	}

	id := SolvableId(len(idx.solvables))
	sv := solvable{
		Name:         nameID,
		Arch:         archID,
		Version:      pkg.Version,
		SourceSet:    sourceSet,
		PackageIndex: pkgIndex,
		Essential:    pkg.Essential,
		Required:     pkg.Required,
	}

	reqs, unknown, reason, err := idx.buildRequirements(id, nameID, archID, providesNames, pkg)
	if err != nil {
		return 0, err
	}
	sv.Requirements = reqs
	sv.DepsUnknown = unknown
	sv.DepsReason = reason

	constrains, cUnknown, cReason := idx.buildConstrains(id, nameID, archID, providesNames, pkg)
	sv.Constrains = constrains
	if cUnknown && !sv.DepsUnknown {
		sv.DepsUnknown = true
		sv.DepsReason = cReason
	}

	idx.solvables = append(idx.solvables, sv)
	idx.byName[nameID] = append(idx.byName[nameID], id)

	for _, provName := range provNameIDs {
		idx.byName[provName] = append(idx.byName[provName], id)
	}

	if pkg.Essential {
		idx.essential = append(idx.essential, id)
	}
	if pkg.Required {
		idx.required = append(idx.required, id)
	}
	return id, nil
}

// buildRequirements interns Pre-Depends ++ Depends as one ANDed list of
// VersionSetUnionIds (one union per comma-separated group, one member
// per "|" alternative). A group with zero alternatives is a structural
// error; an alternative whose version fails to parse marks the whole
// solvable DepsUnknown instead of aborting construction.
func (idx *index) buildRequirements(owner SolvableId, ownerName NameId, ownerArch ArchId, providesNames map[NameId]bool, pkg types.Package) ([]VersionSetUnionId, bool, string, error) {
	var reqs []VersionSetUnionId
	groups := make([]types.DependencyGroup, 0, len(pkg.PreDepends)+len(pkg.Depends))
	groups = append(groups, pkg.PreDepends...)
	groups = append(groups, pkg.Depends...)

	for _, group := range groups {
		if len(group.Alternatives) == 0 {
			return nil, false, "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package %s has an empty dependency alternatives group", pkg.Name))
		}
		var members []VersionSetId
		for _, atom := range group.Alternatives {
			vsID, ok, reason := idx.internDependencyAtom(owner, ownerName, ownerArch, providesNames, atom)
			if !ok {
				return nil, true, reason, nil
			}
			members = append(members, vsID)
		}
		reqs = append(reqs, idx.unions.GetOrInsert(members))
	}
	return reqs, false, "", nil
}

// buildConstrains interns Conflicts ++ Breaks as a flat ANDed list of
// VersionSetIds: the solver must ensure none of them hold simultaneously
// with this solvable. A clause whose version fails to parse marks the
// whole solvable DepsUnknown, the same as for requirements.
func (idx *index) buildConstrains(owner SolvableId, ownerName NameId, ownerArch ArchId, providesNames map[NameId]bool, pkg types.Package) ([]VersionSetId, bool, string) {
	var out []VersionSetId
	atoms := make([]types.DependencyAtom, 0, len(pkg.Conflicts)+len(pkg.Breaks))
	atoms = append(atoms, pkg.Conflicts...)
	atoms = append(atoms, pkg.Breaks...)
	for _, atom := range atoms {
		vsID, ok, reason := idx.internDependencyAtom(owner, ownerName, ownerArch, providesNames, atom)
		if !ok {
			return nil, true, reason
		}
		out = append(out, vsID)
	}
	return out, false, ""
}

// internDependencyAtom interns a single dependency/conflict clause as a
// VersionSetId. The owning solvable is recorded as the version set's
// self-reference whenever the clause names either the owner's own
// package name or anything the owner itself Provides, so a package can
// never satisfy one of its own clauses via its own Provides (spec.md
// §4.3/§9, mirroring the Rust original's pkg.package.provides_name(n)
// check).
//
// An absent arch qualifier defaults to ownerArch (the owning solvable's
// own architecture for a package-declared clause, or the universe's
// preferred architecture for an explicit requirement — see
// resolveDependencyArch). Per DESIGN.md's Open Question decision, an
// explicit non-"any" arch qualifier still resolves to the literal named
// architecture (Debian Policy §7.1), not ownerArch.
func (idx *index) internDependencyAtom(owner SolvableId, ownerName NameId, ownerArch ArchId, providesNames map[NameId]bool, atom types.DependencyAtom) (VersionSetId, bool, string) {
	if atom.Op != types.DebOpNone {
		if _, err := debversion.NewVersion(atom.Version); err != nil {
			return 0, false, fmt.Sprintf("unparseable version %q in dependency on %s", atom.Version, atom.Name)
		}
	}
	depName := idx.names.GetOrInsert(atom.Name, false)
	archID := resolveDependencyArch(idx.archs, atom.Arch, ownerArch)

	var selfRef SolvableId
	if ownerName >= 0 && (depName == ownerName || providesNames[depName]) {
		selfRef = owner
	}

	vs := versionSet{
		Arch:    archID,
		Name:    depName,
		SelfRef: selfRef,
		Range:   versionRange{Op: atom.Op, Version: atom.Version},
	}
	return idx.vsets.GetOrInsert(vs), true, ""
}

// CandidatesFor returns every SolvableId known by the given name, either
// as its own package name or via a Provides entry, in insertion order.
func (idx *index) CandidatesFor(name NameId) []SolvableId {
	return idx.byName[name]
}

func (idx *index) LookupName(name string) (NameId, bool) {
	return idx.names.Lookup(name)
}

func (idx *index) Solvable(id SolvableId) solvable {
	return idx.solvables[id]
}

func (idx *index) SolvableCount() int {
	return len(idx.solvables)
}
