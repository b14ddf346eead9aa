package types

// DebOp is a Debian version-relation operator as used in a dependency
// field's "(op version)" clause (Debian Policy §7.1).
type DebOp string

const (
	DebOpNone DebOp = ""
	DebOpLt   DebOp = "<<"
	DebOpLe   DebOp = "<="
	DebOpEq   DebOp = "="
	DebOpGe   DebOp = ">="
	DebOpGt   DebOp = ">>"
)

// RepoFileRef identifies the on-disk or remote artifact backing a
// package solvable, verified by size and hash before being read.
type RepoFileRef struct {
	Path string
	Size int64
	Hash string // "sha256:<hex>"
}

// ProvidesEntry is one entry of a package's Provides field: a name and,
// for a versioned provides (Debian Policy §7.5.1), an exact version.
type ProvidesEntry struct {
	Name    string
	Version string // empty unless this is a versioned provides
}

// DependencyAtom is a single "name[:arch] (op version)" clause.
type DependencyAtom struct {
	Name    string
	Arch    string // empty when no ":arch" qualifier is present
	Op      DebOp
	Version string
}

// DependencyGroup is one comma-separated entry of a Depends/Pre-Depends
// field: a non-empty list of DependencyAtom alternatives joined by "|".
// A group with a single element has no alternatives.
type DependencyGroup struct {
	Alternatives []DependencyAtom
}

// Package is the parser collaborator's output for a single package
// version (spec.md §6.1): everything the universe index needs to ingest
// one solvable, independent of how the control-file data was obtained.
type Package struct {
	Name         string
	Architecture string // "all" and "" both mean ArchAny
	Version      string
	Essential    bool
	Required     bool
	Provides     []ProvidesEntry
	Depends      []DependencyGroup
	PreDepends   []DependencyGroup
	Conflicts    []DependencyAtom
	Breaks       []DependencyAtom
	RepoFile     RepoFileRef
	SourceSet    int // index of the owning package set, for provenance
}

// PackageSet is a named, ordered collection of package versions drawn
// from one repository index (spec.md §3's "source-package-set").
type PackageSet struct {
	Name     string
	Packages []Package
}

// FullName renders "name_version_arch", the teacher's and Debian
// tooling's conventional display form for a concrete package version.
func (p Package) FullName() string {
	return p.Name + "_" + p.Version + "_" + p.Architecture
}
