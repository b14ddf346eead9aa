package core

// resolveArch interns a Debian architecture string, treating "", "all",
// and "any" all as ArchAny. This mirrors dpkg's own treatment of
// "Architecture: all" packages as installable alongside any foreign
// architecture.
func resolveArch(archs *archTable, raw string) ArchId {
	switch raw {
	case "", "all", "any":
		return ArchAny
	default:
		return archs.GetOrInsert(raw)
	}
}

// resolveDependencyArch resolves a dependency/conflict atom's arch
// qualifier. An absent qualifier defaults to defaultArch: the owning
// solvable's own architecture for a package-declared clause, or the
// universe's preferred architecture for an explicit user-level
// requirement (spec.md §4.3). The literal "any" keyword always maps to
// ArchAny regardless of defaultArch; any other token is the named
// architecture itself (DESIGN.md's Open Question decision #1).
func resolveDependencyArch(archs *archTable, raw string, defaultArch ArchId) ArchId {
	switch raw {
	case "":
		return defaultArch
	case "any":
		return ArchAny
	default:
		return archs.GetOrInsert(raw)
	}
}
