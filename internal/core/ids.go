package core

// StringId identifies an interned string in the universe's string table.
type StringId int

// ArchId identifies an interned architecture. ArchAny is always id 0 and
// satisfies, and is satisfied by, every other architecture.
type ArchId int

// NameId identifies an interned package (or provides-only) name.
type NameId int

// VersionSetId identifies a single interned (arch, name, version range,
// optional self-reference) tuple.
type VersionSetId int

// VersionSetUnionId identifies an interned, ordered, non-empty list of
// VersionSetIds representing a "|"-separated alternatives group.
type VersionSetUnionId int

// SolvableId identifies a single interned package version (a solvable).
// SolvableId(0) is reserved as the "root" pseudo-solvable used to seed
// the problem with baseline (essential/required/explicit) requirements.
type SolvableId int

// RootSolvable is the synthetic solvable whose dependencies are the
// baseline + explicit requirements fed to the clause solver.
const RootSolvable SolvableId = 0

// ArchAny is the architecture that satisfies, and is satisfied by, every
// other architecture (Debian's "Architecture: all").
const ArchAny ArchId = 0
