package core

import (
	"fmt"
	"strings"
	"sync"

	debversion "github.com/knqyf263/go-deb-version"

	"avular-packages/internal/types"
)

// versionRange is a single Debian relational clause, e.g. (>= 1.2.3).
// A zero-value range (DebOpNone) matches every version.
type versionRange struct {
	Op      types.DebOp
	Version string
}

func (r versionRange) satisfiedBy(candidate string) bool {
	if r.Op == types.DebOpNone {
		return true
	}
	have, err := debversion.NewVersion(candidate)
	if err != nil {
		return false
	}
	want, err := debversion.NewVersion(r.Version)
	if err != nil {
		return false
	}
	switch r.Op {
	case types.DebOpLt:
		return have.LessThan(want)
	case types.DebOpLe:
		return have.LessThan(want) || have.Equal(want)
	case types.DebOpEq:
		return have.Equal(want)
	case types.DebOpGe:
		return have.GreaterThan(want) || have.Equal(want)
	case types.DebOpGt:
		return have.GreaterThan(want)
	default:
		return false
	}
}

// versionSet is a single interned (arch, name, version range, optional
// self-reference) tuple — spec.md §3's "Version-set" record. The
// self-reference field, when set, excludes that one solvable from ever
// satisfying this version set even when every other field matches; this
// implements Debian's rule that a package's own Provides never satisfies
// its own dependency on that same name (spec.md §9).
type versionSet struct {
	Arch    ArchId
	Name    NameId
	SelfRef SolvableId // zero means "no self-exclusion"
	Range   versionRange
}

func (vs versionSet) key() string {
	return fmt.Sprintf("%d|%d|%d|%s|%s", vs.Arch, vs.Name, vs.SelfRef, vs.Range.Op, vs.Range.Version)
}

// versionSetTable interns versionSet values to dense VersionSetIds.
type versionSetTable struct {
	mu    sync.RWMutex
	sets  []versionSet
	byKey map[string]VersionSetId
}

func newVersionSetTable() *versionSetTable {
	return &versionSetTable{byKey: make(map[string]VersionSetId)}
}

func (t *versionSetTable) GetOrInsert(vs versionSet) VersionSetId {
	key := vs.key()
	t.mu.RLock()
	if id, ok := t.byKey[key]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byKey[key]; ok {
		return id
	}
	id := VersionSetId(len(t.sets))
	t.sets = append(t.sets, vs)
	t.byKey[key] = id
	return id
}

func (t *versionSetTable) Get(id VersionSetId) versionSet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sets[id]
}

// versionSetUnionTable interns ordered, non-empty lists of VersionSetIds
// — spec.md §3's "Version-set union", used for "|"-alternatives groups.
type versionSetUnionTable struct {
	mu     sync.RWMutex
	unions [][]VersionSetId
	byKey  map[string]VersionSetUnionId
}

func newVersionSetUnionTable() *versionSetUnionTable {
	return &versionSetUnionTable{byKey: make(map[string]VersionSetUnionId)}
}

func unionKey(ids []VersionSetId) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	return b.String()
}

func (t *versionSetUnionTable) GetOrInsert(ids []VersionSetId) VersionSetUnionId {
	key := unionKey(ids)
	t.mu.RLock()
	if id, ok := t.byKey[key]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byKey[key]; ok {
		return id
	}
	id := VersionSetUnionId(len(t.unions))
	t.unions = append(t.unions, append([]VersionSetId(nil), ids...))
	t.byKey[key] = id
	return id
}

func (t *versionSetUnionTable) Get(id VersionSetUnionId) []VersionSetId {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.unions[id]
}
