package adapters

import (
	"strings"

	"avular-packages/internal/types"
)

// parseDependencyGroups parses a slice of raw Debian dependency-field
// entries ("name[:arch] (op version) [arch-restriction] | alternative")
// into structured DependencyGroups. This is a best-effort stand-in for
// the real control-file parser named out of scope in spec.md §1: arch
// restriction brackets are recognized and stripped but not evaluated,
// since evaluating them requires build-profile context the real parser
// collaborator owns.
func parseDependencyGroups(raw []string) []types.DependencyGroup {
	var out []types.DependencyGroup
	for _, entry := range raw {
		var alts []types.DependencyAtom
		for _, part := range strings.Split(entry, "|") {
			if atom, ok := parseDependencyAtom(part); ok {
				alts = append(alts, atom)
			}
		}
		if len(alts) > 0 {
			out = append(out, types.DependencyGroup{Alternatives: alts})
		}
	}
	return out
}

func parseDependencyAtoms(raw []string) []types.DependencyAtom {
	var out []types.DependencyAtom
	for _, entry := range raw {
		if atom, ok := parseDependencyAtom(entry); ok {
			out = append(out, atom)
		}
	}
	return out
}

// parseDependencyAtom parses a single "name[:arch] (op version)" clause,
// stripping any trailing "[arch-restriction]" bracket.
func parseDependencyAtom(raw string) (types.DependencyAtom, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return types.DependencyAtom{}, false
	}
	if i := strings.Index(s, "["); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	name := s
	op := types.DebOpNone
	version := ""
	if before, after, ok := strings.Cut(s, "("); ok {
		name = strings.TrimSpace(before)
		clause := strings.TrimSuffix(strings.TrimSpace(after), ")")
		fields := strings.Fields(clause)
		if len(fields) == 2 {
			op = debOpFromToken(fields[0])
			version = fields[1]
		}
	}
	arch := ""
	if i := strings.Index(name, ":"); i >= 0 {
		arch = strings.TrimSpace(name[i+1:])
		name = strings.TrimSpace(name[:i])
	}
	if name == "" {
		return types.DependencyAtom{}, false
	}
	return types.DependencyAtom{Name: name, Arch: arch, Op: op, Version: version}, true
}

func debOpFromToken(token string) types.DebOp {
	switch types.DebOp(token) {
	case types.DebOpLt, types.DebOpLe, types.DebOpEq, types.DebOpGe, types.DebOpGt:
		return types.DebOp(token)
	default:
		return types.DebOpNone
	}
}

// parseProvides parses a single Provides entry, which may carry an exact
// version: "name (= version)" (Debian Policy §7.5.1).
func parseProvides(raw string) types.ProvidesEntry {
	s := strings.TrimSpace(raw)
	name := s
	version := ""
	if before, after, ok := strings.Cut(s, "("); ok {
		name = strings.TrimSpace(before)
		clause := strings.TrimSuffix(strings.TrimSpace(after), ")")
		fields := strings.Fields(clause)
		if len(fields) == 2 && fields[0] == "=" {
			version = fields[1]
		}
	}
	return types.ProvidesEntry{Name: name, Version: version}
}
