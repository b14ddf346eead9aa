package cli

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/core"
)

var requirementOps = []string{">=", "<=", "<<", ">>", "="}

// parseRequirements parses "name[:arch]<op><version>" (e.g. "libfoo>=1.2",
// op one of >=, <=, <<, >>, =) or bare "name" strings into
// core.Requirement values. A parenthesized "(op version)" clause is not
// recognized.
func parseRequirements(raw []string) ([]core.Requirement, error) {
	out := make([]core.Requirement, 0, len(raw))
	for _, entry := range raw {
		req, err := parseRequirement(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func parseRequirement(raw string) (core.Requirement, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return core.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty requirement")
	}
	name := s
	op := ""
	version := ""
	for _, token := range requirementOps {
		if i := strings.Index(s, token); i >= 0 {
			name = strings.TrimSpace(s[:i])
			version = strings.TrimSpace(s[i+len(token):])
			op = token
			break
		}
	}
	arch := ""
	if i := strings.Index(name, ":"); i >= 0 {
		arch = strings.TrimSpace(name[i+1:])
		name = strings.TrimSpace(name[:i])
	}
	if name == "" {
		return core.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirement: %s", raw))
	}
	return core.Requirement{Name: name, Arch: arch, Op: op, Version: version}, nil
}
