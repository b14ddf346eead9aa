package adapters

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"avular-packages/internal/types"
)

// debPackageYAML is the on-disk shape of one package-set YAML file: a
// direct, structured stand-in for the Debian control-file parser named
// out of scope in spec.md §1, used by tests and the demo CLI.
type debPackageYAML struct {
	Name         string   `yaml:"name"`
	Architecture string   `yaml:"architecture"`
	Version      string   `yaml:"version"`
	Essential    bool     `yaml:"essential"`
	Required     bool     `yaml:"required"`
	Provides     []string `yaml:"provides"`
	Depends      []string `yaml:"depends"`
	PreDepends   []string `yaml:"pre_depends"`
	Conflicts    []string `yaml:"conflicts"`
	Breaks       []string `yaml:"breaks"`
	RepoFile     struct {
		Path string `yaml:"path"`
		Size int64  `yaml:"size"`
		Hash string `yaml:"hash"`
	} `yaml:"repo_file"`
}

// DebControlYAMLAdapter implements ports.ControlParserPort by reading
// one YAML file per package set from a directory, named "<set>.yaml".
type DebControlYAMLAdapter struct {
	Dir string
}

func NewDebControlYAMLAdapter(dir string) *DebControlYAMLAdapter {
	return &DebControlYAMLAdapter{Dir: dir}
}

func (a *DebControlYAMLAdapter) LoadPackageSet(ctx context.Context, name string) (types.PackageSet, error) {
	if err := ctx.Err(); err != nil {
		return types.PackageSet{}, err
	}
	path := filepath.Join(a.Dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PackageSet{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package set file not found").
			WithCause(err)
	}
	var raw []debPackageYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return types.PackageSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed package set file").
			WithCause(err)
	}

	set := types.PackageSet{Name: name}
	for _, entry := range raw {
		pkg := types.Package{
			Name:         entry.Name,
			Architecture: entry.Architecture,
			Version:      entry.Version,
			Essential:    entry.Essential,
			Required:     entry.Required,
			Depends:      parseDependencyGroups(entry.Depends),
			PreDepends:   parseDependencyGroups(entry.PreDepends),
			Conflicts:    parseDependencyAtoms(entry.Conflicts),
			Breaks:       parseDependencyAtoms(entry.Breaks),
			RepoFile: types.RepoFileRef{
				Path: entry.RepoFile.Path,
				Size: entry.RepoFile.Size,
				Hash: entry.RepoFile.Hash,
			},
		}
		for _, provide := range entry.Provides {
			pkg.Provides = append(pkg.Provides, parseProvides(provide))
		}
		set.Packages = append(set.Packages, pkg)
	}
	return set, nil
}
