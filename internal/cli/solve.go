package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"avular-packages/internal/adapters"
	"avular-packages/internal/config"
	"avular-packages/internal/core"
	"avular-packages/internal/types"
)

func newSolveCommand() *cobra.Command {
	var packageSets []string
	var require []string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Resolve a set of requirements against one or more package sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flag("config").Value.String())
			if err != nil {
				return err
			}
			universe, err := loadUniverse(cmd.Context(), cfg, packageSets)
			if err != nil {
				return err
			}
			reqs, err := parseRequirements(require)
			if err != nil {
				return err
			}
			problem, err := universe.Problem(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			solution, conflict, err := universe.Solve(cmd.Context(), problem)
			if err != nil {
				return err
			}
			if conflict != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(universe.DisplayConflict(conflict))
			}
			for _, id := range solution.Selected {
				fmt.Fprintln(cmd.OutOrStdout(), universe.DisplaySolvable(id))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&packageSets, "package-set", nil, "Package set names to load (repeatable)")
	cmd.Flags().StringSliceVar(&require, "require", nil, "Explicit requirement, e.g. 'libfoo>=1.2' (repeatable)")
	return cmd
}

// loadUniverse reads every named package set from the configured
// directory and constructs a Universe over them.
func loadUniverse(ctx context.Context, cfg config.ResolverConfig, names []string) (*core.Universe, error) {
	if len(names) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one --package-set is required")
	}
	parser := adapters.NewDebControlYAMLAdapter(cfg.PackageSetDir)
	sets := make([]types.PackageSet, 0, len(names))
	for _, name := range names {
		set, err := parser.LoadPackageSet(ctx, name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	universe, err := core.NewUniverse(ctx, sets, cfg.PreferredArch)
	if err != nil {
		return nil, err
	}
	if cfg.RepoBaseURL != "" {
		universe.WithRepo(adapters.NewDebRepoHTTPAdapter(cfg.RepoBaseURL))
	}
	return universe, nil
}
