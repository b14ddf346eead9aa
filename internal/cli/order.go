package cli

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"avular-packages/internal/config"
)

func newOrderCommand() *cobra.Command {
	var packageSets []string
	var require []string

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Resolve requirements and print a reverse-topological install order",
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
			for _, id := range universe.SortSolution(cmd.Context(), solution) {
				fmt.Fprintln(cmd.OutOrStdout(), universe.DisplaySolvable(id))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&packageSets, "package-set", nil, "Package set names to load (repeatable)")
	cmd.Flags().StringSliceVar(&require, "require", nil, "Explicit requirement, e.g. 'libfoo>=1.2' (repeatable)")
	return cmd
}
