package main

import (
	"strings"

	"github.com/spf13/cobra"

	"scenario_projection/pkg/core/period"
	"scenario_projection/pkg/core/scenario"
)

func newPeriodsCmd() *cobra.Command {
	var withInitial bool

	cmd := &cobra.Command{
		Use:   "periods [scenario-file]",
		Short: "List the period labels of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.DecodeFile(args[0])
			if err != nil {
				return err
			}
			get := period.GetPeriods
			if withInitial {
				get = period.GetPeriodsWithInitial
			}
			periods, err := get(s.Parameters)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", strings.Join(periods, " "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withInitial, "initial", false, "Include the initial (opening balance) period")
	return cmd
}
