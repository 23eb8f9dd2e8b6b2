package main

import (
	"errors"

	"github.com/spf13/cobra"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/validate"
)

var errInvalidScenario = errors.New("scenario has validation errors")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Check a scenario for problems without computing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.DecodeFile(args[0])
			if err != nil {
				return err
			}
			issues := validate.Scenario(s)
			if len(issues) == 0 {
				printf(cmd, "ok\n")
				return nil
			}
			for _, i := range issues {
				printf(cmd, "%-7s %s: %s\n", i.Severity, i.Field, i.Message)
			}
			if validate.HasErrors(issues) {
				return errInvalidScenario
			}
			return nil
		},
	}
}
