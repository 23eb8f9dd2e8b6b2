package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"scenario_projection/pkg/core/units"
)

func newValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Parse, format and rescale user-typed numbers",
	}

	var percentage bool
	parse := &cobra.Command{
		Use:   "parse [text]",
		Short: `Parse "23k", "-1.5M" or "5%"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parseFn := units.ParseValue
			if percentage {
				parseFn = units.ParsePercentage
			}
			v, err := parseFn(args[0])
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", strconv.FormatFloat(v, 'f', -1, 64))
			return nil
		},
	}
	parse.Flags().BoolVarP(&percentage, "percentage", "p", false, "Parse a percentage instead of a value")

	format := &cobra.Command{
		Use:   "format [number]",
		Short: "Format a number with its unit (15000 -> 15k)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", units.FormatValueWithUnit(v))
			return nil
		},
	}

	var (
		magnitude float64
		inverse   bool
	)
	normalize := &cobra.Command{
		Use:   "normalize [text]",
		Short: "Multiply (or with --inverse divide) typed text by a magnitude",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rescale := units.Normalize
			if inverse {
				rescale = units.Denormalize
			}
			out, err := rescale(args[0], magnitude)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", out)
			return nil
		},
	}
	normalize.Flags().Float64VarP(&magnitude, "magnitude", "m", 1000, "Magnitude to apply")
	normalize.Flags().BoolVar(&inverse, "inverse", false, "Divide instead of multiply")

	cmd.AddCommand(parse, format, normalize)
	return cmd
}
