package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/validate"
)

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List, add or remove the categories of a scenario",
	}
	cmd.AddCommand(newCategoriesListCmd(), newCategoriesAddCmd(), newCategoriesRemoveCmd())
	return cmd
}

func newCategoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [scenario-file]",
		Short: "List the active categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.DecodeFile(args[0])
			if err != nil {
				return err
			}
			for _, c := range s.ActiveCategories() {
				printf(cmd, "%s\t%s\t%s\t%s\n", c.ID, c.Section, c.Group, c.Label)
			}
			return nil
		},
	}
}

func newCategoriesAddCmd() *cobra.Command {
	var (
		section   string
		group     string
		label     string
		priceType string
		value     string
	)
	cmd := &cobra.Command{
		Use:   "add [scenario-file]",
		Short: "Add a custom category and print the edited scenario as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.DecodeFile(args[0])
			if err != nil {
				return err
			}
			c := scenario.NewCustomCategory(scenario.Section(section), group, label, scenario.Price{
				Type:  scenario.PriceType(priceType),
				Value: scenario.Text(value),
			})
			edited := s.WithCategory(c)
			if issues := validate.Scenario(edited); validate.HasErrors(issues) {
				for _, i := range issues {
					printf(cmd, "%-7s %s: %s\n", i.Severity, i.Field, i.Message)
				}
				return errInvalidScenario
			}
			return writeScenarioJSON(cmd, edited)
		},
	}
	cmd.Flags().StringVar(&section, "section", string(scenario.SectionCosts), "Section (costs, revenues, investments)")
	cmd.Flags().StringVar(&group, "group", scenario.GroupIndirect, "Group within the section")
	cmd.Flags().StringVar(&label, "label", "", "Display label")
	cmd.Flags().StringVar(&priceType, "price-type", string(scenario.PriceConstant), "Price type")
	cmd.Flags().StringVar(&value, "value", "", "Price value, e.g. 1.5k")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

func newCategoriesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [scenario-file] [category-id]",
		Short: "Remove a category and print the edited scenario as JSON",
		Long: `Built-in categories are flagged as deleted so their canvas slot survives;
custom categories are dropped from the document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.DecodeFile(args[0])
			if err != nil {
				return err
			}
			edited, err := s.WithoutCategory(args[1])
			if err != nil {
				return err
			}
			return writeScenarioJSON(cmd, edited)
		},
	}
}

func writeScenarioJSON(cmd *cobra.Command, s scenario.Scenario) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return nil
}
