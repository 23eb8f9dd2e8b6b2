package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scenario_projection/pkg/core/pipeline"
	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/render"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/store"
)

func newComputeCmd() *cobra.Command {
	var (
		format     string
		kinds      []string
		strict     bool
		archiveDir string
	)

	cmd := &cobra.Command{
		Use:   "compute [scenario-file]",
		Short: "Compute the financial reports of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.DecodeFile(args[0])
			if err != nil {
				return err
			}

			var selected []projection.ReportKind
			for _, k := range kinds {
				kind, err := projection.ParseReportKind(k)
				if err != nil {
					return err
				}
				selected = append(selected, kind)
			}

			var repo store.SnapshotRepository
			if archiveDir != "" {
				repo = store.NewSnapshotArchive(nil, archiveDir)
			}
			p := pipeline.NewReportPipeline(projection.NewEngine(zap.L()), repo, nil, zap.L())
			p.SetValidationConfig(pipeline.ValidationConfig{EnableStrictValidation: strict})

			var res *pipeline.Result
			if repo != nil && len(selected) == 0 {
				res, err = p.Archive(cmd.Context(), s)
			} else {
				res, err = p.Run(cmd.Context(), s, selected...)
			}
			if err != nil {
				return err
			}
			if res.Snapshot != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "archived snapshot %s\n", res.Snapshot.ID)
			}
			return writeReports(cmd, format, s, res)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, markdown or html")
	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "Reports to compute (profitAndLoss, balanceSheet, cashflow); default all")
	cmd.Flags().BoolVar(&strict, "strict", true, "Refuse scenarios with validation errors")
	cmd.Flags().StringVar(&archiveDir, "archive", "", "Archive the computed reports as a snapshot in this directory")
	return cmd
}

func writeReports(cmd *cobra.Command, format string, s scenario.Scenario, res *pipeline.Result) error {
	opts := render.Options{Title: s.Title, Currency: s.Parameters.Currency}
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "markdown", "md":
		printf(cmd, "%s", render.Markdown(res.Reports, opts))
		return nil
	case "html":
		html, err := render.HTML(res.Reports, opts)
		if err != nil {
			return err
		}
		printf(cmd, "%s", html)
		return nil
	}
	return fmt.Errorf("unknown format %q (valid: json, markdown, html)", format)
}
