package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scenelink/internal/pipeline"
	"scenelink/internal/report"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <scene-url>",
		Short: "Extract candidate identifiers from a scene and persist the metadata table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			records, err := pipeline.Extract(cmd.Context(), sess, args[0])
			if err != nil {
				return err
			}
			report.New(os.Stdout).Records(records)
			return nil
		},
	}
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <scene-url>",
		Short: "Match extracted identifiers against the registry without touching the scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			result, err := pipeline.Run(cmd.Context(), sess, pipeline.RunOptions{
				SceneURL:   args[0],
				SkipEnrich: true,
			})
			if err != nil {
				return err
			}

			reporter := report.New(os.Stdout)
			reporter.MatchSummary(result.Outcome)
			reporter.UnmatchedSummary(result.Outcome)
			return nil
		},
	}
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	cmd := &cobra.Command{
		Use:   "enrich <scene-url>",
		Short: "Apply the stored match table to a scene and export it",
		Long: "Enrich joins the persisted extraction and match tables from a previous " +
			"resolve run and writes the matched identifiers onto the scene.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			summary, err := pipeline.EnrichFromTables(cmd.Context(), sess, args[0], outputFlag)
			if err != nil {
				return err
			}
			output := outputFlag
			if output == "" {
				output = args[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enriched scene saved to %s (%d nodes enriched, %d skipped)\n",
				output, summary.Enriched, summary.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output scene URL (defaults to the input)")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	cmd := &cobra.Command{
		Use:   "run <scene-url>",
		Short: "Run the full pipeline: extract, resolve, and enrich",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			result, err := pipeline.Run(cmd.Context(), sess, pipeline.RunOptions{
				SceneURL:  args[0],
				OutputURL: outputFlag,
			})
			if err != nil {
				return err
			}

			reporter := report.New(os.Stdout)
			reporter.MatchSummary(result.Outcome)
			reporter.UnmatchedSummary(result.Outcome)
			output := outputFlag
			if output == "" {
				output = args[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enriched scene saved to %s (%d nodes enriched, %d skipped)\n",
				output, result.Summary.Enriched, result.Summary.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output scene URL (defaults to the input)")
	return cmd
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var enrichedOnly bool
	cmd := &cobra.Command{
		Use:   "inspect <scene-url>",
		Short: "Print the qualifying nodes of a scene with their attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			doc, err := sess.Scenes().Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			report.New(os.Stdout).InspectScene(doc, cfg.Matching.TypeFilter, cfg.Matching.AttributeName, enrichedOnly)
			return nil
		},
	}
	cmd.Flags().BoolVar(&enrichedOnly, "enriched-only", false, "Only show nodes carrying the enrichment attribute")
	return cmd
}

func newContextualizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "contextualize",
		Short: "Persist the registry's contextualization job results to the table store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			count, err := pipeline.Contextualize(cmd.Context(), sess)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d contextualization pairs to %s\n", count, pipeline.ContextTable)
			return nil
		},
	}
}
