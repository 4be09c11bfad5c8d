package main

import (
	"errors"

	"github.com/jonathan/novelty-score/internal/ingest"
	"github.com/jonathan/novelty-score/internal/observability"
	"github.com/jonathan/novelty-score/internal/types"
	"github.com/jonathan/novelty-score/internal/validation"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add proposal documents to the comparison corpus",
	Long:  "Upload one or more PDF/DOCX proposals to the scoring service. The service extracts the text, embeds it and stores it for future novelty checks.",
	RunE:  runIngest,
}

var (
	ingestFiles []string
	ingestTitle string
)

func init() {
	ingestCmd.Flags().StringArrayVarP(&ingestFiles, "file", "f", nil, "Path to a PDF or DOCX document (repeatable)")
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "Proposal title (single document only; defaults to the filename)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	files := make([]*types.FileInput, 0, len(ingestFiles))
	for _, path := range ingestFiles {
		file, err := types.LoadFileInput(path)
		if err != nil {
			return err
		}
		files = append(files, file)
	}

	c, cfg, err := newClient()
	if err != nil {
		return err
	}

	workflow := ingest.New(c, cfg.IngestOptions())
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if len(files) == 1 {
		outcome, err := workflow.One(cmd.Context(), files[0], ingestTitle)
		var vErr *validation.ValidationError
		if errors.As(err, &vErr) {
			return err
		}
		printer.PrintIngestOutcomes([]ingest.Outcome{outcome})
		return err
	}

	outcomes, err := workflow.Many(cmd.Context(), files, ingestTitle)
	printer.PrintIngestOutcomes(outcomes)
	return err
}
