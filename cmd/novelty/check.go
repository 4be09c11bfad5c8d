package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/novelty-score/internal/interpret"
	"github.com/jonathan/novelty-score/internal/novelty"
	"github.com/jonathan/novelty-score/internal/observability"
	"github.com/jonathan/novelty-score/internal/types"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Score a proposal's novelty",
	Long:  "Score a proposal given as text or as a PDF/DOCX document against every proposal stored by the scoring service.",
	RunE:  runCheck,
}

var (
	checkText     string
	checkTextFile string
	checkFile     string
	checkJSON     bool
	checkLegend   bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkText, "text", "t", "", "Proposal text")
	checkCmd.Flags().StringVar(&checkTextFile, "text-file", "", "Path to a plain text file with the proposal text")
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Path to a PDF or DOCX proposal document")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the raw result as JSON")
	checkCmd.Flags().BoolVar(&checkLegend, "legend", true, "Print the score legend under the result")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	input, err := checkInput()
	if err != nil {
		return err
	}

	c, _, err := newClient()
	if err != nil {
		return err
	}

	controller := novelty.NewController(c)
	defer controller.Close()

	if err := controller.SetInput(input); err != nil {
		return err
	}
	state, err := controller.Submit(cmd.Context())
	if err != nil {
		return err
	}

	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state.Result)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintResult(interpret.Present(state.Result))
	if checkLegend {
		printer.PrintLegend()
	}
	return nil
}

// checkInput builds the candidate from exactly one of --text, --text-file and --file.
func checkInput() (types.CandidateInput, error) {
	set := 0
	for _, v := range []string{checkText, checkTextFile, checkFile} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of --text, --text-file or --file is required")
	}

	switch {
	case checkFile != "":
		return types.LoadFileInput(checkFile)
	case checkTextFile != "":
		content, err := os.ReadFile(checkTextFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		return types.NewTextInput(string(content)), nil
	default:
		return types.NewTextInput(checkText), nil
	}
}
