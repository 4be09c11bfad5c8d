package main

import (
	"fmt"
	"os"

	"github.com/jonathan/novelty-score/internal/observability"
	"github.com/jonathan/novelty-score/internal/validation"
	"github.com/spf13/cobra"
)

var checkApplicationCmd = &cobra.Command{
	Use:   "check-application",
	Short: "Score an application's extracted text",
	Long:  "Score the extracted text of a numbered application. The service stores the application before comparing, so it becomes part of the corpus.",
	RunE:  runCheckApplication,
}

var (
	appNumber   string
	appText     string
	appTextFile string
)

func init() {
	checkApplicationCmd.Flags().StringVarP(&appNumber, "application-number", "n", "", "Application number")
	checkApplicationCmd.Flags().StringVarP(&appText, "text", "t", "", "Extracted application text")
	checkApplicationCmd.Flags().StringVar(&appTextFile, "text-file", "", "Path to a plain text file with the extracted text")

	rootCmd.AddCommand(checkApplicationCmd)
}

func runCheckApplication(cmd *cobra.Command, _ []string) error {
	if appText != "" && appTextFile != "" {
		return fmt.Errorf("--text and --text-file cannot be used together")
	}

	text := appText
	if appTextFile != "" {
		content, err := os.ReadFile(appTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	}

	if err := validation.ValidateApplication(appNumber, text); err != nil {
		return err
	}

	c, _, err := newClient()
	if err != nil {
		return err
	}

	result, err := c.CheckApplication(cmd.Context(), appNumber, text)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintApplicationResult(result)
	return nil
}
