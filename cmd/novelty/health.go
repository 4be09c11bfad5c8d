package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the scoring service is reachable",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}

	status, err := c.Health(cmd.Context())
	if err != nil {
		return err
	}

	service := status.Service
	if service == "" {
		service = c.BaseURL()
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", service, status.Status)
	return err
}
