package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zmalik/job-automator/internal/llm"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported LLM providers and their models",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	catalog := llm.DefaultCatalog()
	for _, provider := range llm.Providers() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (credential: %s)\n", provider, provider.CredentialVar())
		for _, tier := range catalog.Tiers(provider) {
			model, err := catalog.Model(provider, tier)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %-9s %s\n", tier+":", model)
		}
	}
	return nil
}
