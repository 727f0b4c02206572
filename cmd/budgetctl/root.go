package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "budgetctl",
		Short:        "Finanzas budget tooling",
		Long:         "Render dashboards from saved budget documents, format amounts and mint identity tokens for the API.",
		SilenceUsage: true,
	}

	root.AddCommand(newDashboardCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newTokenCmd())
	return root
}
