package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finanzas/internal/money"
)

func newFormatCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "format <amount>",
		Short: "Normalize a typed amount and print its display form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := money.ParseCurrency(code)
			if err != nil {
				return err
			}
			raw := money.Digits(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "raw:     %s\n", raw)
			fmt.Fprintf(out, "amount:  %s\n", money.Normalize(raw).String())
			fmt.Fprintf(out, "display: %s\n", money.FormatDisplay(raw, c))
			return nil
		},
	}

	cmd.Flags().StringVarP(&code, "currency", "c", string(money.ARS), "Display currency (ARS or USD)")
	return cmd
}
