package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finanzas/internal/budget"
	"finanzas/internal/models"
)

type dashboardOptions struct {
	file   string
	period string
	asJSON bool
}

func newDashboardCmd() *cobra.Command {
	opts := &dashboardOptions{}
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render the dashboard of a saved budget document",
		Long: "Reads a budget document as stored by the API and prints the per-bucket totals.\n" +
			"With --period the amounts come from that period's snapshot.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Budget document (JSON); - reads stdin")
	cmd.Flags().StringVarP(&opts.period, "period", "p", "", "Render a saved snapshot (YYYY-MM)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the dashboard as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runDashboard(out io.Writer, opts *dashboardOptions) error {
	doc, err := readDocument(opts.file)
	if err != nil {
		return err
	}

	state := doc.BudgetState
	if opts.period != "" {
		period, err := models.ParsePeriod(opts.period)
		if err != nil {
			return err
		}
		snap, ok := doc.PeriodSnapshots[period.Key()]
		if !ok {
			return fmt.Errorf("no snapshot saved for %s", period.Key())
		}
		state.Year, state.Month = period.Year, period.Month
		restoreSnapshot(&state, snap)
	}

	dashboard := budget.BuildDashboard(&state)
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard)
	}
	return printDashboard(out, dashboard)
}

func readDocument(path string) (*models.Document, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc, err := models.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func restoreSnapshot(s *models.BudgetState, snap models.PeriodSnapshot) {
	s.SalaryRaw = snap.SalaryRaw
	s.ExpenseAmountsRaw = snap.ExpenseAmountsRaw
	s.InvestmentPesosRaw = snap.InvestmentPesosRaw
	s.InvestmentUsdRaw = snap.InvestmentUsdRaw
	s.ExtraLivingExpenses = snap.ExtraLivingExpenses
	s.ExtraInvestment = snap.ExtraInvestment
	s.ExtraLeisure = snap.ExtraLeisure
}

func printDashboard(out io.Writer, d budget.Dashboard) error {
	fmt.Fprintf(out, "Period %s  Salary %s\n", d.Period, d.SalaryDisplay)
	if !d.Percentages.Valid {
		fmt.Fprintf(out, "Warning: buckets add up to %d%% (%+d)\n", d.Percentages.Total, d.Percentages.Deviation)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BUCKET\tPCT\tTOTAL\tSPENT\tBALANCE\tUSD")
	for _, b := range d.Buckets {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			b.Name, b.Percentage, b.Display.Total, b.Display.Spent, b.Display.Balance, b.Display.SpentUSD)
	}
	return tw.Flush()
}
