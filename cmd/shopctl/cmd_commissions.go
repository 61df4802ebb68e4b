package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bingo/shop-console/internal/core/service"
)

// commissionsCmd groups the commission commands of one shop
var commissionsCmd = &cobra.Command{
	Use:   "commissions",
	Short: "Inspect and settle shop commissions",
}

var commissionsListCmd = &cobra.Command{
	Use:   "list <shop_id>",
	Short: "List the weekly commissions of a shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommissionsList,
}

var commissionsPayCmd = &cobra.Command{
	Use:   "pay <shop_id> <week_id>",
	Short: "Mark a week as paid",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommissionsPay,
}

var commissionsLedgerCmd = &cobra.Command{
	Use:   "ledger <shop_id>",
	Short: "Show the per-round commission ledger of a shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommissionsLedger,
}

func init() {
	commissionsCmd.AddCommand(commissionsListCmd, commissionsPayCmd, commissionsLedgerCmd)
}

func runCommissionsList(cmd *cobra.Command, args []string) error {
	ws, err := openProtected(cmd.Context())
	if err != nil {
		return err
	}
	if err := ws.Shops.SelectShop(orBackground(cmd.Context()), args[0]); err != nil {
		return viewError(ws.Commissions.Snapshot().Error, err)
	}
	writeCommissions(cmd.OutOrStdout(), ws.Commissions.Snapshot())
	return nil
}

func runCommissionsPay(cmd *cobra.Command, args []string) error {
	ws, err := openProtected(cmd.Context())
	if err != nil {
		return err
	}
	ctx := orBackground(cmd.Context())

	// The table is loaded first so a pay follows the same path as in the console.
	if err := ws.Shops.SelectShop(ctx, args[0]); err != nil {
		return viewError(ws.Commissions.Snapshot().Error, err)
	}
	if err := ws.Commissions.MarkPaid(ctx, args[1]); err != nil {
		return viewError(ws.Commissions.Snapshot().Error, err)
	}

	state := ws.Commissions.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, state.Success)
	writeCommissions(out, state)
	return nil
}

func runCommissionsLedger(cmd *cobra.Command, args []string) error {
	ws, err := openProtected(cmd.Context())
	if err != nil {
		return err
	}
	entries, err := ws.Commissions.Ledger(orBackground(cmd.Context()), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No commissions.")
		return nil
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cfg, err := settings(cmd.Context())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tAMOUNT")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", entries[k].RoundID, service.FormatAmount(cfg.CurrencyPrefix, entries[k].Amount))
	}
	return tw.Flush()
}

func writeCommissions(out io.Writer, state service.CommissionState) {
	if len(state.Rows) == 0 {
		fmt.Fprintln(out, "No commissions.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK ID\tWEEK\tCOMMISSION\tPAYMENT\tSTATUS")
	for _, r := range state.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.WeekID, r.Week, r.TotalCommission, r.TotalPayment, r.Status)
	}
	tw.Flush()
}
