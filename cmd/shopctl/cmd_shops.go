package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/service"
)

var (
	shopID       string
	shopUsername string
	shopPassword string
	shopBalance  string
	shopBilling  string
	deleteYes    bool
)

// shopsCmd groups the shop administration commands
var shopsCmd = &cobra.Command{
	Use:   "shops",
	Short: "List, create, update and delete shops",
}

var shopsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every shop",
	Args:  cobra.NoArgs,
	RunE:  runShopsList,
}

var shopsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a shop",
	Args:  cobra.NoArgs,
	RunE:  runShopsCreate,
}

var shopsUpdateCmd = &cobra.Command{
	Use:   "update <shop_id>",
	Short: "Update a shop",
	Long: `Update a shop. Only the flags you pass are sent. The username is
always sent and defaults to the current one.`,
	Args: cobra.ExactArgs(1),
	RunE: runShopsUpdate,
}

var shopsDeleteCmd = &cobra.Command{
	Use:   "delete <shop_id>",
	Short: "Delete a shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopsDelete,
}

func init() {
	for _, c := range []*cobra.Command{shopsCreateCmd, shopsUpdateCmd} {
		c.Flags().StringVar(&shopUsername, "username", "", "shop username")
		c.Flags().StringVar(&shopPassword, "password", "", "shop password")
		c.Flags().StringVar(&shopBalance, "balance", "", "shop balance")
		c.Flags().StringVar(&shopBilling, "billing-type", "", "prepaid or postpaid")
	}
	shopsCreateCmd.Flags().StringVar(&shopID, "id", "", "shop id")
	shopsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	shopsCmd.AddCommand(shopsListCmd, shopsCreateCmd, shopsUpdateCmd, shopsDeleteCmd)
}

func runShopsList(cmd *cobra.Command, args []string) error {
	ws, err := openProtected(cmd.Context())
	if err != nil {
		return err
	}
	if err := ws.Shops.Refresh(orBackground(cmd.Context())); err != nil {
		return viewError(ws.Shops.Snapshot().Error, err)
	}

	state := ws.Shops.Snapshot()
	out := cmd.OutOrStdout()
	if len(state.Shops) == 0 {
		fmt.Fprintln(out, "No shops.")
		return nil
	}
	writeShops(out, state.Shops)
	return nil
}

func writeShops(out io.Writer, shops []domain.Shop) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SHOP ID\tUSERNAME\tBALANCE\tBILLING")
	for _, s := range shops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.ShopID, s.Username, strconv.FormatFloat(s.Balance, 'f', -1, 64), s.BillingType)
	}
	tw.Flush()
}

func runShopsCreate(cmd *cobra.Command, args []string) error {
	ws, err := openProtected(cmd.Context())
	if err != nil {
		return err
	}

	billing := shopBilling
	if billing == "" {
		billing = string(domain.BillingPrepaid)
	}
	ws.Shops.SetForm(domain.ShopForm{
		ShopID:      shopID,
		Username:    shopUsername,
		Password:    shopPassword,
		Balance:     shopBalance,
		BillingType: billing,
	})
	return submitShopForm(cmd, ws)
}

func runShopsUpdate(cmd *cobra.Command, args []string) error {
	ws, err := openProtected(cmd.Context())
	if err != nil {
		return err
	}
	ctx := orBackground(cmd.Context())

	if err := ws.Shops.Refresh(ctx); err != nil {
		return viewError(ws.Shops.Snapshot().Error, err)
	}
	if err := ws.Shops.Edit(args[0]); err != nil {
		return fmt.Errorf("shop %q: %w", args[0], err)
	}

	// Blank optional fields are left out of the update payload.
	form := ws.Shops.Snapshot().Form
	form.Balance, form.BillingType = "", ""
	flags := cmd.Flags()
	if flags.Changed("username") {
		form.Username = shopUsername
	}
	if flags.Changed("password") {
		form.Password = shopPassword
	}
	if flags.Changed("balance") {
		form.Balance = shopBalance
	}
	if flags.Changed("billing-type") {
		form.BillingType = shopBilling
	}
	ws.Shops.SetForm(form)
	return submitShopForm(cmd, ws)
}

func submitShopForm(cmd *cobra.Command, ws *service.Workspace) error {
	err := ws.Shops.SubmitForm(orBackground(cmd.Context()))
	state := ws.Shops.Snapshot()
	if err != nil {
		return viewError(state.Error, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), state.Success)
	return nil
}

func runShopsDelete(cmd *cobra.Command, args []string) error {
	ws, err := openProtected(cmd.Context())
	if err != nil {
		return err
	}
	id := args[0]
	out := cmd.OutOrStdout()

	confirmed := deleteYes
	if !confirmed {
		answer, err := prompt(bufio.NewReader(cmd.InOrStdin()), out,
			fmt.Sprintf("Delete shop %s? This cannot be undone. [y/N]: ", id))
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		confirmed = isYes(answer)
	}
	if !confirmed {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	if err := ws.Shops.Delete(orBackground(cmd.Context()), id, true); err != nil {
		return viewError(ws.Shops.Snapshot().Error, err)
	}
	fmt.Fprintln(out, ws.Shops.Snapshot().Success)
	return nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

// viewError prefers the operator-facing message the view settled on.
func viewError(msg string, err error) error {
	if msg == "" {
		return err
	}
	return errors.New(msg)
}
