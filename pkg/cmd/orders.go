package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c9s/bitflyer/pkg/cmd/cmdutil"
	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
)

func init() {
	ordersCmd.Flags().String("state", "ACTIVE", "child order state, empty for all states")
	parentOrdersCmd.Flags().Bool("prices", false, "only print the prices of the active parent orders")
	RootCmd.AddCommand(ordersCmd)
	RootCmd.AddCommand(parentOrdersCmd)
}

// go run ./cmd/bitflyer orders --state COMPLETED
var ordersCmd = &cobra.Command{
	Use:          "orders [--state STATE]",
	Short:        "List child orders",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := cmd.Flags().GetString("state")
		if err != nil {
			return err
		}

		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		orders, err := ex.QueryChildOrders(context.Background(), productCode(), bitflyerapi.OrderState(strings.ToUpper(state)))
		if err != nil {
			return err
		}

		for _, o := range orders {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %f @ %f executed %f\n",
				o.ChildOrderAcceptanceID, o.ChildOrderState, o.ChildOrderType, o.Side, o.Size, o.Price, o.ExecutedSize)
		}

		return nil
	},
}

var parentOrdersCmd = &cobra.Command{
	Use:          "parent-orders [--prices]",
	Short:        "List the active parent orders",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		pricesOnly, err := cmd.Flags().GetBool("prices")
		if err != nil {
			return err
		}

		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		if pricesOnly {
			prices, err := ex.QueryActiveOrderPrices(ctx, productCode())
			if err != nil {
				return err
			}

			for _, p := range prices {
				fmt.Fprintf(cmd.OutOrStdout(), "%f\n", p)
			}

			return nil
		}

		orders, err := ex.QueryParentOrders(ctx, productCode())
		if err != nil {
			return err
		}

		for _, o := range orders {
			if o.Err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s error: %v\n", o.ParentOrderID, o.ParentOrderType, o.Err)
				continue
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", o.ParentOrderID, o.Logic)
		}

		return nil
	},
}
