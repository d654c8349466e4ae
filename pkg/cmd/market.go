package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c9s/bitflyer/pkg/cmd/cmdutil"
)

func init() {
	RootCmd.AddCommand(marketsCmd)
	RootCmd.AddCommand(boardCmd)
	RootCmd.AddCommand(positionsCmd)
}

var marketsCmd = &cobra.Command{
	Use:          "markets",
	Short:        "List the markets, no credentials needed",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := cmdutil.NewExchange(userConfig, false)
		if err != nil {
			return err
		}

		markets, err := ex.QueryMarkets(context.Background())
		if err != nil {
			return err
		}

		for _, m := range markets {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-10s %s\n", m.ProductCode, m.MarketType, m.Alias)
		}

		return nil
	},
}

// go run ./cmd/bitflyer board --product BTCJPY-PERP
var boardCmd = &cobra.Command{
	Use:          "board [--product PRODUCT]",
	Short:        "Show the mid price of the board",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		price, err := ex.QueryMidPrice(context.Background(), productCode())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%f\n", price)
		return nil
	},
}

var positionsCmd = &cobra.Command{
	Use:          "positions [--product PRODUCT]",
	Short:        "Show the open positions",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		positions, err := ex.QueryPositions(context.Background(), productCode())
		if err != nil {
			return err
		}

		for _, p := range positions {
			fmt.Fprintln(cmd.OutOrStdout(), p.String())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "NET %f\n", positions.NetSize())
		return nil
	},
}
