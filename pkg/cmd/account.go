package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c9s/bitflyer/pkg/cmd/cmdutil"
)

func init() {
	balanceCmd.Flags().Bool("all", false, "show every currency instead of the first balance entry")
	RootCmd.AddCommand(balanceCmd)
	RootCmd.AddCommand(collateralCmd)
	RootCmd.AddCommand(permissionsCmd)
}

// go run ./cmd/bitflyer balance --all
var balanceCmd = &cobra.Command{
	Use:          "balance [--all]",
	Short:        "Show account balances",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return err
		}

		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		if !all {
			amount, err := ex.QueryBalance(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%f\n", amount)
			return nil
		}

		balances, err := ex.QueryBalances(ctx)
		if err != nil {
			return err
		}

		for _, b := range balances {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s amount: %f available: %f\n", b.CurrencyCode, b.Amount, b.Available)
		}

		return nil
	},
}

var collateralCmd = &cobra.Command{
	Use:          "collateral",
	Short:        "Show the collateral including the open position pnl",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		collateral, err := ex.QueryCollateral(context.Background())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%f\n", collateral)
		return nil
	},
}

var permissionsCmd = &cobra.Command{
	Use:          "permissions",
	Short:        "List the endpoints the api key is allowed to call",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		permissions, err := ex.QueryPermissions(context.Background())
		if err != nil {
			return err
		}

		for _, p := range permissions {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}

		return nil
	},
}
