package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/c9s/bitflyer/pkg/cmd/cmdutil"
	"github.com/c9s/bitflyer/pkg/types"
)

func init() {
	submitCmd.Flags().String("side", "", "BUY or SELL")
	submitCmd.Flags().String("type", "limit", "market, limit or stop")
	submitCmd.Flags().Float64("price", 0, "limit price")
	submitCmd.Flags().Float64("trigger-price", 0, "stop trigger price")
	submitCmd.Flags().Float64("size", 0, "order size")
	submitCmd.Flags().Int("expire", types.DefaultExpireMinutes, "minutes until the order expires")
	submitCmd.Flags().String("time-in-force", string(types.TimeInForceGTC), "GTC, IOC or FOK")
	submitCmd.Flags().Bool("parent", false, "send a stop order through the parent order endpoint")
	RootCmd.AddCommand(submitCmd)
	RootCmd.AddCommand(cancelAllCmd)
}

type orderFlags struct {
	side         string
	orderType    string
	price        float64
	triggerPrice float64
	size         float64
}

func (f orderFlags) ChildOrder() (types.ChildOrder, error) {
	side, err := types.StrToSideType(f.side)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(f.orderType) {
	case "market":
		return types.NewMarketOrder(side, f.size)
	case "limit":
		return types.NewLimitOrder(side, f.price, f.size)
	case "stop":
		return types.NewStopOrder(side, f.triggerPrice, f.size)
	}

	return nil, errors.Errorf("unsupported order type %q", f.orderType)
}

// go run ./cmd/bitflyer submit --side BUY --type limit --price 500000 --size 0.01
var submitCmd = &cobra.Command{
	Use:          "submit --side SIDE --type TYPE --size SIZE [--price PRICE] [--trigger-price PRICE]",
	Short:        "Submit an order",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		var f orderFlags
		var err error
		if f.side, err = flags.GetString("side"); err != nil {
			return err
		}
		if f.orderType, err = flags.GetString("type"); err != nil {
			return err
		}
		if f.price, err = flags.GetFloat64("price"); err != nil {
			return err
		}
		if f.triggerPrice, err = flags.GetFloat64("trigger-price"); err != nil {
			return err
		}
		if f.size, err = flags.GetFloat64("size"); err != nil {
			return err
		}

		expire, err := flags.GetInt("expire")
		if err != nil {
			return err
		}

		tif, err := flags.GetString("time-in-force")
		if err != nil {
			return err
		}

		parent, err := flags.GetBool("parent")
		if err != nil {
			return err
		}

		setting, err := types.NewOrderSetting(expire, types.TimeInForce(strings.ToUpper(tif)))
		if err != nil {
			return err
		}

		order, err := f.ChildOrder()
		if err != nil {
			return err
		}

		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		ctx := context.Background()

		var id string
		if stop, ok := order.(types.StopOrder); ok && parent {
			logic, err := types.NewStopLogic(stop.Side, stop.TriggerPrice, stop.Size)
			if err != nil {
				return err
			}

			id, err = ex.PlaceOrderWithLogic(ctx, productCode(), logic, setting)
			if err != nil {
				return err
			}
		} else {
			id, err = ex.PlaceOrder(ctx, productCode(), order, setting)
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var cancelAllCmd = &cobra.Command{
	Use:          "cancel-all [--product PRODUCT]",
	Short:        "Cancel every child order of the product",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := cmdutil.NewExchange(userConfig, true)
		if err != nil {
			return err
		}

		return ex.CancelAllOrders(context.Background(), productCode())
	},
}
