package bitflyer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
	"github.com/c9s/bitflyer/pkg/types"
)

const ID = "bitflyer"

var log = logrus.WithFields(logrus.Fields{
	"exchange": ID,
})

// DefaultProductCodes is used when no product code is configured.
var DefaultProductCodes = []types.ProductCode{types.ProductBTCJPYPerp}

type Option func(e *Exchange)

// WithTransport replaces the default HTTP transport, e.g. with a rate limited or retrying one.
func WithTransport(transport bitflyerapi.Transport) Option {
	return func(e *Exchange) {
		e.transport = transport
	}
}

// WithProductCodes restricts the product codes this exchange instance accepts.
func WithProductCodes(codes ...types.ProductCode) Option {
	return func(e *Exchange) {
		e.productCodes = make(map[types.ProductCode]struct{}, len(codes))
		for _, code := range codes {
			e.productCodes[code] = struct{}{}
		}
	}
}

func WithNowFunc(f func() time.Time) Option {
	return func(e *Exchange) {
		e.timeNowFn = f
	}
}

// Exchange places and queries orders on bitflyer lightning.
// It keeps no state between calls; every query goes to the exchange.
type Exchange struct {
	key, secret string

	client       *bitflyerapi.RestClient
	transport    bitflyerapi.Transport
	productCodes map[types.ProductCode]struct{}
	timeNowFn    func() time.Time
}

func New(key, secret string, options ...Option) *Exchange {
	e := &Exchange{
		key:       key,
		secret:    secret,
		timeNowFn: time.Now,
	}

	WithProductCodes(DefaultProductCodes...)(e)

	for _, option := range options {
		option(e)
	}

	if e.transport != nil {
		e.client = bitflyerapi.NewClientWithTransport(e.transport)
	} else {
		e.client = bitflyerapi.NewClient()
	}

	e.client.SetNowFunc(e.timeNowFn)

	if len(key) > 0 && len(secret) > 0 {
		e.client.Auth(key, secret)
	}

	return e
}

// PlaceOrder submits a single order and returns its acceptance id.
func (e *Exchange) PlaceOrder(
	ctx context.Context, code types.ProductCode, order types.ChildOrder, setting types.OrderSetting,
) (string, error) {
	params, err := e.encodeChildOrder(code, order, setting)
	if err != nil {
		return "", err
	}

	acceptance, err := e.client.NewSendChildOrderRequest().Parameters(params).Do(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "failed to place order %v", order)
	}

	log.Infof("order accepted: %s %v", acceptance.ChildOrderAcceptanceID, order)
	return acceptance.ChildOrderAcceptanceID, nil
}

// PlaceOrderWithLogic submits a composite order and returns its acceptance id.
func (e *Exchange) PlaceOrderWithLogic(
	ctx context.Context, code types.ProductCode, logic types.OrderWithLogic, setting types.OrderSetting,
) (string, error) {
	params, err := e.encodeParentOrder(code, logic, setting)
	if err != nil {
		return "", err
	}

	acceptance, err := e.client.NewSendParentOrderRequest().Parameters(params).Do(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "failed to place order logic %v", logic)
	}

	log.Infof("parent order accepted: %s %v", acceptance.ParentOrderAcceptanceID, logic)
	return acceptance.ParentOrderAcceptanceID, nil
}

func (e *Exchange) CancelAllOrders(ctx context.Context, code types.ProductCode) error {
	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return err
	}

	return e.client.NewCancelAllChildOrdersRequest().ProductCode(productCode).Do(ctx)
}

// QueryBalance returns the amount of the first entry of the balance list.
func (e *Exchange) QueryBalance(ctx context.Context) (float64, error) {
	balances, err := e.QueryBalances(ctx)
	if err != nil {
		return 0, err
	}

	if len(balances) == 0 {
		return 0, &bitflyerapi.InvalidResponseError{
			Body: []byte("[]"),
			Err:  errors.New("empty balance list"),
		}
	}

	return balances[0].Amount, nil
}

func (e *Exchange) QueryBalances(ctx context.Context) ([]bitflyerapi.Balance, error) {
	return e.client.NewGetBalanceRequest().Do(ctx)
}

// QueryCollateral returns the collateral plus the open position pnl.
func (e *Exchange) QueryCollateral(ctx context.Context) (float64, error) {
	collateral, err := e.client.NewGetCollateralRequest().Do(ctx)
	if err != nil {
		return 0, err
	}

	return collateral.Equity(), nil
}

func (e *Exchange) QueryPositions(ctx context.Context, code types.ProductCode) (types.PositionSlice, error) {
	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return nil, err
	}

	positions, err := e.client.NewGetPositionsRequest().ProductCode(productCode).Do(ctx)
	if err != nil {
		return nil, err
	}

	var result types.PositionSlice
	for _, position := range positions {
		p, err := toGlobalPosition(position)
		if err != nil {
			return nil, err
		}

		result = append(result, p)
	}

	return result, nil
}

func (e *Exchange) QueryMidPrice(ctx context.Context, code types.ProductCode) (float64, error) {
	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return 0, err
	}

	board, err := e.client.NewGetBoardRequest().ProductCode(productCode).Do(ctx)
	if err != nil {
		return 0, err
	}

	return board.MidPrice, nil
}

// QueryActiveOrderPrices returns the prices of the active parent orders.
// Orders without a price are left out.
func (e *Exchange) QueryActiveOrderPrices(ctx context.Context, code types.ProductCode) ([]float64, error) {
	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return nil, err
	}

	return e.client.NewGetParentOrdersRequest().ProductCode(productCode).DoPrices(ctx)
}

// QueryChildOrders lists the child orders, all states when state is empty.
func (e *Exchange) QueryChildOrders(
	ctx context.Context, code types.ProductCode, state bitflyerapi.OrderState,
) ([]bitflyerapi.ChildOrder, error) {
	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return nil, err
	}

	req := e.client.NewGetChildOrdersRequest().ProductCode(productCode)
	if state != "" {
		req.State(state)
	}

	return req.Do(ctx)
}

func (e *Exchange) QueryMarkets(ctx context.Context) ([]bitflyerapi.Market, error) {
	return e.client.NewGetMarketsRequest().Do(ctx)
}

func (e *Exchange) QueryPermissions(ctx context.Context) ([]string, error) {
	return e.client.NewGetPermissionsRequest().Do(ctx)
}
