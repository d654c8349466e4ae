package bitflyer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
	"github.com/c9s/bitflyer/pkg/types"
)

type reply struct {
	statusCode int
	body       string
	err        error
}

// routeTransport answers by path, query string included.
type routeTransport struct {
	routes map[string]reply
	calls  []string
	bodies [][]byte
}

func (r *routeTransport) Send(_ context.Context, method, path string, _ http.Header, body []byte) (int, []byte, error) {
	r.calls = append(r.calls, method+" "+path)
	r.bodies = append(r.bodies, body)

	rep, ok := r.routes[path]
	if !ok {
		return 0, nil, errors.New("no route for " + path)
	}

	if rep.err != nil {
		return 0, nil, rep.err
	}

	code := rep.statusCode
	if code == 0 {
		code = http.StatusOK
	}

	return code, []byte(rep.body), nil
}

func newTestExchange(routes map[string]reply) (*Exchange, *routeTransport) {
	transport := &routeTransport{routes: routes}
	ex := New("key", "secret",
		WithTransport(transport),
		WithNowFunc(func() time.Time { return time.Unix(1700000000, 0) }),
	)
	return ex, transport
}

func TestExchange_PlaceOrder(t *testing.T) {
	ex, transport := newTestExchange(map[string]reply{
		"/v1/me/sendchildorder": {body: `{"child_order_acceptance_id":"JRF20150707-050237-639234"}`},
	})

	id, err := ex.PlaceOrder(context.Background(), types.ProductBTCJPYPerp, mustLimit(t, types.SideTypeBuy, 500000, 0.01), types.OrderSetting{
		ExpireMinutes: 1,
		TimeInForce:   types.TimeInForceGTC,
	})
	require.NoError(t, err)
	assert.Equal(t, "JRF20150707-050237-639234", id)

	require.Len(t, transport.bodies, 1)
	assert.Equal(t,
		`{"product_code":"FX_BTC_JPY","child_order_type":"LIMIT","side":"BUY","price":500000,"size":0.01,"minute_to_expire":1,"time_in_force":"GTC"}`,
		string(transport.bodies[0]))
}

func TestExchange_PlaceOrder_InvalidProductCode(t *testing.T) {
	ex, transport := newTestExchange(nil)

	_, err := ex.PlaceOrder(context.Background(), types.ProductETHBTC, mustLimit(t, types.SideTypeBuy, 1, 1), types.DefaultOrderSetting)

	var paramErr *InvalidParameterError
	assert.ErrorAs(t, err, &paramErr)
	assert.Empty(t, transport.calls)
}

func TestExchange_PlaceOrderWithLogic(t *testing.T) {
	ex, transport := newTestExchange(map[string]reply{
		"/v1/me/sendparentorder": {body: `{"parent_order_acceptance_id":"JRF20150925-060559-396699"}`},
	})

	oco, err := types.NewOCO(mustLimit(t, types.SideTypeSell, 32000, 0.1), mustStop(t, types.SideTypeSell, 28000, 0.1))
	require.NoError(t, err)

	id, err := ex.PlaceOrderWithLogic(context.Background(), types.ProductBTCJPYPerp, oco, types.DefaultOrderSetting)
	require.NoError(t, err)
	assert.Equal(t, "JRF20150925-060559-396699", id)
	assert.Equal(t, []string{"POST /v1/me/sendparentorder"}, transport.calls)
	assert.Contains(t, string(transport.bodies[0]), `"order_method":"OCO"`)
}

func TestExchange_PlaceOrder_Rejected(t *testing.T) {
	ex, _ := newTestExchange(map[string]reply{
		"/v1/me/sendchildorder": {statusCode: http.StatusBadRequest, body: `{"status":-205,"error_message":"Margin amount is insufficient for this order."}`},
	})

	_, err := ex.PlaceOrder(context.Background(), types.ProductBTCJPYPerp, mustLimit(t, types.SideTypeBuy, 1, 1), types.DefaultOrderSetting)
	assert.True(t, bitflyerapi.IsErrorResponse(err))
}

func TestExchange_CancelAllOrders(t *testing.T) {
	ex, transport := newTestExchange(map[string]reply{
		"/v1/me/cancelallchildorders": {},
	})

	require.NoError(t, ex.CancelAllOrders(context.Background(), types.ProductBTCJPYPerp))
	assert.Equal(t, `{"product_code":"FX_BTC_JPY"}`, string(transport.bodies[0]))
}

func TestExchange_QueryBalance(t *testing.T) {
	t.Run("first entry", func(t *testing.T) {
		ex, _ := newTestExchange(map[string]reply{
			"/v1/me/getbalance": {body: `[{"currency_code":"JPY","amount":1000.0,"available":900.0}]`},
		})

		amount, err := ex.QueryBalance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1000.0, amount)
	})

	t.Run("empty list", func(t *testing.T) {
		ex, _ := newTestExchange(map[string]reply{
			"/v1/me/getbalance": {body: `[]`},
		})

		_, err := ex.QueryBalance(context.Background())
		assert.True(t, bitflyerapi.IsInvalidResponse(err))
	})

	t.Run("transport failure", func(t *testing.T) {
		ex, _ := newTestExchange(map[string]reply{
			"/v1/me/getbalance": {err: errors.New("i/o timeout")},
		})

		_, err := ex.QueryBalance(context.Background())
		assert.True(t, bitflyerapi.IsTimeout(err))
		assert.Contains(t, err.Error(), "i/o timeout")
	})
}

func TestExchange_QueryCollateral(t *testing.T) {
	ex, _ := newTestExchange(map[string]reply{
		"/v1/me/getcollateral": {body: `{"collateral":100.0,"open_position_pnl":-5.0}`},
	})

	collateral, err := ex.QueryCollateral(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 95.0, collateral)
}

func TestExchange_QueryPositions(t *testing.T) {
	ex, _ := newTestExchange(map[string]reply{
		"/v1/me/getpositions?product_code=FX_BTC_JPY": {body: `[{"product_code":"FX_BTC_JPY","side":"BUY","price":36640,"size":5},{"product_code":"FX_BTC_JPY","side":"SELL","price":36000,"size":2}]`},
	})

	positions, err := ex.QueryPositions(context.Background(), types.ProductBTCJPYPerp)
	require.NoError(t, err)
	assert.Equal(t, types.PositionSlice{
		{Side: types.SideTypeBuy, Size: 5, Price: 36640},
		{Side: types.SideTypeSell, Size: 2, Price: 36000},
	}, positions)
	assert.Equal(t, 3.0, positions.NetSize())
}

func TestExchange_QueryPositions_UnknownSide(t *testing.T) {
	ex, _ := newTestExchange(map[string]reply{
		"/v1/me/getpositions?product_code=FX_BTC_JPY": {body: `[{"side":"HOLD","price":1,"size":1}]`},
	})

	_, err := ex.QueryPositions(context.Background(), types.ProductBTCJPYPerp)

	var invalidErr *bitflyerapi.InvalidResponseError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, `[{"side":"HOLD","price":1,"size":1}]`, string(invalidErr.Body))
}

func TestExchange_QueryMidPrice(t *testing.T) {
	ex, transport := newTestExchange(map[string]reply{
		"/v1/board?product_code=FX_BTC_JPY": {body: `{"mid_price":33320,"bids":[],"asks":[]}`},
	})

	price, err := ex.QueryMidPrice(context.Background(), types.ProductBTCJPYPerp)
	require.NoError(t, err)
	assert.Equal(t, 33320.0, price)
	assert.Equal(t, []string{"GET /v1/board?product_code=FX_BTC_JPY"}, transport.calls)
}

func TestExchange_QueryActiveOrderPrices(t *testing.T) {
	ex, _ := newTestExchange(map[string]reply{
		"/v1/me/getparentorders?parent_order_state=ACTIVE&product_code=FX_BTC_JPY": {body: `[{"parent_order_id":"a","price":30000},{"parent_order_id":"b"},{"parent_order_id":"c","price":31000}]`},
	})

	prices, err := ex.QueryActiveOrderPrices(context.Background(), types.ProductBTCJPYPerp)
	require.NoError(t, err)
	assert.Equal(t, []float64{30000, 31000}, prices)
}

func TestExchange_QueryChildOrders(t *testing.T) {
	ex, transport := newTestExchange(map[string]reply{
		"/v1/me/getchildorders?child_order_state=ACTIVE&product_code=FX_BTC_JPY": {body: `[{"id":138398,"child_order_id":"JOR20150707-084555-022523","product_code":"FX_BTC_JPY","side":"BUY","child_order_type":"LIMIT","price":30000,"size":0.1,"child_order_state":"ACTIVE","child_order_acceptance_id":"JRF20150707-084552-031927"}]`},
		"/v1/me/getchildorders?product_code=FX_BTC_JPY":                        {body: `[]`},
	})

	orders, err := ex.QueryChildOrders(context.Background(), types.ProductBTCJPYPerp, bitflyerapi.OrderStateActive)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, bitflyerapi.ChildOrderTypeLimit, orders[0].ChildOrderType)
	assert.Equal(t, bitflyerapi.OrderStateActive, orders[0].ChildOrderState)

	orders, err = ex.QueryChildOrders(context.Background(), types.ProductBTCJPYPerp, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Len(t, transport.calls, 2)
}

func TestExchange_QueryMarketsIsPublic(t *testing.T) {
	ex, _ := newTestExchange(map[string]reply{
		"/v1/getmarkets": {body: `[{"product_code":"BTC_JPY","market_type":"Spot"},{"product_code":"FX_BTC_JPY","market_type":"FX"}]`},
	})

	markets, err := ex.QueryMarkets(context.Background())
	require.NoError(t, err)
	assert.Len(t, markets, 2)
}

func TestExchange_QueryPermissions(t *testing.T) {
	ex, _ := newTestExchange(map[string]reply{
		"/v1/me/getpermissions": {body: `["/v1/me/getpermissions","/v1/me/getbalance"]`},
	})

	permissions, err := ex.QueryPermissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/v1/me/getpermissions", "/v1/me/getbalance"}, permissions)
}

func TestExchange_WithProductCodes(t *testing.T) {
	ex, transport := newTestExchange(map[string]reply{
		"/v1/board?product_code=ETH_JPY": {body: `{"mid_price":300000}`},
	})
	WithProductCodes(types.ProductETHJPY)(ex)

	price, err := ex.QueryMidPrice(context.Background(), types.ProductETHJPY)
	require.NoError(t, err)
	assert.Equal(t, 300000.0, price)

	_, err = ex.QueryMidPrice(context.Background(), types.ProductBTCJPYPerp)
	var paramErr *InvalidParameterError
	assert.ErrorAs(t, err, &paramErr)
	assert.True(t, strings.HasPrefix(transport.calls[0], "GET /v1/board"))
	assert.Len(t, transport.calls, 1)
}
