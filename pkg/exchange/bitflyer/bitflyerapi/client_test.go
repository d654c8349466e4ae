package bitflyerapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi/mocks"
	"github.com/c9s/bitflyer/pkg/testing/httptesting"
)

var fixedNow = time.Unix(1700000000, 0)

func newTestClient(t *testing.T, transport Transport) *RestClient {
	t.Helper()
	client := NewClientWithTransport(transport)
	client.Auth("key", "secret")
	client.SetNowFunc(func() time.Time { return fixedNow })
	return client
}

// captureTransport records the last request and answers with a fixed reply.
type captureTransport struct {
	method string
	path   string
	header http.Header
	body   []byte

	statusCode int
	reply      string
	err        error
}

func (c *captureTransport) Send(_ context.Context, method, path string, header http.Header, body []byte) (int, []byte, error) {
	c.method, c.path, c.header, c.body = method, path, header, body
	if c.err != nil {
		return 0, nil, c.err
	}

	code := c.statusCode
	if code == 0 {
		code = http.StatusOK
	}

	return code, []byte(c.reply), nil
}

func TestSign(t *testing.T) {
	// HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog")
	sig := Sign("The quick brown fox jumps over the lazy dog", "key")
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", sig)
}

func TestRestClient_SignatureCoversDispatchedBytes(t *testing.T) {
	transport := &captureTransport{reply: `{"child_order_acceptance_id":"JRF20150707-050237-639234"}`}
	client := newTestClient(t, transport)

	acceptance, err := client.NewSendChildOrderRequest().Parameters(ChildOrderParams{
		ProductCode:    "FX_BTC_JPY",
		ChildOrderType: ChildOrderTypeLimit,
		Side:           SideTypeBuy,
		Price:          500000,
		Size:           0.01,
		MinuteToExpire: 1,
		TimeInForce:    TimeInForceGTC,
	}).Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "JRF20150707-050237-639234", acceptance.ChildOrderAcceptanceID)

	assert.Equal(t, "POST", transport.method)
	assert.Equal(t, "/v1/me/sendchildorder", transport.path)

	timestamp := transport.header.Get("ACCESS-TIMESTAMP")
	assert.Equal(t, strconv.FormatInt(fixedNow.Unix(), 10), timestamp)
	assert.Equal(t, "key", transport.header.Get("ACCESS-KEY"))
	assert.Equal(t, "application/json", transport.header.Get("Content-Type"))

	expected := Sign(timestamp+transport.method+transport.path+string(transport.body), "secret")
	assert.Equal(t, expected, transport.header.Get("ACCESS-SIGN"))
}

func TestRestClient_SignatureIncludesQueryString(t *testing.T) {
	transport := &captureTransport{reply: `[]`}
	client := newTestClient(t, transport)

	prices, err := client.NewGetParentOrdersRequest().ProductCode("FX_BTC_JPY").DoPrices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prices)

	assert.Equal(t, "/v1/me/getparentorders?parent_order_state=ACTIVE&product_code=FX_BTC_JPY", transport.path)
	assert.Empty(t, transport.body)

	expected := Sign(transport.header.Get("ACCESS-TIMESTAMP")+"GET"+transport.path, "secret")
	assert.Equal(t, expected, transport.header.Get("ACCESS-SIGN"))
}

func TestRestClient_SignatureIsDeterministic(t *testing.T) {
	transport := &captureTransport{reply: `{"collateral":1,"open_position_pnl":0}`}
	client := newTestClient(t, transport)

	_, err := client.NewGetCollateralRequest().Do(context.Background())
	require.NoError(t, err)
	first := transport.header.Get("ACCESS-SIGN")

	_, err = client.NewGetCollateralRequest().Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, transport.header.Get("ACCESS-SIGN"))
}

func TestRestClient_PublicRequestIsNotSigned(t *testing.T) {
	transport := &captureTransport{reply: `[{"product_code":"BTC_JPY","market_type":"Spot"}]`}
	client := NewClientWithTransport(transport)

	markets, err := client.NewGetMarketsRequest().Do(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "BTC_JPY", markets[0].ProductCode)
	assert.Empty(t, transport.header)
}

func TestRestClient_MissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)

	client := NewClientWithTransport(transport)
	_, err := client.NewGetCollateralRequest().Do(context.Background())
	assert.Error(t, err)
}

func TestRestClient_ErrorClassification(t *testing.T) {
	ctx := context.Background()

	t.Run("transport failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Send(gomock.Any(), "GET", "/v1/me/getcollateral", gomock.Any(), gomock.Any()).
			Return(0, nil, errors.New("connection reset by peer"))

		_, err := newTestClient(t, transport).NewGetCollateralRequest().Do(ctx)
		require.Error(t, err)
		assert.True(t, IsTimeout(err))

		var timeoutErr *TimeoutError
		require.ErrorAs(t, err, &timeoutErr)
		assert.Equal(t, "connection reset by peer", timeoutErr.Message)
	})

	t.Run("non-200 with a well-formed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusBadRequest, []byte(`{"collateral":100.0,"open_position_pnl":-5.0}`), nil)

		_, err := newTestClient(t, transport).NewGetCollateralRequest().Do(ctx)
		require.Error(t, err)
		assert.True(t, IsErrorResponse(err))
		assert.False(t, IsInvalidResponse(err))
	})

	t.Run("non-200 with an api error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusBadRequest, []byte(`{"status":-208,"error_message":"Order is not accepted","data":null}`), nil)

		_, err := newTestClient(t, transport).NewGetBalanceRequest().Do(ctx)

		var errResp *ErrorResponse
		require.ErrorAs(t, err, &errResp)
		assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)

		apiErr, ok := errResp.APIError()
		require.True(t, ok)
		assert.Equal(t, -208, apiErr.Status)
		assert.Equal(t, "Order is not accepted", apiErr.ErrorMessage)
	})

	t.Run("200 with a schema mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"foo":1}`), nil)

		_, err := newTestClient(t, transport).NewGetCollateralRequest().Do(ctx)
		require.Error(t, err)
		assert.True(t, IsInvalidResponse(err))
	})

	t.Run("200 with malformed json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`[{"currency_code":`), nil)

		_, err := newTestClient(t, transport).NewGetBalanceRequest().Do(ctx)
		assert.True(t, IsInvalidResponse(err))
	})

	t.Run("200 with a wrongly typed field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"collateral":"lots","open_position_pnl":0}`), nil)

		_, err := newTestClient(t, transport).NewGetCollateralRequest().Do(ctx)
		assert.True(t, IsInvalidResponse(err))
	})
}

func TestGetCollateralRequest(t *testing.T) {
	transport := &captureTransport{reply: `{"collateral":100.0,"open_position_pnl":-5.0}`}
	collateral, err := newTestClient(t, transport).NewGetCollateralRequest().Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 95.0, collateral.Equity())
	assert.Equal(t, "/v1/me/getcollateral", transport.path)
}

func TestGetBalanceRequest(t *testing.T) {
	transport := &captureTransport{reply: `[{"currency_code":"JPY","amount":1000.0,"available":900.0},{"currency_code":"BTC","amount":0.5,"available":0.5}]`}
	balances, err := newTestClient(t, transport).NewGetBalanceRequest().Do(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "JPY", balances[0].CurrencyCode)
	assert.Equal(t, 1000.0, balances[0].Amount)
	assert.Equal(t, 900.0, balances[0].Available)
}

func TestGetPositionsRequest(t *testing.T) {
	transport := &captureTransport{reply: `[{"product_code":"FX_BTC_JPY","side":"BUY","price":36640,"size":5,"commission":0,"swap_point_accumulate":-35,"require_collateral":120000,"open_date":"2015-11-03T10:04:45.011","leverage":3,"pnl":965,"sfd":-0.5}]`}
	positions, err := newTestClient(t, transport).NewGetPositionsRequest().ProductCode("FX_BTC_JPY").Do(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, SideTypeBuy, positions[0].Side)
	assert.Equal(t, 36640.0, positions[0].Price)
	assert.Equal(t, 5.0, positions[0].Size)
	assert.Equal(t, "/v1/me/getpositions?product_code=FX_BTC_JPY", transport.path)
}

func TestGetPositionsRequest_UnknownSide(t *testing.T) {
	body := `[{"product_code":"FX_BTC_JPY","side":"HOLD","price":1,"size":1}]`
	_, err := newTestClient(t, &captureTransport{reply: body}).NewGetPositionsRequest().ProductCode("FX_BTC_JPY").Do(context.Background())

	var invalidErr *InvalidResponseError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, body, string(invalidErr.Body))
}

func TestGetBoardRequest(t *testing.T) {
	transport := &captureTransport{reply: `{"mid_price":33320,"bids":[{"price":30000,"size":0.1}],"asks":[{"price":36640,"size":5}]}`}
	board, err := newTestClient(t, transport).NewGetBoardRequest().ProductCode("FX_BTC_JPY").Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33320.0, board.MidPrice)
	assert.Len(t, board.Bids, 1)
	assert.NotEmpty(t, transport.header.Get("ACCESS-SIGN"))
}

func TestParseParentOrderPrices(t *testing.T) {
	t.Run("skips entries without a price", func(t *testing.T) {
		prices, err := ParseParentOrderPrices([]byte(`[{"price":100},{"size":1},{"price":"n/a"},{"price":200.5}]`))
		require.NoError(t, err)
		assert.Equal(t, []float64{100, 200.5}, prices)
	})

	t.Run("empty list", func(t *testing.T) {
		prices, err := ParseParentOrderPrices([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, prices)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := ParseParentOrderPrices([]byte(`{"price":100}`))
		assert.True(t, IsInvalidResponse(err))
	})
}

func TestSendParentOrderRequest_Payload(t *testing.T) {
	req := (&RestClient{}).NewSendParentOrderRequest().Parameters(ParentOrderParams{
		OrderMethod:    OrderMethodIFD,
		MinuteToExpire: 10,
		TimeInForce:    TimeInForceGTC,
		Parameters: []ParentOrderParameter{
			{ProductCode: "FX_BTC_JPY", ConditionType: ConditionTypeLimit, Side: SideTypeBuy, Price: 30000, Size: 0.1},
			{ProductCode: "FX_BTC_JPY", ConditionType: ConditionTypeStop, Side: SideTypeSell, TriggerPrice: 29000, Size: 0.1},
		},
	})

	payload, err := req.Payload()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"order_method":"IFD","minute_to_expire":10,"time_in_force":"GTC",
		"parameters":[
			{"product_code":"FX_BTC_JPY","condition_type":"LIMIT","side":"BUY","price":30000,"size":0.1},
			{"product_code":"FX_BTC_JPY","condition_type":"STOP","side":"SELL","price":0,"trigger_price":29000,"size":0.1}
		]}`, string(payload))
}

func TestCancelAllChildOrdersRequest(t *testing.T) {
	transport := &captureTransport{}
	err := newTestClient(t, transport).NewCancelAllChildOrdersRequest().ProductCode("FX_BTC_JPY").Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "POST", transport.method)
	assert.Equal(t, `{"product_code":"FX_BTC_JPY"}`, string(transport.body))
}

func TestGetParentOrderRequest(t *testing.T) {
	transport := &captureTransport{reply: `{"id":4242,"parent_order_id":"JCP20150825-046876-036161","order_method":"OCO","expire_date":"2015-09-24T15:02:10","time_in_force":"GTC","parameters":[{"product_code":"FX_BTC_JPY","condition_type":"LIMIT","side":"SELL","price":32000,"size":0.1,"trigger_price":0},{"product_code":"FX_BTC_JPY","condition_type":"STOP","side":"SELL","price":0,"size":0.1,"trigger_price":28000}],"parent_order_acceptance_id":"JRF20150925-060559-396699"}`}
	detail, err := newTestClient(t, transport).NewGetParentOrderRequest().ParentOrderID("JCP20150825-046876-036161").Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OrderMethodOCO, detail.OrderMethod)
	require.Len(t, detail.Parameters, 2)
	assert.Equal(t, 28000.0, detail.Parameters[1].TriggerPrice)
	assert.Equal(t, "/v1/me/getparentorder?parent_order_id=JCP20150825-046876-036161", transport.path)
}

func TestHTTPTransport(t *testing.T) {
	var saved *http.Request
	transport, err := NewHTTPTransport(RestBaseURL, httptesting.HttpClientSaver(&saved, `{"collateral":10,"open_position_pnl":2}`))
	require.NoError(t, err)

	collateral, err := newTestClient(t, transport).NewGetCollateralRequest().Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.0, collateral.Equity())

	require.NotNil(t, saved)
	assert.Equal(t, "api.bitflyer.com", saved.URL.Host)
	assert.Equal(t, "/v1/me/getcollateral", saved.URL.Path)
	assert.NotEmpty(t, saved.Header.Get("ACCESS-SIGN"))
}

func TestHTTPTransport_MockTransport(t *testing.T) {
	mockTransport := &httptesting.MockTransport{}
	mockTransport.POST("/v1/me/sendchildorder", func(req *http.Request) (*http.Response, error) {
		body := httptesting.ReadBody(req)
		if len(body) == 0 {
			return httptesting.BuildResponseString(http.StatusBadRequest, `{"status":-1}`), nil
		}

		return httptesting.BuildResponseJson(http.StatusOK, map[string]string{
			"child_order_acceptance_id": "JRF1",
		}), nil
	})

	transport, err := NewHTTPTransport(RestBaseURL, &http.Client{Transport: mockTransport})
	require.NoError(t, err)

	acceptance, err := newTestClient(t, transport).NewSendChildOrderRequest().Parameters(ChildOrderParams{
		ProductCode:    "FX_BTC_JPY",
		ChildOrderType: ChildOrderTypeMarket,
		Side:           SideTypeSell,
		Size:           0.01,
		MinuteToExpire: 1,
		TimeInForce:    TimeInForceGTC,
	}).Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "JRF1", acceptance.ChildOrderAcceptanceID)

	// unregistered paths fail inside the round tripper, before a response exists
	_, err = newTestClient(t, transport).NewGetBalanceRequest().Do(context.Background())
	assert.True(t, IsTimeout(err))
}

func TestHTTPTransport_JsonReply(t *testing.T) {
	transport, err := NewHTTPTransport(RestBaseURL, httptesting.MockWithJsonReply("/v1/getmarkets", []map[string]string{
		{"product_code": "BTC_JPY", "market_type": "Spot"},
		{"product_code": "FX_BTC_JPY", "market_type": "FX"},
	}))
	require.NoError(t, err)

	markets, err := NewClientWithTransport(transport).NewGetMarketsRequest().Do(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "FX_BTC_JPY", markets[1].ProductCode)
}

func TestHTTPTransport_Content(t *testing.T) {
	transport, err := NewHTTPTransport(RestBaseURL, httptesting.HttpClientWithContent(`["/v1/me/getbalance","/v1/me/sendchildorder"]`))
	require.NoError(t, err)

	permissions, err := newTestClient(t, transport).NewGetPermissionsRequest().Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/v1/me/getbalance", "/v1/me/sendchildorder"}, permissions)
}

func TestHTTPTransport_Error(t *testing.T) {
	transport, err := NewHTTPTransport(RestBaseURL, httptesting.HttpClientWithError(errors.New("dial tcp: i/o timeout")))
	require.NoError(t, err)

	_, err = newTestClient(t, transport).NewGetCollateralRequest().Do(context.Background())
	assert.True(t, IsTimeout(err))
}

func TestHTTPTransport_Status(t *testing.T) {
	transport, err := NewHTTPTransport(RestBaseURL, httptesting.HttpClientWithStatus(http.StatusInternalServerError, `oops`))
	require.NoError(t, err)

	_, err = newTestClient(t, transport).NewGetCollateralRequest().Do(context.Background())
	assert.True(t, IsErrorResponse(err))
}
