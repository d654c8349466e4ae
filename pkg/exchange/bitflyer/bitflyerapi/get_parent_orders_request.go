package bitflyerapi

import (
	"context"
	"net/url"
)

// ParentOrder is one entry of /v1/me/getparentorders.
// ParentOrderType is the order method, or the condition type of a SIMPLE order.
type ParentOrder struct {
	ID                      int64      `json:"id"`
	ParentOrderID           string     `json:"parent_order_id"`
	ProductCode             string     `json:"product_code"`
	Side                    SideType   `json:"side"`
	ParentOrderType         string     `json:"parent_order_type"`
	Price                   float64    `json:"price"`
	AveragePrice            float64    `json:"average_price"`
	Size                    float64    `json:"size"`
	ParentOrderState        OrderState `json:"parent_order_state"`
	ExpireDate              string     `json:"expire_date"`
	ParentOrderDate         string     `json:"parent_order_date"`
	ParentOrderAcceptanceID string     `json:"parent_order_acceptance_id"`
	OutstandingSize         float64    `json:"outstanding_size"`
	CancelSize              float64    `json:"cancel_size"`
	ExecutedSize            float64    `json:"executed_size"`
	TotalCommission         float64    `json:"total_commission"`
}

type GetParentOrdersRequest struct {
	client *RestClient

	productCode string
	state       OrderState
}

func (c *RestClient) NewGetParentOrdersRequest() *GetParentOrdersRequest {
	return &GetParentOrdersRequest{client: c, state: OrderStateActive}
}

func (r *GetParentOrdersRequest) ProductCode(productCode string) *GetParentOrdersRequest {
	r.productCode = productCode
	return r
}

func (r *GetParentOrdersRequest) State(state OrderState) *GetParentOrdersRequest {
	r.state = state
	return r
}

// GetQueryParameters encodes to parent_order_state=...&product_code=...
func (r *GetParentOrdersRequest) GetQueryParameters() url.Values {
	params := url.Values{}
	params.Set("parent_order_state", string(r.state))
	params.Set("product_code", r.productCode)
	return params
}

// DoRaw returns the undecoded response, for callers that parse the list leniently.
func (r *GetParentOrdersRequest) DoRaw(ctx context.Context) (*Response, error) {
	return r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/me/getparentorders", r.GetQueryParameters(), nil)
}

// DoPrices returns the prices of the listed orders, skipping entries without one.
func (r *GetParentOrdersRequest) DoPrices(ctx context.Context) ([]float64, error) {
	response, err := r.DoRaw(ctx)
	if err != nil {
		return nil, err
	}

	return response.parentOrderPrices()
}

func (r *GetParentOrdersRequest) Do(ctx context.Context) ([]ParentOrder, error) {
	response, err := r.DoRaw(ctx)
	if err != nil {
		return nil, err
	}

	if err := response.requireArray("parent_order_id", "parent_order_type", "side", "size"); err != nil {
		return nil, err
	}

	var orders []ParentOrder
	if err := response.DecodeJSON(&orders); err != nil {
		return nil, err
	}

	return orders, nil
}
