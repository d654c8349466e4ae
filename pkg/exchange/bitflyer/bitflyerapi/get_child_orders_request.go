package bitflyerapi

import (
	"context"
	"net/url"
)

type ChildOrder struct {
	ID                     int64          `json:"id"`
	ChildOrderID           string         `json:"child_order_id"`
	ProductCode            string         `json:"product_code"`
	Side                   SideType       `json:"side"`
	ChildOrderType         ChildOrderType `json:"child_order_type"`
	Price                  float64        `json:"price"`
	AveragePrice           float64        `json:"average_price"`
	Size                   float64        `json:"size"`
	ChildOrderState        OrderState     `json:"child_order_state"`
	ExpireDate             string         `json:"expire_date"`
	ChildOrderDate         string         `json:"child_order_date"`
	ChildOrderAcceptanceID string         `json:"child_order_acceptance_id"`
	OutstandingSize        float64        `json:"outstanding_size"`
	CancelSize             float64        `json:"cancel_size"`
	ExecutedSize           float64        `json:"executed_size"`
	TotalCommission        float64        `json:"total_commission"`
}

type GetChildOrdersRequest struct {
	client *RestClient

	productCode string
	state       *OrderState
}

func (c *RestClient) NewGetChildOrdersRequest() *GetChildOrdersRequest {
	return &GetChildOrdersRequest{client: c}
}

func (r *GetChildOrdersRequest) ProductCode(productCode string) *GetChildOrdersRequest {
	r.productCode = productCode
	return r
}

func (r *GetChildOrdersRequest) State(state OrderState) *GetChildOrdersRequest {
	r.state = &state
	return r
}

func (r *GetChildOrdersRequest) GetQueryParameters() url.Values {
	params := url.Values{}
	if r.productCode != "" {
		params.Set("product_code", r.productCode)
	}

	if r.state != nil {
		params.Set("child_order_state", string(*r.state))
	}

	return params
}

func (r *GetChildOrdersRequest) Do(ctx context.Context) ([]ChildOrder, error) {
	response, err := r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/me/getchildorders", r.GetQueryParameters(), nil)
	if err != nil {
		return nil, err
	}

	if err := response.requireArray("child_order_acceptance_id", "side", "size"); err != nil {
		return nil, err
	}

	var orders []ChildOrder
	if err := response.DecodeJSON(&orders); err != nil {
		return nil, err
	}

	return orders, nil
}
