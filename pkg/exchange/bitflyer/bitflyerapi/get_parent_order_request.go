package bitflyerapi

import (
	"context"
	"net/url"
)

// ParentOrderDetail is the body of /v1/me/getparentorder.
// Parameters keep the submission order of the legs.
type ParentOrderDetail struct {
	ID                      int64                  `json:"id"`
	ParentOrderID           string                 `json:"parent_order_id"`
	OrderMethod             OrderMethod            `json:"order_method"`
	ExpireDate              string                 `json:"expire_date"`
	TimeInForce             TimeInForce            `json:"time_in_force"`
	Parameters              []ParentOrderParameter `json:"parameters"`
	ParentOrderAcceptanceID string                 `json:"parent_order_acceptance_id"`
}

type GetParentOrderRequest struct {
	client *RestClient

	parentOrderID string
}

func (c *RestClient) NewGetParentOrderRequest() *GetParentOrderRequest {
	return &GetParentOrderRequest{client: c}
}

func (r *GetParentOrderRequest) ParentOrderID(id string) *GetParentOrderRequest {
	r.parentOrderID = id
	return r
}

func (r *GetParentOrderRequest) GetQueryParameters() url.Values {
	params := url.Values{}
	params.Set("parent_order_id", r.parentOrderID)
	return params
}

func (r *GetParentOrderRequest) Do(ctx context.Context) (*ParentOrderDetail, error) {
	response, err := r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/me/getparentorder", r.GetQueryParameters(), nil)
	if err != nil {
		return nil, err
	}

	if err := response.requireObject("parameters"); err != nil {
		return nil, err
	}

	var detail ParentOrderDetail
	if err := response.DecodeJSON(&detail); err != nil {
		return nil, err
	}

	return &detail, nil
}
