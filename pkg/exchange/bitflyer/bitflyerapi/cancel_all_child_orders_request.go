package bitflyerapi

import (
	"context"
	"encoding/json"
)

type CancelAllChildOrdersParams struct {
	ProductCode string `json:"product_code"`
}

type CancelAllChildOrdersRequest struct {
	client *RestClient

	productCode string
}

func (c *RestClient) NewCancelAllChildOrdersRequest() *CancelAllChildOrdersRequest {
	return &CancelAllChildOrdersRequest{client: c}
}

func (r *CancelAllChildOrdersRequest) ProductCode(productCode string) *CancelAllChildOrdersRequest {
	r.productCode = productCode
	return r
}

func (r *CancelAllChildOrdersRequest) Payload() ([]byte, error) {
	return json.Marshal(CancelAllChildOrdersParams{ProductCode: r.productCode})
}

// Do returns nil once the exchange accepted the cancellation; the response body is empty.
func (r *CancelAllChildOrdersRequest) Do(ctx context.Context) error {
	payload, err := r.Payload()
	if err != nil {
		return err
	}

	_, err = r.client.SendAuthenticatedRequest(ctx, "POST", "/v1/me/cancelallchildorders", nil, payload)
	return err
}
