package bitflyerapi

import (
	"context"
)

type Market struct {
	ProductCode string `json:"product_code"`
	Alias       string `json:"alias,omitempty"`
	MarketType  string `json:"market_type"`
}

// GetMarketsRequest is public and sent without signature.
type GetMarketsRequest struct {
	client *RestClient
}

func (c *RestClient) NewGetMarketsRequest() *GetMarketsRequest {
	return &GetMarketsRequest{client: c}
}

func (r *GetMarketsRequest) Do(ctx context.Context) ([]Market, error) {
	response, err := r.client.SendRequest(ctx, "GET", "/v1/getmarkets", nil, nil)
	if err != nil {
		return nil, err
	}

	if err := response.requireArray("product_code"); err != nil {
		return nil, err
	}

	var markets []Market
	if err := response.DecodeJSON(&markets); err != nil {
		return nil, err
	}

	return markets, nil
}
