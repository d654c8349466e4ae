package bitflyerapi

import (
	"context"
)

type Balance struct {
	CurrencyCode string  `json:"currency_code"`
	Amount       float64 `json:"amount"`
	Available    float64 `json:"available"`
}

type GetBalanceRequest struct {
	client *RestClient
}

func (c *RestClient) NewGetBalanceRequest() *GetBalanceRequest {
	return &GetBalanceRequest{client: c}
}

func (r *GetBalanceRequest) Do(ctx context.Context) ([]Balance, error) {
	response, err := r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/me/getbalance", nil, nil)
	if err != nil {
		return nil, err
	}

	if err := response.requireArray("currency_code", "amount"); err != nil {
		return nil, err
	}

	var balances []Balance
	if err := response.DecodeJSON(&balances); err != nil {
		return nil, err
	}

	return balances, nil
}
