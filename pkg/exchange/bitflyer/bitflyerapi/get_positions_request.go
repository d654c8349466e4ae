package bitflyerapi

import (
	"context"
	"net/url"
)

type Position struct {
	ProductCode         string   `json:"product_code"`
	Side                SideType `json:"side"`
	Price               float64  `json:"price"`
	Size                float64  `json:"size"`
	Commission          float64  `json:"commission"`
	SwapPointAccumulate float64  `json:"swap_point_accumulate"`
	RequireCollateral   float64  `json:"require_collateral"`
	OpenDate            string   `json:"open_date"`
	Leverage            float64  `json:"leverage"`
	Pnl                 float64  `json:"pnl"`
	Sfd                 float64  `json:"sfd"`
}

type GetPositionsRequest struct {
	client *RestClient

	productCode string
}

func (c *RestClient) NewGetPositionsRequest() *GetPositionsRequest {
	return &GetPositionsRequest{client: c}
}

func (r *GetPositionsRequest) ProductCode(productCode string) *GetPositionsRequest {
	r.productCode = productCode
	return r
}

func (r *GetPositionsRequest) GetQueryParameters() url.Values {
	params := url.Values{}
	params.Set("product_code", r.productCode)
	return params
}

func (r *GetPositionsRequest) Do(ctx context.Context) ([]Position, error) {
	response, err := r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/me/getpositions", r.GetQueryParameters(), nil)
	if err != nil {
		return nil, err
	}

	if err := response.requireArray("side", "price", "size"); err != nil {
		return nil, err
	}

	var positions []Position
	if err := response.DecodeJSON(&positions); err != nil {
		return nil, err
	}

	for _, position := range positions {
		if position.Side != SideTypeBuy && position.Side != SideTypeSell {
			return nil, response.invalid(newInvalidResponse(response.Body, "unknown position side %q", position.Side))
		}
	}

	return positions, nil
}
