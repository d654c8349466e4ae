package bitflyerapi

import (
	"context"
	"net/url"
)

type BoardEntry struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

type Board struct {
	MidPrice float64      `json:"mid_price"`
	Bids     []BoardEntry `json:"bids"`
	Asks     []BoardEntry `json:"asks"`
}

// GetBoardRequest is sent signed, like the account queries.
type GetBoardRequest struct {
	client *RestClient

	productCode string
}

func (c *RestClient) NewGetBoardRequest() *GetBoardRequest {
	return &GetBoardRequest{client: c}
}

func (r *GetBoardRequest) ProductCode(productCode string) *GetBoardRequest {
	r.productCode = productCode
	return r
}

func (r *GetBoardRequest) GetQueryParameters() url.Values {
	params := url.Values{}
	params.Set("product_code", r.productCode)
	return params
}

func (r *GetBoardRequest) Do(ctx context.Context) (*Board, error) {
	response, err := r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/board", r.GetQueryParameters(), nil)
	if err != nil {
		return nil, err
	}

	if err := response.requireObject("mid_price"); err != nil {
		return nil, err
	}

	var board Board
	if err := response.DecodeJSON(&board); err != nil {
		return nil, err
	}

	return &board, nil
}
