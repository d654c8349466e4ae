package bitflyerapi

import (
	"context"
)

type Collateral struct {
	Collateral        float64 `json:"collateral"`
	OpenPositionPnl   float64 `json:"open_position_pnl"`
	RequireCollateral float64 `json:"require_collateral"`
	KeepRate          float64 `json:"keep_rate"`
}

// Equity is the deposited collateral plus the unrealized pnl of open positions.
func (c Collateral) Equity() float64 {
	return c.Collateral + c.OpenPositionPnl
}

type GetCollateralRequest struct {
	client *RestClient
}

func (c *RestClient) NewGetCollateralRequest() *GetCollateralRequest {
	return &GetCollateralRequest{client: c}
}

func (r *GetCollateralRequest) Do(ctx context.Context) (*Collateral, error) {
	response, err := r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/me/getcollateral", nil, nil)
	if err != nil {
		return nil, err
	}

	if err := response.requireObject("collateral", "open_position_pnl"); err != nil {
		return nil, err
	}

	var collateral Collateral
	if err := response.DecodeJSON(&collateral); err != nil {
		return nil, err
	}

	return &collateral, nil
}
