package bitflyerapi

import (
	"context"
)

// GetPermissionsRequest lists the API paths the key is allowed to call.
type GetPermissionsRequest struct {
	client *RestClient
}

func (c *RestClient) NewGetPermissionsRequest() *GetPermissionsRequest {
	return &GetPermissionsRequest{client: c}
}

func (r *GetPermissionsRequest) Do(ctx context.Context) ([]string, error) {
	response, err := r.client.SendAuthenticatedRequest(ctx, "GET", "/v1/me/getpermissions", nil, nil)
	if err != nil {
		return nil, err
	}

	var permissions []string
	if err := response.DecodeJSON(&permissions); err != nil {
		return nil, err
	}

	return permissions, nil
}
