package bitflyerapi

import (
	"context"
	"encoding/json"
)

// ChildOrderParams is the body of /v1/me/sendchildorder.
// The field order here is the field order on the wire.
type ChildOrderParams struct {
	ProductCode    string         `json:"product_code"`
	ChildOrderType ChildOrderType `json:"child_order_type"`
	Side           SideType       `json:"side"`
	Price          float64        `json:"price"`
	TriggerPrice   float64        `json:"trigger_price,omitempty"`
	Size           float64        `json:"size"`
	MinuteToExpire int            `json:"minute_to_expire"`
	TimeInForce    TimeInForce    `json:"time_in_force"`
}

type ChildOrderAcceptance struct {
	ChildOrderAcceptanceID string `json:"child_order_acceptance_id"`
}

type SendChildOrderRequest struct {
	client *RestClient

	params ChildOrderParams
}

func (c *RestClient) NewSendChildOrderRequest() *SendChildOrderRequest {
	return &SendChildOrderRequest{client: c}
}

func (r *SendChildOrderRequest) Parameters(params ChildOrderParams) *SendChildOrderRequest {
	r.params = params
	return r
}

func (r *SendChildOrderRequest) GetParameters() ChildOrderParams {
	return r.params
}

// Payload returns the serialized body that is both signed and sent.
func (r *SendChildOrderRequest) Payload() ([]byte, error) {
	return json.Marshal(r.params)
}

func (r *SendChildOrderRequest) Do(ctx context.Context) (*ChildOrderAcceptance, error) {
	payload, err := r.Payload()
	if err != nil {
		return nil, err
	}

	response, err := r.client.SendAuthenticatedRequest(ctx, "POST", "/v1/me/sendchildorder", nil, payload)
	if err != nil {
		return nil, err
	}

	if err := response.requireObject("child_order_acceptance_id"); err != nil {
		return nil, err
	}

	var acceptance ChildOrderAcceptance
	if err := response.DecodeJSON(&acceptance); err != nil {
		return nil, err
	}

	return &acceptance, nil
}
