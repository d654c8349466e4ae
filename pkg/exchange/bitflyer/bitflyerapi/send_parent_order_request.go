package bitflyerapi

import (
	"context"
	"encoding/json"
)

// ParentOrderParameter is one leg of a parent order.
// Price is always sent, 0 when the leg has none.
type ParentOrderParameter struct {
	ProductCode   string        `json:"product_code"`
	ConditionType ConditionType `json:"condition_type"`
	Side          SideType      `json:"side"`
	Price         float64       `json:"price"`
	TriggerPrice  float64       `json:"trigger_price,omitempty"`
	Size          float64       `json:"size"`
}

// ParentOrderParams is the body of /v1/me/sendparentorder.
type ParentOrderParams struct {
	OrderMethod    OrderMethod            `json:"order_method"`
	MinuteToExpire int                    `json:"minute_to_expire"`
	TimeInForce    TimeInForce            `json:"time_in_force"`
	Parameters     []ParentOrderParameter `json:"parameters"`
}

type ParentOrderAcceptance struct {
	ParentOrderAcceptanceID string `json:"parent_order_acceptance_id"`
}

type SendParentOrderRequest struct {
	client *RestClient

	params ParentOrderParams
}

func (c *RestClient) NewSendParentOrderRequest() *SendParentOrderRequest {
	return &SendParentOrderRequest{client: c}
}

func (r *SendParentOrderRequest) Parameters(params ParentOrderParams) *SendParentOrderRequest {
	r.params = params
	return r
}

func (r *SendParentOrderRequest) GetParameters() ParentOrderParams {
	return r.params
}

// Payload returns the serialized body that is both signed and sent.
func (r *SendParentOrderRequest) Payload() ([]byte, error) {
	return json.Marshal(r.params)
}

func (r *SendParentOrderRequest) Do(ctx context.Context) (*ParentOrderAcceptance, error) {
	payload, err := r.Payload()
	if err != nil {
		return nil, err
	}

	response, err := r.client.SendAuthenticatedRequest(ctx, "POST", "/v1/me/sendparentorder", nil, payload)
	if err != nil {
		return nil, err
	}

	if err := response.requireObject("parent_order_acceptance_id"); err != nil {
		return nil, err
	}

	var acceptance ParentOrderAcceptance
	if err := response.DecodeJSON(&acceptance); err != nil {
		return nil, err
	}

	return &acceptance, nil
}
