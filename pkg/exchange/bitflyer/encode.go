package bitflyer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
	"github.com/c9s/bitflyer/pkg/types"
)

// encodeChildOrder builds the body of /v1/me/sendchildorder.
// Orders without a price are sent with price 0.
func (e *Exchange) encodeChildOrder(
	code types.ProductCode, order types.ChildOrder, setting types.OrderSetting,
) (params bitflyerapi.ChildOrderParams, err error) {
	if err := order.Validate(); err != nil {
		return params, errors.Wrapf(err, "invalid order %v", order)
	}

	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return params, err
	}

	side, err := toLocalSide(order.OrderSide())
	if err != nil {
		return params, err
	}

	minuteToExpire, tif, err := toLocalOrderSetting(setting)
	if err != nil {
		return params, err
	}

	params = bitflyerapi.ChildOrderParams{
		ProductCode:    productCode,
		Side:           side,
		Size:           order.OrderSize(),
		MinuteToExpire: minuteToExpire,
		TimeInForce:    tif,
	}

	switch o := order.(type) {
	case types.MarketOrder:
		params.ChildOrderType = bitflyerapi.ChildOrderTypeMarket

	case types.LimitOrder:
		params.ChildOrderType = bitflyerapi.ChildOrderTypeLimit
		params.Price = o.Price

	case types.StopOrder:
		params.ChildOrderType = bitflyerapi.ChildOrderTypeStop
		params.TriggerPrice = o.TriggerPrice

	default:
		panic(fmt.Sprintf("bitflyer: child order %T is not implemented", order))
	}

	return params, nil
}

// encodeParentOrder builds the body of /v1/me/sendparentorder.
// The legs keep the order given by Legs().
func (e *Exchange) encodeParentOrder(
	code types.ProductCode, logic types.OrderWithLogic, setting types.OrderSetting,
) (params bitflyerapi.ParentOrderParams, err error) {
	if err := logic.Validate(); err != nil {
		return params, errors.Wrapf(err, "invalid order logic %v", logic)
	}

	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return params, err
	}

	minuteToExpire, tif, err := toLocalOrderSetting(setting)
	if err != nil {
		return params, err
	}

	params = bitflyerapi.ParentOrderParams{
		OrderMethod:    toLocalOrderMethod(logic),
		MinuteToExpire: minuteToExpire,
		TimeInForce:    tif,
	}

	for _, leg := range logic.Legs() {
		param, err := encodeLeg(productCode, leg)
		if err != nil {
			return params, err
		}

		params.Parameters = append(params.Parameters, param)
	}

	return params, nil
}

func encodeLeg(productCode string, leg types.SingleOrder) (bitflyerapi.ParentOrderParameter, error) {
	side, err := toLocalSide(leg.OrderSide())
	if err != nil {
		return bitflyerapi.ParentOrderParameter{}, err
	}

	param := bitflyerapi.ParentOrderParameter{
		ProductCode: productCode,
		Side:        side,
		Size:        leg.OrderSize(),
	}

	switch o := leg.(type) {
	case types.MarketOrder:
		param.ConditionType = bitflyerapi.ConditionTypeMarket

	case types.LimitOrder:
		param.ConditionType = bitflyerapi.ConditionTypeLimit
		param.Price = o.Price

	case types.StopOrder:
		param.ConditionType = bitflyerapi.ConditionTypeStop
		param.TriggerPrice = o.TriggerPrice

	case types.StopLimitOrder:
		param.ConditionType = bitflyerapi.ConditionTypeStopLimit
		param.Price = o.Price
		param.TriggerPrice = o.TriggerPrice

	default:
		panic(fmt.Sprintf("bitflyer: order leg %T is not implemented", leg))
	}

	return param, nil
}
