package bitflyer

import (
	"fmt"

	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
	"github.com/c9s/bitflyer/pkg/types"
)

// productCodeMap maps the local product codes to the bitflyer symbols.
var productCodeMap = map[types.ProductCode]string{
	types.ProductBTCJPY:     "BTC_JPY",
	types.ProductETHJPY:     "ETH_JPY",
	types.ProductETHBTC:     "ETH_BTC",
	types.ProductBTCJPYPerp: "FX_BTC_JPY",
}

// InvalidParameterError is returned before any request is sent when a value cannot be encoded.
type InvalidParameterError struct {
	Name  string
	Value interface{}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("bitflyer: invalid parameter %s: %v", e.Name, e.Value)
}

// UnsupportedOrderKindError marks a server side order that has no counterpart in the local order model.
type UnsupportedOrderKindError struct {
	Kind string
}

func (e *UnsupportedOrderKindError) Error() string {
	return fmt.Sprintf("bitflyer: unsupported order kind %q", e.Kind)
}

func (e *Exchange) toLocalProductCode(code types.ProductCode) (string, error) {
	if _, ok := e.productCodes[code]; !ok {
		return "", &InvalidParameterError{Name: "product_code", Value: code}
	}

	symbol, ok := productCodeMap[code]
	if !ok {
		return "", &InvalidParameterError{Name: "product_code", Value: code}
	}

	return symbol, nil
}

func toLocalSide(side types.SideType) (bitflyerapi.SideType, error) {
	switch side {
	case types.SideTypeBuy:
		return bitflyerapi.SideTypeBuy, nil
	case types.SideTypeSell:
		return bitflyerapi.SideTypeSell, nil
	}

	return "", &InvalidParameterError{Name: "side", Value: side}
}

func toGlobalSide(side bitflyerapi.SideType) (types.SideType, error) {
	switch side {
	case bitflyerapi.SideTypeBuy:
		return types.SideTypeBuy, nil
	case bitflyerapi.SideTypeSell:
		return types.SideTypeSell, nil
	}

	return "", fmt.Errorf("unexpected side type: %q", side)
}

func toLocalTimeInForce(tif types.TimeInForce) (bitflyerapi.TimeInForce, error) {
	switch tif {
	case types.TimeInForceGTC:
		return bitflyerapi.TimeInForceGTC, nil
	case types.TimeInForceIOC:
		return bitflyerapi.TimeInForceIOC, nil
	case types.TimeInForceFOK:
		return bitflyerapi.TimeInForceFOK, nil
	}

	return "", &InvalidParameterError{Name: "time_in_force", Value: tif}
}

// toLocalOrderSetting returns minute_to_expire and time_in_force.
func toLocalOrderSetting(setting types.OrderSetting) (int, bitflyerapi.TimeInForce, error) {
	if setting.ExpireMinutes < 1 {
		return 0, "", &InvalidParameterError{Name: "minute_to_expire", Value: setting.ExpireMinutes}
	}

	tif, err := toLocalTimeInForce(setting.TimeInForce)
	if err != nil {
		return 0, "", err
	}

	return setting.ExpireMinutes, tif, nil
}

// toLocalOrderMethod selects the parent order method of a composite order.
func toLocalOrderMethod(logic types.OrderWithLogic) bitflyerapi.OrderMethod {
	switch logic.(type) {
	case types.IFD:
		return bitflyerapi.OrderMethodIFD
	case types.OCO:
		return bitflyerapi.OrderMethodOCO
	case types.IFO:
		return bitflyerapi.OrderMethodIFDOCO
	case types.StopLogic:
		return bitflyerapi.OrderMethodSimple
	}

	panic(fmt.Sprintf("bitflyer: order logic %T is not implemented", logic))
}

func toGlobalPosition(position bitflyerapi.Position) (types.Position, error) {
	side, err := toGlobalSide(position.Side)
	if err != nil {
		return types.Position{}, err
	}

	return types.Position{
		Side:  side,
		Size:  position.Size,
		Price: position.Price,
	}, nil
}

// toGlobalLeg rebuilds one leg of a parent order from the detail parameters.
func toGlobalLeg(param bitflyerapi.ParentOrderParameter) (types.SingleOrder, error) {
	side, err := toGlobalSide(param.Side)
	if err != nil {
		return nil, err
	}

	switch param.ConditionType {
	case bitflyerapi.ConditionTypeMarket:
		return types.NewMarketOrder(side, param.Size)
	case bitflyerapi.ConditionTypeLimit:
		return types.NewLimitOrder(side, param.Price, param.Size)
	case bitflyerapi.ConditionTypeStop:
		return types.NewStopOrder(side, param.TriggerPrice, param.Size)
	case bitflyerapi.ConditionTypeStopLimit:
		return types.NewStopLimitOrder(side, param.TriggerPrice, param.Price, param.Size)
	}

	return nil, &UnsupportedOrderKindError{Kind: string(param.ConditionType)}
}
