package bitflyer

import (
	"context"

	"github.com/pkg/errors"

	"github.com/c9s/bitflyer/pkg/exchange/bitflyer/bitflyerapi"
	"github.com/c9s/bitflyer/pkg/types"
)

// ParentOrder is an active parent order rebuilt from the exchange.
// Logic is nil when the order could not be rebuilt, and Err says why.
type ParentOrder struct {
	ParentOrderID   string
	ProductCode     string
	ParentOrderType string
	State           bitflyerapi.OrderState

	Logic types.OrderWithLogic
	Err   error
}

// QueryParentOrders lists the active parent orders and rebuilds their order logic.
// Each order other than the listing itself costs one detail request.
// A failed detail request only affects its own entry.
func (e *Exchange) QueryParentOrders(ctx context.Context, code types.ProductCode) ([]ParentOrder, error) {
	productCode, err := e.toLocalProductCode(code)
	if err != nil {
		return nil, err
	}

	orders, err := e.client.NewGetParentOrdersRequest().ProductCode(productCode).Do(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ParentOrder, 0, len(orders))
	for _, order := range orders {
		entry := ParentOrder{
			ParentOrderID:   order.ParentOrderID,
			ProductCode:     order.ProductCode,
			ParentOrderType: order.ParentOrderType,
			State:           order.ParentOrderState,
		}

		entry.Logic, entry.Err = e.reconstructParentOrder(ctx, order)
		if entry.Err != nil {
			entry.Logic = nil
			log.WithError(entry.Err).Warnf("unable to rebuild parent order %s", order.ParentOrderID)
		}

		result = append(result, entry)
	}

	return result, nil
}

func (e *Exchange) reconstructParentOrder(ctx context.Context, order bitflyerapi.ParentOrder) (types.OrderWithLogic, error) {
	switch order.ParentOrderType {
	case string(bitflyerapi.ConditionTypeStop):
		side, err := toGlobalSide(order.Side)
		if err != nil {
			return nil, err
		}

		detail, err := e.queryParentOrderDetail(ctx, order.ParentOrderID)
		triggerPrice := resolveTriggerPrice(order.ParentOrderID, detail, err, order.Price)

		// the listed price of a stop order is usually 0, so the resolved trigger
		// price is reported as is instead of going through NewStopLogic.
		return types.StopLogic{Side: side, TriggerPrice: triggerPrice, Size: order.Size}, nil

	case string(bitflyerapi.OrderMethodIFD), string(bitflyerapi.OrderMethodOCO), string(bitflyerapi.OrderMethodIFDOCO):
		detail, err := e.queryParentOrderDetail(ctx, order.ParentOrderID)
		if err != nil {
			return nil, err
		}

		return toGlobalOrderLogic(bitflyerapi.OrderMethod(order.ParentOrderType), detail.Parameters)
	}

	return nil, &UnsupportedOrderKindError{Kind: order.ParentOrderType}
}

func (e *Exchange) queryParentOrderDetail(ctx context.Context, parentOrderID string) (*bitflyerapi.ParentOrderDetail, error) {
	return e.client.NewGetParentOrderRequest().ParentOrderID(parentOrderID).Do(ctx)
}

// resolveTriggerPrice picks the trigger price of the first detail parameter.
// When the detail could not be fetched, or carries no trigger price, the listed
// price is kept and the failure is only logged.
func resolveTriggerPrice(parentOrderID string, detail *bitflyerapi.ParentOrderDetail, err error, fallback float64) float64 {
	if err != nil {
		log.WithError(err).Warnf("unable to query parent order %s, using listed price %f as trigger price", parentOrderID, fallback)
		return fallback
	}

	if detail == nil || len(detail.Parameters) == 0 || detail.Parameters[0].TriggerPrice == 0 {
		log.Warnf("parent order %s has no trigger price, using listed price %f", parentOrderID, fallback)
		return fallback
	}

	return detail.Parameters[0].TriggerPrice
}

// toGlobalOrderLogic rebuilds a composite order from its legs, which are
// listed in submission order.
func toGlobalOrderLogic(method bitflyerapi.OrderMethod, params []bitflyerapi.ParentOrderParameter) (types.OrderWithLogic, error) {
	legs := make([]types.SingleOrder, 0, len(params))
	for _, param := range params {
		leg, err := toGlobalLeg(param)
		if err != nil {
			return nil, err
		}

		legs = append(legs, leg)
	}

	switch method {
	case bitflyerapi.OrderMethodIFD:
		if err := expectLegs(method, legs, 2); err != nil {
			return nil, err
		}

		return types.NewIFD(legs[0], legs[1])

	case bitflyerapi.OrderMethodOCO:
		if err := expectLegs(method, legs, 2); err != nil {
			return nil, err
		}

		return types.NewOCO(legs[0], legs[1])

	case bitflyerapi.OrderMethodIFDOCO:
		if err := expectLegs(method, legs, 3); err != nil {
			return nil, err
		}

		oco, err := types.NewOCO(legs[1], legs[2])
		if err != nil {
			return nil, err
		}

		return types.NewIFO(legs[0], oco)

	case bitflyerapi.OrderMethodSimple:
		if err := expectLegs(method, legs, 1); err != nil {
			return nil, err
		}

		stop, ok := legs[0].(types.StopOrder)
		if !ok {
			return nil, &UnsupportedOrderKindError{Kind: string(params[0].ConditionType)}
		}

		return types.NewStopLogic(stop.Side, stop.TriggerPrice, stop.Size)
	}

	return nil, &UnsupportedOrderKindError{Kind: string(method)}
}

func expectLegs(method bitflyerapi.OrderMethod, legs []types.SingleOrder, n int) error {
	if len(legs) != n {
		return errors.Errorf("%s order expects %d legs, got %d", method, n, len(legs))
	}

	return nil
}
