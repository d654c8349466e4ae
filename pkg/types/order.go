package types

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInvalidSize = errors.New("order size must be positive")
var ErrInvalidPrice = errors.New("order price must be positive")

// Order is the closed set of orders a client can submit.
// The set is sealed: only the types in this package implement it.
type Order interface {
	Validate() error

	isOrder()
}

// SingleOrder is one order leg.
type SingleOrder interface {
	Order

	OrderSide() SideType
	OrderSize() float64

	isSingleOrder()
}

// ChildOrder is a single order that can be sent directly without any condition.
// StopLimitOrder is not a ChildOrder, it is only usable as a leg.
type ChildOrder interface {
	SingleOrder

	isChildOrder()
}

type MarketOrder struct {
	Side SideType `json:"side"`
	Size float64  `json:"size"`
}

func NewMarketOrder(side SideType, size float64) (MarketOrder, error) {
	o := MarketOrder{Side: side, Size: size}
	return o, o.Validate()
}

func (o MarketOrder) Validate() error {
	return validateLeg(o.Side, o.Size)
}

func (o MarketOrder) OrderSide() SideType { return o.Side }
func (o MarketOrder) OrderSize() float64  { return o.Size }

func (o MarketOrder) String() string {
	return fmt.Sprintf("MARKET %s %f", o.Side, o.Size)
}

func (MarketOrder) isOrder()       {}
func (MarketOrder) isSingleOrder() {}
func (MarketOrder) isChildOrder()  {}

type LimitOrder struct {
	Side  SideType `json:"side"`
	Price float64  `json:"price"`
	Size  float64  `json:"size"`
}

func NewLimitOrder(side SideType, price, size float64) (LimitOrder, error) {
	o := LimitOrder{Side: side, Price: price, Size: size}
	return o, o.Validate()
}

func (o LimitOrder) Validate() error {
	if err := validateLeg(o.Side, o.Size); err != nil {
		return err
	}

	return validatePrice("price", o.Price)
}

func (o LimitOrder) OrderSide() SideType { return o.Side }
func (o LimitOrder) OrderSize() float64  { return o.Size }

func (o LimitOrder) String() string {
	return fmt.Sprintf("LIMIT %s %f @ %f", o.Side, o.Size, o.Price)
}

func (LimitOrder) isOrder()       {}
func (LimitOrder) isSingleOrder() {}
func (LimitOrder) isChildOrder()  {}

// StopOrder becomes a market order once the trigger price is touched.
type StopOrder struct {
	Side         SideType `json:"side"`
	TriggerPrice float64  `json:"triggerPrice"`
	Size         float64  `json:"size"`
}

func NewStopOrder(side SideType, triggerPrice, size float64) (StopOrder, error) {
	o := StopOrder{Side: side, TriggerPrice: triggerPrice, Size: size}
	return o, o.Validate()
}

func (o StopOrder) Validate() error {
	if err := validateLeg(o.Side, o.Size); err != nil {
		return err
	}

	return validatePrice("trigger price", o.TriggerPrice)
}

func (o StopOrder) OrderSide() SideType { return o.Side }
func (o StopOrder) OrderSize() float64  { return o.Size }

func (o StopOrder) String() string {
	return fmt.Sprintf("STOP %s %f trigger %f", o.Side, o.Size, o.TriggerPrice)
}

func (StopOrder) isOrder()       {}
func (StopOrder) isSingleOrder() {}
func (StopOrder) isChildOrder()  {}

// StopLimitOrder becomes a limit order at Price once the trigger price is touched.
type StopLimitOrder struct {
	Side         SideType `json:"side"`
	TriggerPrice float64  `json:"triggerPrice"`
	Price        float64  `json:"price"`
	Size         float64  `json:"size"`
}

func NewStopLimitOrder(side SideType, triggerPrice, price, size float64) (StopLimitOrder, error) {
	o := StopLimitOrder{Side: side, TriggerPrice: triggerPrice, Price: price, Size: size}
	return o, o.Validate()
}

func (o StopLimitOrder) Validate() error {
	if err := validateLeg(o.Side, o.Size); err != nil {
		return err
	}

	if err := validatePrice("trigger price", o.TriggerPrice); err != nil {
		return err
	}

	return validatePrice("price", o.Price)
}

func (o StopLimitOrder) OrderSide() SideType { return o.Side }
func (o StopLimitOrder) OrderSize() float64  { return o.Size }

func (o StopLimitOrder) String() string {
	return fmt.Sprintf("STOP_LIMIT %s %f @ %f trigger %f", o.Side, o.Size, o.Price, o.TriggerPrice)
}

func (StopLimitOrder) isOrder()       {}
func (StopLimitOrder) isSingleOrder() {}

func validateLeg(side SideType, size float64) error {
	if err := side.Validate(); err != nil {
		return err
	}

	if size <= 0 {
		return errors.Wrapf(ErrInvalidSize, "size %f", size)
	}

	return nil
}

func validatePrice(name string, price float64) error {
	if price <= 0 {
		return errors.Wrapf(ErrInvalidPrice, "%s %f", name, price)
	}

	return nil
}
