package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// OrderWithLogic is a server-side conditional strategy made of one to three legs.
// Legs returns the legs in submission order; the order is significant.
type OrderWithLogic interface {
	Order

	Legs() []SingleOrder

	isOrderWithLogic()
}

// IFD (if-done) activates Post only after Pre is filled.
type IFD struct {
	Pre  SingleOrder `json:"pre"`
	Post SingleOrder `json:"post"`
}

func NewIFD(pre, post SingleOrder) (IFD, error) {
	o := IFD{Pre: pre, Post: post}
	return o, o.Validate()
}

func (o IFD) Legs() []SingleOrder {
	return []SingleOrder{o.Pre, o.Post}
}

func (o IFD) Validate() error {
	return validateLegs(o.Legs())
}

func (o IFD) String() string {
	return fmt.Sprintf("IFD(%v => %v)", o.Pre, o.Post)
}

func (IFD) isOrder()          {}
func (IFD) isOrderWithLogic() {}

// OCO (one-cancels-other) cancels the remaining leg once either leg is filled.
type OCO struct {
	Order      SingleOrder `json:"order"`
	OtherOrder SingleOrder `json:"otherOrder"`
}

func NewOCO(order, otherOrder SingleOrder) (OCO, error) {
	o := OCO{Order: order, OtherOrder: otherOrder}
	return o, o.Validate()
}

func (o OCO) Legs() []SingleOrder {
	return []SingleOrder{o.Order, o.OtherOrder}
}

func (o OCO) Validate() error {
	return validateLegs(o.Legs())
}

func (o OCO) String() string {
	return fmt.Sprintf("OCO(%v | %v)", o.Order, o.OtherOrder)
}

func (OCO) isOrder()          {}
func (OCO) isOrderWithLogic() {}

// IFO is an IFD whose post leg is an OCO.
type IFO struct {
	PreOrder  SingleOrder `json:"preOrder"`
	PostOrder OCO         `json:"postOrder"`
}

func NewIFO(preOrder SingleOrder, postOrder OCO) (IFO, error) {
	o := IFO{PreOrder: preOrder, PostOrder: postOrder}
	return o, o.Validate()
}

func (o IFO) Legs() []SingleOrder {
	return []SingleOrder{o.PreOrder, o.PostOrder.Order, o.PostOrder.OtherOrder}
}

func (o IFO) Validate() error {
	return validateLegs(o.Legs())
}

func (o IFO) String() string {
	return fmt.Sprintf("IFO(%v => %v)", o.PreOrder, o.PostOrder)
}

func (IFO) isOrder()          {}
func (IFO) isOrderWithLogic() {}

// StopLogic is a lone stop leg submitted as a conditional order.
type StopLogic struct {
	Side         SideType `json:"side"`
	TriggerPrice float64  `json:"triggerPrice"`
	Size         float64  `json:"size"`
}

func NewStopLogic(side SideType, triggerPrice, size float64) (StopLogic, error) {
	o := StopLogic{Side: side, TriggerPrice: triggerPrice, Size: size}
	return o, o.Validate()
}

func (o StopLogic) Legs() []SingleOrder {
	return []SingleOrder{o.StopOrder()}
}

func (o StopLogic) StopOrder() StopOrder {
	return StopOrder{Side: o.Side, TriggerPrice: o.TriggerPrice, Size: o.Size}
}

func (o StopLogic) Validate() error {
	return o.StopOrder().Validate()
}

func (o StopLogic) String() string {
	return fmt.Sprintf("STOP_LOGIC %s %f trigger %f", o.Side, o.Size, o.TriggerPrice)
}

func (StopLogic) isOrder()          {}
func (StopLogic) isOrderWithLogic() {}

func validateLegs(legs []SingleOrder) error {
	for i, leg := range legs {
		if leg == nil {
			return errors.Errorf("leg #%d is missing", i)
		}

		if err := leg.Validate(); err != nil {
			return errors.Wrapf(err, "leg #%d", i)
		}
	}

	return nil
}
