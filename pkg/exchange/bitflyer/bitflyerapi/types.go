package bitflyerapi

type SideType string

const (
	SideTypeBuy  SideType = "BUY"
	SideTypeSell SideType = "SELL"
)

type ChildOrderType string

const (
	ChildOrderTypeMarket ChildOrderType = "MARKET"
	ChildOrderTypeLimit  ChildOrderType = "LIMIT"
	ChildOrderTypeStop   ChildOrderType = "STOP"
)

// ConditionType is the order type of one leg of a parent order.
type ConditionType string

const (
	ConditionTypeMarket    ConditionType = "MARKET"
	ConditionTypeLimit     ConditionType = "LIMIT"
	ConditionTypeStop      ConditionType = "STOP"
	ConditionTypeStopLimit ConditionType = "STOP_LIMIT"
	ConditionTypeTrail     ConditionType = "TRAIL"
)

// OrderMethod is the strategy of a parent order.
type OrderMethod string

const (
	OrderMethodSimple OrderMethod = "SIMPLE"
	OrderMethodIFD    OrderMethod = "IFD"
	OrderMethodOCO    OrderMethod = "OCO"
	OrderMethodIFDOCO OrderMethod = "IFDOCO"
)

type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

// OrderState applies to both child and parent orders.
type OrderState string

const (
	OrderStateActive    OrderState = "ACTIVE"
	OrderStateCompleted OrderState = "COMPLETED"
	OrderStateCanceled  OrderState = "CANCELED"
	OrderStateExpired   OrderState = "EXPIRED"
	OrderStateRejected  OrderState = "REJECTED"
)
