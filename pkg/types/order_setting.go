package types

import "github.com/pkg/errors"

// DefaultExpireMinutes is 30 days, the longest expiry most venues accept.
const DefaultExpireMinutes = 43200

// OrderSetting is attached to an order at submission time.
// It is a value type; copies never alias each other.
type OrderSetting struct {
	ExpireMinutes int         `json:"expireMinutes"`
	TimeInForce   TimeInForce `json:"timeInForce"`
}

var DefaultOrderSetting = OrderSetting{
	ExpireMinutes: DefaultExpireMinutes,
	TimeInForce:   TimeInForceGTC,
}

func NewOrderSetting(expireMinutes int, timeInForce TimeInForce) (OrderSetting, error) {
	s := OrderSetting{
		ExpireMinutes: expireMinutes,
		TimeInForce:   timeInForce,
	}

	return s, s.Validate()
}

func (s OrderSetting) Validate() error {
	if s.ExpireMinutes < 1 {
		return errors.Errorf("expire minutes must be at least 1, got %d", s.ExpireMinutes)
	}

	return s.TimeInForce.Validate()
}
