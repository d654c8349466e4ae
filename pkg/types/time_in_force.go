package types

import "github.com/pkg/errors"

type TimeInForce string

const (
	// TimeInForceGTC keeps the order open until it is filled, canceled or expired.
	TimeInForceGTC TimeInForce = "GTC"

	// TimeInForceIOC fills what it can immediately and cancels the rest.
	TimeInForceIOC TimeInForce = "IOC"

	// TimeInForceFOK is filled completely at once or canceled.
	TimeInForceFOK TimeInForce = "FOK"
)

var ErrInvalidTimeInForce = errors.New("invalid time in force")

func (t TimeInForce) Validate() error {
	switch t {
	case TimeInForceGTC, TimeInForceIOC, TimeInForceFOK:
		return nil
	}

	return errors.Wrapf(ErrInvalidTimeInForce, "%q", string(t))
}
