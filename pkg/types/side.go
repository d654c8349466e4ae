package types

import (
	"strings"

	"github.com/pkg/errors"
)

// SideType define side type of order
type SideType string

const (
	SideTypeBuy  = SideType("BUY")
	SideTypeSell = SideType("SELL")
)

var ErrInvalidSide = errors.New("invalid side type")

func StrToSideType(s string) (side SideType, err error) {
	switch strings.ToLower(s) {
	case "buy":
		side = SideTypeBuy

	case "sell":
		side = SideTypeSell

	default:
		err = errors.Wrapf(ErrInvalidSide, "%q", s)
	}

	return side, err
}

func (side SideType) Reverse() SideType {
	switch side {
	case SideTypeBuy:
		return SideTypeSell

	case SideTypeSell:
		return SideTypeBuy
	}

	return side
}

func (side SideType) Validate() error {
	switch side {
	case SideTypeBuy, SideTypeSell:
		return nil
	}

	return errors.Wrapf(ErrInvalidSide, "%q", string(side))
}

func (side SideType) String() string {
	return string(side)
}
