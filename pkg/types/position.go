package types

import "fmt"

// Position is an open derivative position as reported by the exchange.
// It is rebuilt from the exchange on every query.
type Position struct {
	Side  SideType `json:"side"`
	Size  float64  `json:"size"`
	Price float64  `json:"price"`
}

func (p Position) String() string {
	return fmt.Sprintf("POSITION %s %f @ %f", p.Side, p.Size, p.Price)
}

type PositionSlice []Position

// NetSize returns the signed sum of all position sizes, buys positive and sells negative.
func (s PositionSlice) NetSize() (size float64) {
	for _, p := range s {
		switch p.Side {
		case SideTypeBuy:
			size += p.Size
		case SideTypeSell:
			size -= p.Size
		}
	}

	return size
}
