package types

// ProductCode identifies a tradable instrument independently of any exchange's naming.
// Each exchange client maps the codes it was configured for to its own wire symbols.
type ProductCode string

const (
	ProductBTCJPY     ProductCode = "BTCJPY"
	ProductETHJPY     ProductCode = "ETHJPY"
	ProductETHBTC     ProductCode = "ETHBTC"
	ProductBTCJPYPerp ProductCode = "BTCJPY-PERP"
)

func (p ProductCode) String() string {
	return string(p)
}
