package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bitflyer/pkg/types"
)

func TestOrderFlags_ChildOrder(t *testing.T) {
	tests := []struct {
		name     string
		flags    orderFlags
		expected types.ChildOrder
		wantErr  bool
	}{
		{
			name:     "market",
			flags:    orderFlags{side: "sell", orderType: "market", size: 0.5},
			expected: types.MarketOrder{Side: types.SideTypeSell, Size: 0.5},
		},
		{
			name:     "limit",
			flags:    orderFlags{side: "BUY", orderType: "LIMIT", price: 500000, size: 0.01},
			expected: types.LimitOrder{Side: types.SideTypeBuy, Price: 500000, Size: 0.01},
		},
		{
			name:     "stop",
			flags:    orderFlags{side: "sell", orderType: "stop", triggerPrice: 480000, size: 0.01},
			expected: types.StopOrder{Side: types.SideTypeSell, TriggerPrice: 480000, Size: 0.01},
		},
		{
			name:    "limit without price",
			flags:   orderFlags{side: "buy", orderType: "limit", size: 0.01},
			wantErr: true,
		},
		{
			name:    "unknown side",
			flags:   orderFlags{side: "hold", orderType: "market", size: 1},
			wantErr: true,
		},
		{
			name:    "unknown type",
			flags:   orderFlags{side: "buy", orderType: "trail", size: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := tt.flags.ChildOrder()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, order)
		})
	}
}

func TestLoadConfig_Default(t *testing.T) {
	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []types.ProductCode{types.ProductBTCJPYPerp}, c.Bitflyer.GetProductCodes())
}
