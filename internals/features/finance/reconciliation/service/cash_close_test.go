// file: internals/features/finance/reconciliation/service/cash_close_test.go
package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reconModel "sekolahku_backend/internals/features/finance/reconciliation/model"
)

func totals(cash, card, bank, wallet string) ChannelTotals {
	return ChannelTotals{
		reconModel.ChannelCash:         decimal.RequireFromString(cash),
		reconModel.ChannelCardTerminal: decimal.RequireFromString(card),
		reconModel.ChannelBankTransfer: decimal.RequireFromString(bank),
		reconModel.ChannelMobileWallet: decimal.RequireFromString(wallet),
	}
}

func TestCashTotal(t *testing.T) {
	counts := map[int64]int64{
		100000: 3, // 300.000
		50000:  2, // 100.000
		2000:   5, // 10.000
		1000:   0, // diabaikan
		500:    -1, // qty negatif diabaikan
	}
	assert.Equal(t, "410000.00", CashTotal(counts).StringFixed(2))
	assert.True(t, CashTotal(nil).IsZero())
}

func TestComputeVariance_AllMatch(t *testing.T) {
	declared := totals("410000", "150000", "75000", "30000")
	system := totals("410000", "150000", "75000", "30000")

	res := ComputeVariance(declared, system)

	assert.Equal(t, reconModel.ReconciliationStatusMatch, res.Status)
	assert.True(t, res.Total.IsZero())
	for _, ch := range reconModel.AllChannels {
		assert.True(t, res.Variance[ch].IsZero(), "channel %s", ch)
	}
}

func TestComputeVariance_OffsettingDeltasStillDivergent(t *testing.T) {
	// kas lebih 1, kartu kurang 1 → total nol tapi per-channel tidak nol.
	// Auditor harus melihat DIVERGENT, bukan MATCH semu.
	declared := totals("410001", "149999", "75000", "30000")
	system := totals("410000", "150000", "75000", "30000")

	res := ComputeVariance(declared, system)

	assert.True(t, res.Total.IsZero())
	assert.Equal(t, reconModel.ReconciliationStatusDivergent, res.Status)
	assert.Equal(t, "1.00", res.Variance[reconModel.ChannelCash].StringFixed(2))
	assert.Equal(t, "-1.00", res.Variance[reconModel.ChannelCardTerminal].StringFixed(2))
}

func TestComputeVariance_ShortCash(t *testing.T) {
	declared := totals("400000", "150000", "75000", "30000")
	system := totals("410000", "150000", "75000", "30000")

	res := ComputeVariance(declared, system)

	assert.Equal(t, reconModel.ReconciliationStatusDivergent, res.Status)
	assert.Equal(t, "-10000.00", res.Variance[reconModel.ChannelCash].StringFixed(2))
	assert.Equal(t, "-10000.00", res.Total.StringFixed(2))
}

func TestComputeVariance_MissingChannelTreatedAsZero(t *testing.T) {
	// declared cuma mengisi kas; channel lain default nol
	declared := ChannelTotals{
		reconModel.ChannelCash: decimal.RequireFromString("410000"),
	}
	system := totals("410000", "0", "0", "0")

	res := ComputeVariance(declared, system)

	require.Len(t, res.Variance, len(reconModel.AllChannels))
	assert.Equal(t, reconModel.ReconciliationStatusMatch, res.Status)
}

func TestNewChannelTotals_CoversAllChannels(t *testing.T) {
	tt := NewChannelTotals()
	require.Len(t, tt, len(reconModel.AllChannels))
	for _, ch := range reconModel.AllChannels {
		v, ok := tt[ch]
		require.True(t, ok)
		assert.True(t, v.IsZero())
	}
}
