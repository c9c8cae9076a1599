package portfolio

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingpkg "github.com/aristath/holdings-dashboard/internal/testing"
)

type stubPrices struct {
	prices map[string]*float64
	calls  [][]string
}

func (s *stubPrices) Prices(_ context.Context, symbols []string) map[string]*float64 {
	s.calls = append(s.calls, symbols)
	return s.prices
}

func price(v float64) *float64 { return &v }

func newTestService(t *testing.T, prices PriceProvider) *Service {
	t.Helper()
	db := testingpkg.NewTestDB(t, "dashboard")

	log := zerolog.Nop()
	return NewService(NewHoldingRepository(db.Conn(), log), NewWatchlistRepository(db.Conn(), log), prices, log)
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BRK.B", NormalizeSymbol("  brk.b "))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestEnrichedHoldings_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	prices := &stubPrices{prices: map[string]*float64{"TSLA": price(450)}}
	svc := newTestService(t, prices)

	for _, s := range []string{"TSLA", "AAPL", "GOOG"} {
		require.NoError(t, svc.AddHolding(ctx, s, 1, 100))
	}

	out, err := svc.EnrichedHoldings(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"TSLA", "AAPL", "GOOG"}, []string{out[0].Symbol, out[1].Symbol, out[2].Symbol})
	assert.Equal(t, [][]string{{"TSLA", "AAPL", "GOOG"}}, prices.calls)

	require.NotNil(t, out[0].PnL)
	assert.InDelta(t, 350, *out[0].PnL, 1e-9)
	assert.Nil(t, out[1].CurrentPrice)
	assert.InDelta(t, 100, out[1].CostBasis, 1e-9)
}

func TestEnrichedHoldings_NoHoldingsSkipsPriceLookup(t *testing.T) {
	prices := &stubPrices{}
	svc := newTestService(t, prices)

	out, err := svc.EnrichedHoldings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
	assert.Empty(t, prices.calls)
}

func TestAddHolding_Validation(t *testing.T) {
	svc := newTestService(t, &stubPrices{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddHolding(ctx, "", 1, 1), ErrInvalidHolding)
	assert.ErrorIs(t, svc.AddHolding(ctx, "X", 0, 1), ErrInvalidHolding)
	assert.ErrorIs(t, svc.AddHolding(ctx, "X", 1, 0), ErrInvalidHolding)
	assert.ErrorIs(t, svc.AddHolding(ctx, "X", math.NaN(), 1), ErrInvalidHolding)

	require.NoError(t, svc.AddHolding(ctx, "x", 1, 1))
	assert.ErrorIs(t, svc.AddHolding(ctx, "X", 1, 1), ErrHoldingExists)
}

func TestWatchlist_AddRemove(t *testing.T) {
	svc := newTestService(t, &stubPrices{})
	ctx := context.Background()

	require.NoError(t, svc.AddToWatchlist(ctx, "spy"))
	assert.ErrorIs(t, svc.AddToWatchlist(ctx, "SPY"), ErrAlreadyWatched)
	assert.ErrorIs(t, svc.AddToWatchlist(ctx, " "), ErrInvalidSymbol)

	list, err := svc.Watchlist(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"SPY"}, list)

	require.NoError(t, svc.RemoveFromWatchlist(ctx, "spy"))
	require.NoError(t, svc.RemoveFromWatchlist(ctx, "spy"))

	list, err = svc.Watchlist(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
