package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveKelly_PositiveEdge(t *testing.T) {
	// +100 (50%) contra referencia -150 (60%) → 10 pp de edge, f* = 0.2
	res, err := SolveKelly(KellyInput{
		BettableOdds:  100,
		ReferenceOdds: -150,
		Bankroll:      1000,
		MaxBetPct:     100,
		KellyFraction: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, EdgePositive, res.Status)
	assert.InDelta(t, 10.0, res.EdgePct, 1e-9)
	assert.InDelta(t, 20.0, res.FullKellyPct, 1e-9)
	assert.InDelta(t, 200.0, res.FullKellyStake, 1e-9)
	assert.InDelta(t, 200.0, res.RecommendedStake, 1e-9)
	assert.InDelta(t, 40.0, res.ExpectedValue, 1e-9)
	assert.Greater(t, res.RecommendedStake, 0.0)
}

func TestSolveKelly_CappedByMaxBet(t *testing.T) {
	res, err := SolveKelly(KellyInput{
		BettableOdds:  100,
		ReferenceOdds: -150,
		Bankroll:      1000,
		MaxBetPct:     5,
		KellyFraction: 1,
	})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, res.MaxBet, 1e-9)
	assert.InDelta(t, 50.0, res.RecommendedStake, 1e-9)
	assert.LessOrEqual(t, res.RecommendedStake, res.MaxBet)
}

func TestSolveKelly_FractionalKelly(t *testing.T) {
	res, err := SolveKelly(KellyInput{
		BettableOdds:  100,
		ReferenceOdds: -150,
		Bankroll:      1000,
		MaxBetPct:     50,
		KellyFraction: 0.25,
	})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.RecommendedStake, 1e-9)
}

func TestSolveKelly_NegativeEdge(t *testing.T) {
	res, err := SolveKelly(KellyInput{
		BettableOdds:  -150,
		ReferenceOdds: 100,
		Bankroll:      1000,
		MaxBetPct:     5,
		KellyFraction: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, EdgeNegative, res.Status)
	assert.Less(t, res.EdgePct, 0.0)
	assert.Equal(t, 0.0, res.RecommendedStake)
	assert.Equal(t, 0.0, res.ExpectedValue)
}

func TestSolveKelly_ZeroEdgeIsNegative(t *testing.T) {
	res, err := SolveKelly(KellyInput{BettableOdds: -110, ReferenceOdds: -110, Bankroll: 500, MaxBetPct: 5, KellyFraction: 1})
	require.NoError(t, err)
	assert.Equal(t, EdgeNegative, res.Status)
	assert.Equal(t, 0.0, res.RecommendedStake)
}

func TestSolveKelly_Validation(t *testing.T) {
	base := KellyInput{BettableOdds: 100, ReferenceOdds: -150, Bankroll: 1000, MaxBetPct: 5, KellyFraction: 1}

	bankroll := base
	bankroll.Bankroll = 0
	_, err := SolveKelly(bankroll)
	assert.True(t, errors.Is(err, ErrNonPositiveBankroll))

	odds := base
	odds.BettableOdds = 20
	_, err = SolveKelly(odds)
	assert.True(t, errors.Is(err, ErrInvalidOdds))

	ref := base
	ref.ReferenceOdds = -100
	_, err = SolveKelly(ref)
	assert.True(t, errors.Is(err, ErrInvalidOdds))

	pct := base
	pct.MaxBetPct = 120
	_, err = SolveKelly(pct)
	assert.True(t, errors.Is(err, ErrInvalidFraction))

	frac := base
	frac.KellyFraction = 0
	_, err = SolveKelly(frac)
	assert.True(t, errors.Is(err, ErrInvalidFraction))
}
