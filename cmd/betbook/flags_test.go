package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/betbook/internal/domain"
)

func TestOptionalFlags(t *testing.T) {
	f, err := optFloat("min", "")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = optFloat("min", " 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, *f)

	_, err = optFloat("min", "abc")
	assert.Error(t, err)

	i, err := optInt("odds-min", "+150")
	require.NoError(t, err)
	assert.Equal(t, 150, *i)

	d, err := optDecimal("deposited", "100.10")
	require.NoError(t, err)
	assert.Equal(t, "100.1", d.String())

	assert.Nil(t, optString(""))
	assert.Equal(t, "card", *optString("card"))
}

func TestOptStatus(t *testing.T) {
	st, err := optStatus("won")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWon, *st)

	_, err = optStatus("cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestWagerFromFlags(t *testing.T) {
	w, err := wagerFromFlags("2024-03-01", "Lakers ML", "+150", 100, "won", "")
	require.NoError(t, err)
	assert.Equal(t, 150, w.AmericanOdds)
	assert.Equal(t, domain.StatusWon, w.Status)
	assert.Nil(t, w.ProfitAmount)

	_, err = wagerFromFlags("2024-03-01", "", "-100", 100, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidOdds)
}

func TestApplyEdit(t *testing.T) {
	lost := domain.Wager{ID: "w1", Date: "2024-03-02", AmericanOdds: -110, StakeAmount: 110, Status: domain.StatusLost}

	w, err := applyEdit(lost, editFlags{desc: "Celtics -3.5", stake: "55"})
	require.NoError(t, err)
	assert.Equal(t, "Celtics -3.5", w.Description)
	assert.Equal(t, 55.0, w.StakeAmount)
	assert.Equal(t, domain.StatusLost, w.Status)

	w, err = applyEdit(lost, editFlags{status: "won"})
	require.NoError(t, err)
	require.NotNil(t, w.ProfitAmount)
	assert.InDelta(t, 100.0, *w.ProfitAmount, 1e-9)

	w, err = applyEdit(lost, editFlags{status: "won", profit: "90"})
	require.NoError(t, err)
	assert.Equal(t, 90.0, *w.ProfitAmount)
}

func TestApplyEdit_ProfitWithoutWin(t *testing.T) {
	won := domain.Wager{ID: "w1", Date: "2024-03-01", AmericanOdds: 150, StakeAmount: 100, Status: domain.StatusWon, ProfitAmount: domain.Float64Ptr(150)}
	lost := domain.Wager{ID: "w2", Date: "2024-03-02", AmericanOdds: -110, StakeAmount: 110, Status: domain.StatusLost}

	_, err := applyEdit(won, editFlags{status: "lost", profit: "5"})
	assert.ErrorIs(t, err, domain.ErrProfitWithoutWin)

	_, err = applyEdit(lost, editFlags{profit: "5"})
	assert.ErrorIs(t, err, domain.ErrProfitWithoutWin)

	_, err = applyEdit(won, editFlags{status: "push", profit: "0"})
	assert.ErrorIs(t, err, domain.ErrProfitWithoutWin)
}
