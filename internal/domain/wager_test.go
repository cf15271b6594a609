package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDay(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2024-03-01", true},
		{"2024-12-31", true},
		{"2024-02-29", true},
		{"2000-02-29", true},
		{"2023-02-29", false},
		{"1900-02-29", false},
		{"2024-02-30", false},
		{"2024-02-31", false},
		{"2024-04-31", false},
		{"2024-06-31", false},
		{"2024-04-30", true},
		{"2024-13-01", false},
		{"2024-00-10", false},
		{"2024-01-00", false},
		{"2024-1-01", false},
		{"2024/01/01", false},
		{"2024-01-0a", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidDay(tc.date))
		})
	}
}

func TestValidateWager_RejectsImpossibleDay(t *testing.T) {
	w := Wager{Date: "2024-02-31", AmericanOdds: 150, StakeAmount: 100, Status: StatusPending}
	assert.ErrorIs(t, ValidateWager(w), ErrInvalidDate)

	w.Date = "2024-02-29"
	assert.NoError(t, ValidateWager(w))
}
