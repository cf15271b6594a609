package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOdds         = errors.New("invalid american odds")
	ErrNonPositiveStake    = errors.New("stake must be positive")
	ErrNonPositiveBankroll = errors.New("bankroll must be positive")
	ErrInvalidFraction     = errors.New("fraction out of range")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
	ErrInvalidStatus       = errors.New("invalid wager status")
	ErrProfitWithoutWin    = errors.New("profit is only recorded for won wagers")
)

// ValidationError indica que un input no es computable.
// El caller lo usa para mostrar un mensaje a nivel de campo; nunca es un fallo transitorio.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// ValidateWager comprueba un registro antes de persistirlo.
func ValidateWager(w Wager) error {
	if !IsValidDay(w.Date) {
		return invalid("date", ErrInvalidDate)
	}
	if !IsValidAmericanOdds(w.AmericanOdds) {
		return invalid("american_odds", ErrInvalidOdds)
	}
	if w.StakeAmount <= 0 {
		return invalid("stake_amount", ErrNonPositiveStake)
	}
	if _, ok := ParseWagerStatus(string(w.Status)); !ok {
		return invalid("status", ErrInvalidStatus)
	}
	if w.ProfitAmount != nil && w.Status != StatusWon {
		return invalid("profit_amount", ErrProfitWithoutWin)
	}
	return nil
}
