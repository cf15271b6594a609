package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/query"
)

// newFlagSet crea el FlagSet de un subcomando. Los errores se devuelven al caller.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// Los flags numéricos opcionales se declaran como string: "" = no indicado.

func optFloat(name, s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return &v, nil
}

func optInt(name, s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "+"))
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return query.IntPtr(v), nil
}

func optDecimal(name, s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return &d, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optStatus(s string) (*domain.WagerStatus, error) {
	if s == "" {
		return nil, nil
	}
	st, ok := domain.ParseWagerStatus(s)
	if !ok {
		return nil, fmt.Errorf("-status: %w: %q", domain.ErrInvalidStatus, s)
	}
	return query.StatusPtr(st), nil
}

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("-%s is required", name)
	}
	return nil
}
