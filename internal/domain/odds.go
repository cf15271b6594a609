package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsValidAmericanOdds devuelve true si odds <= -101 o odds >= +100.
// +100 es el único valor frontera permitido; -100, 0 y todo (-100, 100) es inválido.
func IsValidAmericanOdds(odds int) bool {
	return odds < -100 || odds >= 100
}

// CalculateReturn devuelve SOLO la ganancia (sin el stake) de una apuesta ganada.
//
//	odds > 0: odds/100 × stake
//	odds < 0: 100/|odds| × stake
func CalculateReturn(odds int, stake float64) float64 {
	switch {
	case odds > 0:
		return float64(odds) / 100 * stake
	case odds < 0:
		return 100 / float64(-odds) * stake
	default:
		return 0
	}
}

// CalculatePayout devuelve stake + ganancia.
func CalculatePayout(odds int, stake float64) float64 {
	return stake + CalculateReturn(odds, stake)
}

// AmericanToDecimal convierte odds americanas a decimales.
// +150 → 2.50, -150 → 1.667
func AmericanToDecimal(odds int) float64 {
	switch {
	case odds > 0:
		return float64(odds)/100 + 1
	case odds < 0:
		return 100/float64(-odds) + 1
	default:
		return 0
	}
}

// DecimalToAmerican es la inversa de AmericanToDecimal, redondeada al entero más cercano.
// Devuelve 0 si decimal <= 1 (no hay odds americanas equivalentes).
func DecimalToAmerican(decimal float64) int {
	if decimal <= 1 {
		return 0
	}
	if decimal >= 2 {
		return int(math.Round((decimal - 1) * 100))
	}
	return int(math.Round(-100 / (decimal - 1)))
}

// ImpliedProbabilityPct devuelve la probabilidad implícita en porcentaje (0–100).
//
//	odds > 0: 100/(odds+100) × 100
//	odds < 0: |odds|/(|odds|+100) × 100
func ImpliedProbabilityPct(odds int) float64 {
	switch {
	case odds > 0:
		return 100 / float64(odds+100) * 100
	case odds < 0:
		abs := float64(-odds)
		return abs / (abs + 100) * 100
	default:
		return 0
	}
}

// FormatAmerican formatea odds con signo explícito: +150, -110.
func FormatAmerican(odds int) string {
	return fmt.Sprintf("%+d", odds)
}

// ParseAmerican acepta "+150", "150" o "-110" y valida el resultado.
func ParseAmerican(s string) (int, error) {
	odds, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "+"))
	if err != nil {
		return 0, invalid("odds", fmt.Errorf("%w: %q", ErrInvalidOdds, s))
	}
	if !IsValidAmericanOdds(odds) {
		return 0, invalid("odds", fmt.Errorf("%w: %d", ErrInvalidOdds, odds))
	}
	return odds, nil
}
