package domain

import "math"

// HedgeInput describe la apuesta original y las odds del lado contrario.
type HedgeInput struct {
	OriginalStake float64
	OriginalOdds  int
	HedgeOdds     int
}

// HedgeResult es el plan de cobertura para una apuesta abierta.
type HedgeResult struct {
	HedgeStake         float64
	OriginalSideReturn float64 // payout total si gana la apuesta original
	HedgeSideReturn    float64 // payout total si gana la cobertura
	GuaranteedProfit   float64 // min(payouts) - (S0 + hedgeStake): el peor de los dos netos
	MaxPossibleProfit  float64
	ProfitMarginPct    float64
	IsProfitable       bool

	originalStake float64
}

// TotalInvested devuelve stake original + stake de cobertura.
func (h HedgeResult) TotalInvested() float64 {
	return h.originalStake + h.HedgeStake
}

// Outcomes devuelve el neto si gana el lado original y si gana la cobertura.
func (h HedgeResult) Outcomes() (ifOriginalWins, ifHedgeWins float64) {
	invested := h.TotalInvested()
	return h.OriginalSideReturn - invested, h.HedgeSideReturn - invested
}

// SolveHedge calcula el stake de cobertura para el lado contrario.
//
//	d0 = decimal(originalOdds), dH = decimal(hedgeOdds)
//	originalSideReturn = S0 × d0
//	hedgeStake         = (originalSideReturn - S0) / (dH - 1)
//	hedgeSideReturn    = hedgeStake × dH
//	guaranteedProfit   = min(returns) - (S0 + hedgeStake)
//
// Los dos netos no tienen por qué coincidir: Outcomes() devuelve cada uno.
//
// Devuelve *ValidationError si el stake no es positivo, alguna odds es inválida
// o dH <= 1 (cobertura sin multiplicador).
func SolveHedge(in HedgeInput) (HedgeResult, error) {
	if in.OriginalStake <= 0 {
		return HedgeResult{}, invalid("original_stake", ErrNonPositiveStake)
	}
	if !IsValidAmericanOdds(in.OriginalOdds) {
		return HedgeResult{}, invalid("original_odds", ErrInvalidOdds)
	}
	if !IsValidAmericanOdds(in.HedgeOdds) {
		return HedgeResult{}, invalid("hedge_odds", ErrInvalidOdds)
	}

	d0 := AmericanToDecimal(in.OriginalOdds)
	dH := AmericanToDecimal(in.HedgeOdds)
	if dH <= 1 {
		return HedgeResult{}, invalid("hedge_odds", ErrInvalidOdds)
	}

	s0 := in.OriginalStake
	originalReturn := s0 * d0
	hedgeStake := (originalReturn - s0) / (dH - 1)
	hedgeReturn := hedgeStake * dH
	invested := s0 + hedgeStake

	guaranteed := math.Min(originalReturn, hedgeReturn) - invested

	return HedgeResult{
		HedgeStake:         hedgeStake,
		OriginalSideReturn: originalReturn,
		HedgeSideReturn:    hedgeReturn,
		GuaranteedProfit:   guaranteed,
		MaxPossibleProfit:  math.Max(originalReturn-hedgeStake, hedgeReturn-s0),
		ProfitMarginPct:    100 * guaranteed / invested,
		IsProfitable:       guaranteed > 0,
		originalStake:      s0,
	}, nil
}
