package domain

import "math"

// EdgeStatus indica si la línea apostable tiene ventaja contra la de referencia.
type EdgeStatus string

const (
	EdgePositive EdgeStatus = "positiveEdge"
	EdgeNegative EdgeStatus = "negativeEdge"
)

// KellyInput compara una línea apostable contra una línea "sharp" de referencia.
type KellyInput struct {
	BettableOdds  int
	ReferenceOdds int     // se toma como proxy de la probabilidad real
	Bankroll      float64
	MaxBetPct     float64 // tope por apuesta, % del bankroll (0, 100]
	KellyFraction float64 // 1 = Kelly completo, 0.25 = cuarto de Kelly
}

// KellyResult es la recomendación de stake.
type KellyResult struct {
	Status           EdgeStatus
	EdgePct          float64 // puntos porcentuales de ventaja
	TrueProbPct      float64
	ImpliedProbPct   float64
	FullKellyPct     float64 // f* en % del bankroll
	FullKellyStake   float64
	MaxBet           float64
	RecommendedStake float64
	ExpectedValue    float64 // solo para mostrar
}

// SolveKelly calcula edge y stake de Kelly fraccional.
//
//	p     = implied(reference) / 100
//	edge  = p - implied(bettable) / 100
//	b     = decimal(bettable) - 1
//	f*    = (b×p - q) / b
//	stake = min(bankroll×f*, bankroll×maxBetPct/100) × kellyFraction
//
// Edge <= 0 no es un error: devuelve EdgeNegative con stake 0.
// Bankroll <= 0, odds inválidas o fracciones fuera de rango sí lo son.
func SolveKelly(in KellyInput) (KellyResult, error) {
	if !IsValidAmericanOdds(in.BettableOdds) {
		return KellyResult{}, invalid("bettable_odds", ErrInvalidOdds)
	}
	if !IsValidAmericanOdds(in.ReferenceOdds) {
		return KellyResult{}, invalid("reference_odds", ErrInvalidOdds)
	}
	if in.Bankroll <= 0 {
		return KellyResult{}, invalid("bankroll", ErrNonPositiveBankroll)
	}
	if in.MaxBetPct <= 0 || in.MaxBetPct > 100 {
		return KellyResult{}, invalid("max_bet_pct", ErrInvalidFraction)
	}
	if in.KellyFraction <= 0 || in.KellyFraction > 1 {
		return KellyResult{}, invalid("kelly_fraction", ErrInvalidFraction)
	}

	p := ImpliedProbabilityPct(in.ReferenceOdds) / 100
	implied := ImpliedProbabilityPct(in.BettableOdds) / 100
	edge := p - implied

	res := KellyResult{
		Status:         EdgeNegative,
		EdgePct:        edge * 100,
		TrueProbPct:    p * 100,
		ImpliedProbPct: implied * 100,
		MaxBet:         in.Bankroll * in.MaxBetPct / 100,
	}
	if edge <= 0 {
		return res, nil
	}

	b := AmericanToDecimal(in.BettableOdds) - 1
	q := 1 - p
	fullKelly := (b*p - q) / b

	res.Status = EdgePositive
	res.FullKellyPct = fullKelly * 100
	res.FullKellyStake = in.Bankroll * fullKelly

	stake := math.Min(res.FullKellyStake, res.MaxBet) * in.KellyFraction
	stake = math.Max(0, math.Min(stake, res.MaxBet))

	res.RecommendedStake = stake
	res.ExpectedValue = stake * (p*b - q)
	return res, nil
}
