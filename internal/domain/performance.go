package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PerformanceSummary agrega las métricas de un conjunto de apuestas.
// Todos los valores están en precisión completa; redondear solo al presentar (Round2).
type PerformanceSummary struct {
	TotalBets   int
	Won         int
	Lost        int
	Push        int
	Pending     int
	TotalStaked float64 // stakes de won + lost (denominador del ROI)
	WinRate     float64 // % sobre won+lost+push
	TotalPL     float64
	ROI         float64 // %
	UnitsWon    float64
}

// Completed devuelve el número de apuestas liquidadas.
func (p PerformanceSummary) Completed() int {
	return p.Won + p.Lost + p.Push
}

// NotebookSummary es el resumen de un notebook concreto.
type NotebookSummary struct {
	NotebookID string
	Summary    PerformanceSummary
}

// AccountSummary combina todos los notebooks de un usuario.
type AccountSummary struct {
	Notebooks []NotebookSummary
	Combined  PerformanceSummary
}

// BankrollProjection proyecta el bankroll a partir del P&L realizado y la exposición pendiente.
type BankrollProjection struct {
	Starting        float64
	Current         float64 // Starting + TotalPL
	PendingExposure float64 // stake en apuestas pendientes
	Available       float64 // Current - PendingExposure
	PotentialPayout float64 // payout total si todas las pendientes ganan
	BestCase        float64 // Current + ganancia de todas las pendientes
}

// WinRate devuelve 100 × won / (won+lost+push). Pending no cuenta.
func WinRate(wagers []Wager) float64 {
	completed, won := 0, 0
	for _, w := range wagers {
		if !w.Status.IsCompleted() {
			continue
		}
		completed++
		if w.Status == StatusWon {
			won++
		}
	}
	if completed == 0 {
		return 0
	}
	return 100 * float64(won) / float64(completed)
}

// TotalPL suma profit de las ganadas y resta stake de las perdidas.
// Un profit nulo en una ganada no contribuye.
func TotalPL(wagers []Wager) float64 {
	total := 0.0
	for _, w := range wagers {
		total += w.Net()
	}
	return total
}

// totalStaked suma el stake de won + lost. Push y pending quedan fuera.
func totalStaked(wagers []Wager) float64 {
	staked := 0.0
	for _, w := range wagers {
		if w.Status == StatusWon || w.Status == StatusLost {
			staked += w.StakeAmount
		}
	}
	return staked
}

// ROI devuelve 100 × TotalPL / stake(won+lost), 0 si no hay stake liquidado.
func ROI(wagers []Wager) float64 {
	staked := totalStaked(wagers)
	if staked == 0 {
		return 0
	}
	return 100 * TotalPL(wagers) / staked
}

// UnitsWon expresa el P&L en unidades. Devuelve 0 si unitSize <= 0.
func UnitsWon(totalPL, unitSize float64) float64 {
	if unitSize <= 0 {
		return 0
	}
	return totalPL / unitSize
}

// Summarize calcula todas las métricas en una sola pasada de conteo.
func Summarize(wagers []Wager, unitSize float64) PerformanceSummary {
	s := PerformanceSummary{TotalBets: len(wagers)}
	for _, w := range wagers {
		switch w.Status {
		case StatusWon:
			s.Won++
		case StatusLost:
			s.Lost++
		case StatusPush:
			s.Push++
		case StatusPending:
			s.Pending++
		}
	}
	s.TotalStaked = totalStaked(wagers)
	s.WinRate = WinRate(wagers)
	s.TotalPL = TotalPL(wagers)
	s.ROI = ROI(wagers)
	s.UnitsWon = UnitsWon(s.TotalPL, unitSize)
	return s
}

// SummarizeAccount resume cada notebook y el total combinado.
// Los notebooks se devuelven ordenados por ID para que el output sea determinista.
func SummarizeAccount(byNotebook map[string][]Wager, unitSize float64) AccountSummary {
	ids := make([]string, 0, len(byNotebook))
	total := 0
	for id, ws := range byNotebook {
		ids = append(ids, id)
		total += len(ws)
	}
	sort.Strings(ids)

	all := make([]Wager, 0, total)
	out := AccountSummary{Notebooks: make([]NotebookSummary, 0, len(ids))}
	for _, id := range ids {
		ws := byNotebook[id]
		out.Notebooks = append(out.Notebooks, NotebookSummary{
			NotebookID: id,
			Summary:    Summarize(ws, unitSize),
		})
		all = append(all, ws...)
	}
	out.Combined = Summarize(all, unitSize)
	return out
}

// ProjectBankroll proyecta el bankroll a partir del capital inicial.
// Las pendientes con odds inválidas cuentan como exposición pero no como payout potencial.
func ProjectBankroll(starting float64, wagers []Wager) BankrollProjection {
	p := BankrollProjection{Starting: starting}
	p.Current = starting + TotalPL(wagers)

	pendingProfit := 0.0
	for _, w := range wagers {
		if w.Status != StatusPending {
			continue
		}
		p.PendingExposure += w.StakeAmount
		if IsValidAmericanOdds(w.AmericanOdds) {
			p.PotentialPayout += CalculatePayout(w.AmericanOdds, w.StakeAmount)
			pendingProfit += CalculateReturn(w.AmericanOdds, w.StakeAmount)
		}
	}
	p.Available = p.Current - p.PendingExposure
	p.BestCase = p.Current + pendingProfit
	return p
}

// Round2 redondea a 2 decimales, mitad alejándose de cero (1.005 → 1.01, -2.345 → -2.35).
// Usa decimal para evitar el error de math.Round(x*100)/100 con floats como 1.005.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Round2Decimal redondea un importe de ledger a 2 decimales.
func Round2Decimal(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
