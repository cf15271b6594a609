package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/ports"
	"github.com/alejandrodnm/betbook/internal/query"
)

// Console implementa ports.Reporter imprimiendo tablas en texto.
// Los importes se redondean a 2 decimales solo aquí, al presentar.
type Console struct {
	out io.Writer
}

var _ ports.Reporter = (*Console)(nil)

// NewConsole crea un reporter que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Notebooks imprime los notebooks en el orden del usuario.
func (c *Console) Notebooks(notebooks []domain.Notebook) {
	if len(notebooks) == 0 {
		fmt.Fprintln(c.out, "no notebooks yet")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "ID", "Name", "Unit")
	for _, nb := range notebooks {
		unit := "-"
		if nb.UnitSize > 0 {
			unit = money(nb.UnitSize)
		}
		table.Append(fmt.Sprintf("%d", nb.Position+1), nb.ID, nb.Name, unit)
	}
	table.Render()
}

// Summary imprime una fila por notebook, el combinado y la proyección de bankroll.
func (c *Console) Summary(names map[string]string, acc domain.AccountSummary, bankroll domain.BankrollProjection) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Notebook", "Bets", "Settled", "W-L-P", "Pending", "Win%", "P&L", "ROI", "Units")

	row := func(name string, s domain.PerformanceSummary) {
		table.Append(
			name,
			fmt.Sprintf("%d", s.TotalBets),
			fmt.Sprintf("%d", s.Completed()),
			fmt.Sprintf("%d-%d-%d", s.Won, s.Lost, s.Push),
			fmt.Sprintf("%d", s.Pending),
			percent(s.WinRate),
			signedMoney(s.TotalPL),
			percent(s.ROI),
			fmt.Sprintf("%+.2f", domain.Round2(s.UnitsWon)),
		)
	}
	for _, ns := range acc.Notebooks {
		name := names[ns.NotebookID]
		if name == "" {
			name = shortID(ns.NotebookID)
		}
		row(truncate(name, 24), ns.Summary)
	}
	row("TOTAL", acc.Combined)
	table.Render()

	fmt.Fprintf(c.out, "\n  Bankroll   start %s  current %s\n", money(bankroll.Starting), money(bankroll.Current))
	fmt.Fprintf(c.out, "  Pending    exposure %s  available %s\n", money(bankroll.PendingExposure), money(bankroll.Available))
	fmt.Fprintf(c.out, "  If all pending win: payout %s  bankroll %s\n\n", money(bankroll.PotentialPayout), money(bankroll.BestCase))
}

// Search imprime las apuestas filtradas y el conteo "n of m".
func (c *Console) Search(res query.Result) {
	fmt.Fprintf(c.out, "%d of %d wagers", res.FilteredCount, res.TotalCount)
	if res.ActiveFilters > 0 {
		fmt.Fprintf(c.out, " (%d filters)", res.ActiveFilters)
	}
	fmt.Fprintln(c.out)
	if len(res.Wagers) == 0 {
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "ID", "Description", "Odds", "Stake", "Status", "P&L")
	for _, w := range res.Wagers {
		pl := "-"
		if w.Status.IsCompleted() {
			pl = signedMoney(w.Net())
		}
		table.Append(
			domain.Day(w.Date),
			w.ID,
			truncate(w.Description, 36),
			domain.FormatAmerican(w.AmericanOdds),
			money(w.StakeAmount),
			string(w.Status),
			pl,
		)
	}
	table.Render()
}

// Hedge imprime el plan de cobertura y el resultado de cada lado.
func (c *Console) Hedge(in domain.HedgeInput, res domain.HedgeResult) {
	ifOriginal, ifHedge := res.Outcomes()

	table := tablewriter.NewWriter(c.out)
	table.Header("Side", "Odds", "Stake", "Payout", "Net")
	table.Append("original", domain.FormatAmerican(in.OriginalOdds), money(in.OriginalStake),
		money(res.OriginalSideReturn), signedMoney(ifOriginal))
	table.Append("hedge", domain.FormatAmerican(in.HedgeOdds), money(res.HedgeStake),
		money(res.HedgeSideReturn), signedMoney(ifHedge))
	table.Render()

	verdict := "NOT PROFITABLE"
	if res.IsProfitable {
		verdict = "LOCKED PROFIT"
	}
	fmt.Fprintf(c.out, "\n  Invested %s  guaranteed %s (%.2f%%)  max %s  => %s\n\n",
		money(res.TotalInvested()), signedMoney(res.GuaranteedProfit),
		domain.Round2(res.ProfitMarginPct), money(res.MaxPossibleProfit), verdict)
}

// Kelly imprime la comparación de probabilidades y el stake recomendado.
func (c *Console) Kelly(in domain.KellyInput, res domain.KellyResult) {
	table := tablewriter.NewWriter(c.out)
	// línea justa: las odds americanas sin ventaja para la probabilidad real
	fair := "-"
	if res.TrueProbPct > 0 {
		if o := domain.DecimalToAmerican(100 / res.TrueProbPct); o != 0 {
			fair = domain.FormatAmerican(o)
		}
	}

	table.Header("Bettable", "Reference", "Implied%", "True%", "Fair", "Edge", "Full Kelly", "Max bet", "Stake", "EV")
	table.Append(
		domain.FormatAmerican(in.BettableOdds),
		domain.FormatAmerican(in.ReferenceOdds),
		percent(res.ImpliedProbPct),
		percent(res.TrueProbPct),
		fair,
		fmt.Sprintf("%+.2f pp", domain.Round2(res.EdgePct)),
		fmt.Sprintf("%s (%s)", percent(res.FullKellyPct), money(res.FullKellyStake)),
		money(res.MaxBet),
		money(res.RecommendedStake),
		signedMoney(res.ExpectedValue),
	)
	table.Render()

	if res.Status == domain.EdgeNegative {
		fmt.Fprintln(c.out, "\n  no edge: the bettable line is worse than the reference, skip it")
		return
	}
	fmt.Fprintf(c.out, "\n  bankroll %s  max %.0f%%  fraction %.2f  => bet %s\n\n",
		money(in.Bankroll), in.MaxBetPct, in.KellyFraction, money(res.RecommendedStake))
}

// Accounts imprime las cuentas del ledger.
func (c *Console) Accounts(accounts []domain.Account) {
	if len(accounts) == 0 {
		fmt.Fprintln(c.out, "no accounts yet")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Name", "Kind")
	for _, a := range accounts {
		table.Append(a.ID, a.Name, string(a.Kind))
	}
	table.Render()
}

// Ledger imprime el desglose diario y los totales de rango, año e histórico.
func (c *Console) Ledger(days []domain.DailyRollup, totals ports.LedgerTotals) {
	if len(days) == 0 {
		fmt.Fprintln(c.out, "no ledger entries in range")
	} else {
		table := tablewriter.NewWriter(c.out)
		table.Header("Date", "Total", "Accounts")
		for _, d := range days {
			parts := make([]string, 0, len(d.ByAccount))
			for _, id := range d.AccountIDs() {
				parts = append(parts, fmt.Sprintf("%s %s", shortID(id), domain.Round2Decimal(d.ByAccount[id]).StringFixed(2)))
			}
			table.Append(d.Date, domain.Round2Decimal(d.Total).StringFixed(2), strings.Join(parts, ", "))
		}
		table.Render()
	}

	fmt.Fprintf(c.out, "\n  %s: %s\n", rangeLabel(totals.Range), domain.Round2Decimal(totals.InRange).StringFixed(2))
	fmt.Fprintf(c.out, "  year %d: %s\n", totals.Year, domain.Round2Decimal(totals.YearSum).StringFixed(2))
	fmt.Fprintf(c.out, "  all time: %s\n\n", domain.Round2Decimal(totals.AllTime).StringFixed(2))
}

// --- helpers ---

func money(v float64) string {
	return fmt.Sprintf("$%.2f", domain.Round2(v))
}

func signedMoney(v float64) string {
	r := domain.Round2(v)
	if r < 0 {
		return fmt.Sprintf("-$%.2f", -r)
	}
	return fmt.Sprintf("+$%.2f", r)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", domain.Round2(v))
}

func rangeLabel(r domain.LedgerRange) string {
	from, to := r.From, r.To
	if from == "" {
		from = "start"
	}
	if to == "" {
		to = "today"
	}
	return from + " → " + to
}

// shortID acorta los uuid para que las tablas quepan en una terminal.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
