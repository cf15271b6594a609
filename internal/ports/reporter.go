package ports

import (
	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/query"
)

// Reporter presenta los resultados del engine al usuario.
// En la implementación de consola, imprime tablas formateadas.
type Reporter interface {
	Notebooks(notebooks []domain.Notebook)
	Summary(names map[string]string, acc domain.AccountSummary, bankroll domain.BankrollProjection)
	Search(res query.Result)
	Hedge(in domain.HedgeInput, res domain.HedgeResult)
	Kelly(in domain.KellyInput, res domain.KellyResult)
	Accounts(accounts []domain.Account)
	Ledger(days []domain.DailyRollup, totals LedgerTotals)
}

// LedgerTotals son los totales que acompañan al desglose diario.
type LedgerTotals struct {
	Range   domain.LedgerRange
	InRange decimal.Decimal
	Year    int
	YearSum decimal.Decimal
	AllTime decimal.Decimal
}
