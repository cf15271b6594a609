package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AccountKind distingue casas de apuestas de casinos.
type AccountKind string

const (
	AccountSportsbook AccountKind = "sportsbook"
	AccountCasino     AccountKind = "casino"
)

// ParseAccountKind valida el tipo de cuenta.
func ParseAccountKind(s string) (AccountKind, bool) {
	switch k := AccountKind(s); k {
	case AccountSportsbook, AccountCasino:
		return k, true
	default:
		return "", false
	}
}

// Account es una cuenta cuyo resultado diario se registra en el ledger.
type Account struct {
	ID   string
	Name string
	Kind AccountKind
}

// CasinoFields son los datos crudos de un día de casino.
// Deposited, Withdrew e InCasinoBalance son la fuente de verdad del Amount.
type CasinoFields struct {
	Deposited       decimal.Decimal
	Withdrew        decimal.Decimal
	InCasinoBalance decimal.Decimal
	PromoValueUSD   decimal.Decimal
	TokensReceived  decimal.Decimal
	DepositMethod   string
	Note            string
}

// LedgerEntry es el resultado neto de una cuenta en un día.
type LedgerEntry struct {
	AccountID string
	Date      string // YYYY-MM-DD
	Amount    decimal.Decimal
	Casino    *CasinoFields // solo cuentas de casino
}

// CasinoUpdate describe un cambio parcial. nil = campo sin cambios.
type CasinoUpdate struct {
	Deposited       *decimal.Decimal
	Withdrew        *decimal.Decimal
	InCasinoBalance *decimal.Decimal
	PromoValueUSD   *decimal.Decimal
	TokensReceived  *decimal.Decimal
	DepositMethod   *string
	Note            *string
}

// DailyRollup es el total de un día y su desglose por cuenta.
type DailyRollup struct {
	Date      string
	Total     decimal.Decimal
	ByAccount map[string]decimal.Decimal
}

// AccountIDs devuelve las cuentas del desglose en orden alfabético.
func (d DailyRollup) AccountIDs() []string {
	ids := make([]string, 0, len(d.ByAccount))
	for id := range d.ByAccount {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LedgerRange filtra entries por día (inclusivo) y cuenta. Campos vacíos = sin límite.
type LedgerRange struct {
	From      string
	To        string
	AccountID string
}

func (r LedgerRange) contains(e LedgerEntry) bool {
	day := Day(e.Date)
	if r.From != "" && day < r.From {
		return false
	}
	if r.To != "" && day > r.To {
		return false
	}
	if r.AccountID != "" && e.AccountID != r.AccountID {
		return false
	}
	return true
}

// CasinoNet calcula el neto diario de casino: (withdrew + inCasinoBalance) - deposited.
func CasinoNet(c CasinoFields) decimal.Decimal {
	return c.Withdrew.Add(c.InCasinoBalance).Sub(c.Deposited)
}

// ApplyCasinoUpdate aplica el cambio y SIEMPRE re-deriva Amount desde los campos crudos.
// El Amount previo se descarta aunque el cambio solo toque metadatos.
func ApplyCasinoUpdate(entry LedgerEntry, u CasinoUpdate) LedgerEntry {
	var c CasinoFields
	if entry.Casino != nil {
		c = *entry.Casino
	}
	if u.Deposited != nil {
		c.Deposited = *u.Deposited
	}
	if u.Withdrew != nil {
		c.Withdrew = *u.Withdrew
	}
	if u.InCasinoBalance != nil {
		c.InCasinoBalance = *u.InCasinoBalance
	}
	if u.PromoValueUSD != nil {
		c.PromoValueUSD = *u.PromoValueUSD
	}
	if u.TokensReceived != nil {
		c.TokensReceived = *u.TokensReceived
	}
	if u.DepositMethod != nil {
		c.DepositMethod = *u.DepositMethod
	}
	if u.Note != nil {
		c.Note = *u.Note
	}

	out := entry
	out.Casino = &c
	out.Amount = CasinoNet(c)
	return out
}

// NormalizeEntry re-deriva el Amount de las cuentas de casino.
// Las cuentas de sportsbook guardan el Amount introducido por el usuario.
func NormalizeEntry(entry LedgerEntry, kind AccountKind) LedgerEntry {
	if kind != AccountCasino {
		return entry
	}
	return ApplyCasinoUpdate(entry, CasinoUpdate{})
}

// ValidateLedgerEntry comprueba los campos obligatorios.
func ValidateLedgerEntry(e LedgerEntry) error {
	if e.AccountID == "" {
		return invalid("account_id", fmt.Errorf("required"))
	}
	if !IsValidDay(e.Date) {
		return invalid("date", ErrInvalidDate)
	}
	return nil
}

// RollupByDay agrupa por fecha (ascendente) sumando Amount total y por cuenta.
func RollupByDay(entries []LedgerEntry) []DailyRollup {
	byDate := make(map[string]*DailyRollup)
	for _, e := range entries {
		day := Day(e.Date)
		r, ok := byDate[day]
		if !ok {
			r = &DailyRollup{Date: day, ByAccount: make(map[string]decimal.Decimal)}
			byDate[day] = r
		}
		r.Total = r.Total.Add(e.Amount)
		r.ByAccount[e.AccountID] = r.ByAccount[e.AccountID].Add(e.Amount)
	}

	out := make([]DailyRollup, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// SumLedger suma Amount de las entries dentro del rango.
func SumLedger(entries []LedgerEntry, r LedgerRange) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if r.contains(e) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// AllTimeTotal suma todo el histórico, opcionalmente de una sola cuenta.
func AllTimeTotal(entries []LedgerEntry, accountID string) decimal.Decimal {
	return SumLedger(entries, LedgerRange{AccountID: accountID})
}

// YearTotal suma las entries del año natural dado.
func YearTotal(entries []LedgerEntry, year int, accountID string) decimal.Decimal {
	return SumLedger(entries, YearRange(year, accountID))
}

// YearRange construye el rango [YYYY-01-01, YYYY-12-31].
func YearRange(year int, accountID string) LedgerRange {
	return LedgerRange{
		From:      fmt.Sprintf("%04d-01-01", year),
		To:        fmt.Sprintf("%04d-12-31", year),
		AccountID: accountID,
	}
}
