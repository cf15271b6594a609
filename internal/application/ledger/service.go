package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/ports"
)

// Service registra el resultado diario de cada cuenta y calcula los totales.
type Service struct {
	store ports.LedgerStorage
}

// New crea un Service sobre el storage dado.
func New(store ports.LedgerStorage) *Service {
	return &Service{store: store}
}

// CreateAccount da de alta una cuenta de sportsbook o casino.
func (s *Service) CreateAccount(ctx context.Context, name string, kind domain.AccountKind) (domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Account{}, fmt.Errorf("ledger.CreateAccount: name is required")
	}
	if _, ok := domain.ParseAccountKind(string(kind)); !ok {
		return domain.Account{}, fmt.Errorf("ledger.CreateAccount: unknown kind %q", kind)
	}

	acc := domain.Account{ID: uuid.New().String(), Name: name, Kind: kind}
	if err := s.store.SaveAccount(ctx, acc); err != nil {
		return domain.Account{}, fmt.Errorf("ledger.CreateAccount: %w", err)
	}
	slog.Info("account created", "account_id", acc.ID, "kind", acc.Kind)
	return acc, nil
}

// Accounts lista todas las cuentas.
func (s *Service) Accounts(ctx context.Context) ([]domain.Account, error) {
	accs, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger.Accounts: %w", err)
	}
	return accs, nil
}

// RecordEntry guarda la entrada (cuenta, día). En cuentas de casino el Amount
// se re-deriva de los campos crudos y el valor recibido se ignora.
func (s *Service) RecordEntry(ctx context.Context, e domain.LedgerEntry) (domain.LedgerEntry, error) {
	if err := domain.ValidateLedgerEntry(e); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("ledger.RecordEntry: %w", err)
	}
	acc, err := s.store.GetAccount(ctx, e.AccountID)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("ledger.RecordEntry: %w", err)
	}

	e.Date = domain.Day(e.Date)
	e = domain.NormalizeEntry(e, acc.Kind)
	if acc.Kind != domain.AccountCasino {
		e.Casino = nil
	}
	if err := s.store.UpsertLedgerEntry(ctx, e); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("ledger.RecordEntry: %w", err)
	}
	slog.Debug("ledger entry recorded", "account_id", e.AccountID, "date", e.Date, "amount", e.Amount.StringFixed(2))
	return e, nil
}

// UpdateCasino aplica un cambio parcial a la entrada de casino de un día.
// Si el día no existía se parte de una entrada vacía.
func (s *Service) UpdateCasino(ctx context.Context, accountID, date string, u domain.CasinoUpdate) (domain.LedgerEntry, error) {
	acc, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("ledger.UpdateCasino: %w", err)
	}
	if acc.Kind != domain.AccountCasino {
		return domain.LedgerEntry{}, fmt.Errorf("ledger.UpdateCasino: account %s is %s, not casino", accountID, acc.Kind)
	}
	if !domain.IsValidDay(date) {
		return domain.LedgerEntry{}, fmt.Errorf("ledger.UpdateCasino: %w", domain.ErrInvalidDate)
	}
	day := domain.Day(date)

	entry, err := s.store.GetLedgerEntry(ctx, accountID, day)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		entry = domain.LedgerEntry{AccountID: accountID, Date: day}
	case err != nil:
		return domain.LedgerEntry{}, fmt.Errorf("ledger.UpdateCasino: %w", err)
	}

	entry = domain.ApplyCasinoUpdate(entry, u)
	if err := s.store.UpsertLedgerEntry(ctx, entry); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("ledger.UpdateCasino: %w", err)
	}
	slog.Debug("casino entry updated", "account_id", accountID, "date", day, "net", entry.Amount.StringFixed(2))
	return entry, nil
}

// Daily devuelve el desglose por día dentro del rango.
func (s *Service) Daily(ctx context.Context, r domain.LedgerRange) ([]domain.DailyRollup, error) {
	entries, err := s.store.ListLedgerEntries(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("ledger.Daily: %w", err)
	}
	return domain.RollupByDay(entries), nil
}

// Totals calcula el total del rango, del año natural y del histórico completo
// con una sola lectura del storage.
func (s *Service) Totals(ctx context.Context, r domain.LedgerRange, year int) (ports.LedgerTotals, error) {
	entries, err := s.store.ListLedgerEntries(ctx, domain.LedgerRange{AccountID: r.AccountID})
	if err != nil {
		return ports.LedgerTotals{}, fmt.Errorf("ledger.Totals: %w", err)
	}
	return ports.LedgerTotals{
		Range:   r,
		InRange: domain.SumLedger(entries, r),
		Year:    year,
		YearSum: domain.YearTotal(entries, year, r.AccountID),
		AllTime: domain.AllTimeTotal(entries, r.AccountID),
	}, nil
}
