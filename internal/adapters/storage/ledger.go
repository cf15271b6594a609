package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alejandrodnm/betbook/internal/domain"
)

// Los importes se guardan como TEXT para no perder precisión decimal.
const ledgerSchema = `
CREATE TABLE IF NOT EXISTS accounts (
    id    TEXT PRIMARY KEY,
    name  TEXT NOT NULL,
    kind  TEXT NOT NULL DEFAULT 'sportsbook'
);

CREATE TABLE IF NOT EXISTS ledger_entries (
    account_id        TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    date              TEXT NOT NULL,
    amount            TEXT NOT NULL DEFAULT '0',
    is_casino         INTEGER NOT NULL DEFAULT 0,
    deposited         TEXT NOT NULL DEFAULT '0',
    withdrew          TEXT NOT NULL DEFAULT '0',
    in_casino_balance TEXT NOT NULL DEFAULT '0',
    promo_value_usd   TEXT NOT NULL DEFAULT '0',
    tokens_received   TEXT NOT NULL DEFAULT '0',
    deposit_method    TEXT NOT NULL DEFAULT '',
    note              TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (account_id, date)
);

CREATE INDEX IF NOT EXISTS idx_ledger_date ON ledger_entries(date);
`

// ApplyLedgerSchema crea las tablas del ledger si no existen.
func (s *SQLiteStorage) ApplyLedgerSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, ledgerSchema); err != nil {
		return fmt.Errorf("storage.ApplyLedgerSchema: %w", err)
	}
	return nil
}

// SaveAccount inserta o actualiza una cuenta.
func (s *SQLiteStorage) SaveAccount(ctx context.Context, a domain.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, kind) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, kind = excluded.kind`,
		a.ID, a.Name, string(a.Kind),
	)
	if err != nil {
		return fmt.Errorf("storage.SaveAccount: %s: %w", a.ID, err)
	}
	return nil
}

// GetAccount devuelve una cuenta por ID.
func (s *SQLiteStorage) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	var a domain.Account
	var kind string
	err := s.db.QueryRowContext(ctx, `SELECT id, name, kind FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("storage.GetAccount: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("storage.GetAccount: %s: %w", id, err)
	}
	a.Kind = domain.AccountKind(kind)
	return a, nil
}

// ListAccounts devuelve todas las cuentas por nombre.
func (s *SQLiteStorage) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, kind FROM accounts ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage.ListAccounts: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var a domain.Account
		var kind string
		if err := rows.Scan(&a.ID, &a.Name, &kind); err != nil {
			return nil, fmt.Errorf("storage.ListAccounts: scan row: %w", err)
		}
		a.Kind = domain.AccountKind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpsertLedgerEntry reemplaza la fila (account_id, date) completa.
// No hace merge campo a campo: quien llama ya re-derivó el Amount de casino.
func (s *SQLiteStorage) UpsertLedgerEntry(ctx context.Context, e domain.LedgerEntry) error {
	var c domain.CasinoFields
	isCasino := 0
	if e.Casino != nil {
		c = *e.Casino
		isCasino = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_entries
			(account_id, date, amount, is_casino, deposited, withdrew, in_casino_balance,
			 promo_value_usd, tokens_received, deposit_method, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, date) DO UPDATE SET
			amount            = excluded.amount,
			is_casino         = excluded.is_casino,
			deposited         = excluded.deposited,
			withdrew          = excluded.withdrew,
			in_casino_balance = excluded.in_casino_balance,
			promo_value_usd   = excluded.promo_value_usd,
			tokens_received   = excluded.tokens_received,
			deposit_method    = excluded.deposit_method,
			note              = excluded.note`,
		e.AccountID, e.Date, e.Amount.String(), isCasino,
		c.Deposited.String(), c.Withdrew.String(), c.InCasinoBalance.String(),
		c.PromoValueUSD.String(), c.TokensReceived.String(), c.DepositMethod, c.Note,
	)
	if err != nil {
		return fmt.Errorf("storage.UpsertLedgerEntry: %s@%s: %w", e.AccountID, e.Date, err)
	}
	return nil
}

const ledgerColumns = `account_id, date, amount, is_casino, deposited, withdrew, in_casino_balance,
	promo_value_usd, tokens_received, deposit_method, note`

// GetLedgerEntry devuelve la entrada de una cuenta en un día.
func (s *SQLiteStorage) GetLedgerEntry(ctx context.Context, accountID, date string) (domain.LedgerEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE account_id = ? AND date = ?`, accountID, date)
	e, err := scanLedgerEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LedgerEntry{}, fmt.Errorf("storage.GetLedgerEntry: %s@%s: %w", accountID, date, ErrNotFound)
	}
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("storage.GetLedgerEntry: %s@%s: %w", accountID, date, err)
	}
	return e, nil
}

// ListLedgerEntries devuelve las entradas del rango ordenadas por fecha y cuenta.
func (s *SQLiteStorage) ListLedgerEntries(ctx context.Context, r domain.LedgerRange) ([]domain.LedgerEntry, error) {
	q := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE 1 = 1`
	var args []any
	if r.From != "" {
		q += ` AND date >= ?`
		args = append(args, r.From)
	}
	if r.To != "" {
		q += ` AND date <= ?`
		args = append(args, r.To)
	}
	if r.AccountID != "" {
		q += ` AND account_id = ?`
		args = append(args, r.AccountID)
	}
	q += ` ORDER BY date ASC, account_id ASC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage.ListLedgerEntries: query: %w", err)
	}
	defer rows.Close()

	var out []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage.ListLedgerEntries: scan row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanLedgerEntry(r rowScanner) (domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var c domain.CasinoFields
	var isCasino int
	if err := r.Scan(
		&e.AccountID,
		&e.Date,
		&e.Amount,
		&isCasino,
		&c.Deposited,
		&c.Withdrew,
		&c.InCasinoBalance,
		&c.PromoValueUSD,
		&c.TokensReceived,
		&c.DepositMethod,
		&c.Note,
	); err != nil {
		return domain.LedgerEntry{}, err
	}
	if isCasino == 1 {
		e.Casino = &c
	}
	return e, nil
}
