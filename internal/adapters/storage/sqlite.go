package storage

// sqlite.go: notebooks y apuestas.
//
// Estrategia:
//   - `notebooks`: una fila por notebook, con position para el orden manual.
//   - `wagers`: una fila por apuesta. Fechas como TEXT YYYY-MM-DD: se ordenan
//     como strings igual que en el engine, sin conversiones de zona horaria.
//   - profit_amount es NULL salvo en apuestas ganadas.
//   - Las tablas del ledger viven en ledger.go y se aplican en el mismo arranque.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/ports"
	_ "modernc.org/sqlite"
)

// ErrNotFound se devuelve cuando la fila pedida no existe.
var ErrNotFound = ports.ErrNotFound

const schema = `
CREATE TABLE IF NOT EXISTS notebooks (
    id         TEXT PRIMARY KEY,
    name       TEXT    NOT NULL,
    unit_size  REAL    NOT NULL DEFAULT 0,
    position   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS wagers (
    id             TEXT PRIMARY KEY,
    notebook_id    TEXT    NOT NULL REFERENCES notebooks(id) ON DELETE CASCADE,
    date           TEXT    NOT NULL,
    description    TEXT    NOT NULL DEFAULT '',
    american_odds  INTEGER NOT NULL,
    stake_amount   REAL    NOT NULL,
    status         TEXT    NOT NULL DEFAULT 'pending',
    profit_amount  REAL
);

CREATE INDEX IF NOT EXISTS idx_wagers_notebook ON wagers(notebook_id, date DESC);
CREATE INDEX IF NOT EXISTS idx_notebooks_pos   ON notebooks(position);
`

// SQLiteStorage implementa ports.NotebookStorage y ports.LedgerStorage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica los schemas.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if err := s.ApplyLedgerSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// SaveNotebook inserta o actualiza un notebook.
func (s *SQLiteStorage) SaveNotebook(ctx context.Context, nb domain.Notebook) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notebooks (id, name, unit_size, position)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name      = excluded.name,
			unit_size = excluded.unit_size,
			position  = excluded.position`,
		nb.ID, nb.Name, nb.UnitSize, nb.Position,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveNotebook: %s: %w", nb.ID, err)
	}
	return nil
}

// GetNotebook devuelve un notebook por ID.
func (s *SQLiteStorage) GetNotebook(ctx context.Context, id string) (domain.Notebook, error) {
	var nb domain.Notebook
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, unit_size, position FROM notebooks WHERE id = ?`, id,
	).Scan(&nb.ID, &nb.Name, &nb.UnitSize, &nb.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Notebook{}, fmt.Errorf("storage.GetNotebook: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Notebook{}, fmt.Errorf("storage.GetNotebook: %s: %w", id, err)
	}
	return nb, nil
}

// ListNotebooks devuelve todos los notebooks por position (y nombre en empate).
func (s *SQLiteStorage) ListNotebooks(ctx context.Context) ([]domain.Notebook, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit_size, position FROM notebooks ORDER BY position ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage.ListNotebooks: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Notebook
	for rows.Next() {
		var nb domain.Notebook
		if err := rows.Scan(&nb.ID, &nb.Name, &nb.UnitSize, &nb.Position); err != nil {
			return nil, fmt.Errorf("storage.ListNotebooks: scan row: %w", err)
		}
		out = append(out, nb)
	}
	return out, rows.Err()
}

// ReorderNotebooks asigna position = índice. Si algún ID no existe, no se aplica nada.
func (s *SQLiteStorage) ReorderNotebooks(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.ReorderNotebooks: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE notebooks SET position = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("storage.ReorderNotebooks: prepare: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		res, err := stmt.ExecContext(ctx, i, id)
		if err != nil {
			return fmt.Errorf("storage.ReorderNotebooks: update %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("storage.ReorderNotebooks: %s: %w", id, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.ReorderNotebooks: commit: %w", err)
	}
	return nil
}

// DeleteNotebook elimina el notebook y sus apuestas (ON DELETE CASCADE).
func (s *SQLiteStorage) DeleteNotebook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notebooks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage.DeleteNotebook: %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("storage.DeleteNotebook: %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveWager inserta o reemplaza una apuesta.
func (s *SQLiteStorage) SaveWager(ctx context.Context, w domain.Wager) error {
	var profit sql.NullFloat64
	if w.ProfitAmount != nil {
		profit = sql.NullFloat64{Float64: *w.ProfitAmount, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wagers
			(id, notebook_id, date, description, american_odds, stake_amount, status, profit_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			notebook_id   = excluded.notebook_id,
			date          = excluded.date,
			description   = excluded.description,
			american_odds = excluded.american_odds,
			stake_amount  = excluded.stake_amount,
			status        = excluded.status,
			profit_amount = excluded.profit_amount`,
		w.ID, w.NotebookID, w.Date, w.Description, w.AmericanOdds, w.StakeAmount, string(w.Status), profit,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveWager: %s: %w", w.ID, err)
	}
	return nil
}

const wagerColumns = `id, notebook_id, date, description, american_odds, stake_amount, status, profit_amount`

// GetWager devuelve una apuesta por ID.
func (s *SQLiteStorage) GetWager(ctx context.Context, id string) (domain.Wager, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wagerColumns+` FROM wagers WHERE id = ?`, id)
	w, err := scanWager(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Wager{}, fmt.Errorf("storage.GetWager: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Wager{}, fmt.Errorf("storage.GetWager: %s: %w", id, err)
	}
	return w, nil
}

// ListWagers devuelve las apuestas de un notebook, más recientes primero.
func (s *SQLiteStorage) ListWagers(ctx context.Context, notebookID string) ([]domain.Wager, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wagerColumns+` FROM wagers WHERE notebook_id = ? ORDER BY date DESC, id ASC`, notebookID)
	if err != nil {
		return nil, fmt.Errorf("storage.ListWagers: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("storage.ListWagers: scan row: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteWager elimina una apuesta.
func (s *SQLiteStorage) DeleteWager(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wagers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage.DeleteWager: %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("storage.DeleteWager: %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWager(r rowScanner) (domain.Wager, error) {
	var w domain.Wager
	var status string
	var profit sql.NullFloat64
	if err := r.Scan(
		&w.ID,
		&w.NotebookID,
		&w.Date,
		&w.Description,
		&w.AmericanOdds,
		&w.StakeAmount,
		&status,
		&profit,
	); err != nil {
		return domain.Wager{}, err
	}
	w.Status = domain.WagerStatus(status)
	if profit.Valid {
		w.ProfitAmount = domain.Float64Ptr(profit.Float64)
	}
	return w, nil
}
