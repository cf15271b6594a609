package ports

import (
	"context"

	"github.com/alejandrodnm/betbook/internal/domain"
)

// LedgerStorage persiste cuentas y sus entradas diarias.
type LedgerStorage interface {
	SaveAccount(ctx context.Context, a domain.Account) error
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpsertLedgerEntry reemplaza la entrada (account, date) completa.
	UpsertLedgerEntry(ctx context.Context, e domain.LedgerEntry) error
	GetLedgerEntry(ctx context.Context, accountID, date string) (domain.LedgerEntry, error)
	// ListLedgerEntries devuelve las entradas dentro del rango, ordenadas por fecha.
	ListLedgerEntries(ctx context.Context, r domain.LedgerRange) ([]domain.LedgerEntry, error)
}
