package ports

import (
	"context"
	"errors"

	"github.com/alejandrodnm/betbook/internal/domain"
)

// ErrNotFound lo devuelven los storages cuando la fila pedida no existe.
var ErrNotFound = errors.New("not found")

// NotebookStorage persiste notebooks y sus apuestas.
type NotebookStorage interface {
	SaveNotebook(ctx context.Context, nb domain.Notebook) error
	GetNotebook(ctx context.Context, id string) (domain.Notebook, error)
	// ListNotebooks devuelve los notebooks ordenados por Position.
	ListNotebooks(ctx context.Context) ([]domain.Notebook, error)
	// ReorderNotebooks asigna Position = índice en ids, en una sola transacción.
	ReorderNotebooks(ctx context.Context, ids []string) error
	DeleteNotebook(ctx context.Context, id string) error

	SaveWager(ctx context.Context, w domain.Wager) error
	GetWager(ctx context.Context, id string) (domain.Wager, error)
	ListWagers(ctx context.Context, notebookID string) ([]domain.Wager, error)
	DeleteWager(ctx context.Context, id string) error

	Close() error
}
