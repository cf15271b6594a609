package notebook

// concurrent.go: worker pool para cargar notebooks en paralelo.
//
// Cada notebook es independiente y el engine es puro, así que no hace falta
// ningún lock: cada worker escribe su resultado en resultCh y el caller arma el map.

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/ports"
)

// loadNotebooksConcurrent carga las apuestas de todos los notebooks usando un worker pool.
// Si workers <= 0 usa runtime.NumCPU(). Devuelve el primer error encontrado.
func loadNotebooksConcurrent(
	ctx context.Context,
	store ports.NotebookStorage,
	notebooks []domain.Notebook,
	workers int,
) (map[string][]domain.Wager, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type result struct {
		notebookID string
		wagers     []domain.Wager
		err        error
	}

	workCh := make(chan string, len(notebooks))
	resultCh := make(chan result, len(notebooks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range workCh {
				if err := ctx.Err(); err != nil {
					resultCh <- result{notebookID: id, err: err}
					continue
				}
				ws, err := store.ListWagers(ctx, id)
				resultCh <- result{notebookID: id, wagers: ws, err: err}
			}
		}()
	}

	for _, nb := range notebooks {
		workCh <- nb.ID
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	out := make(map[string][]domain.Wager, len(notebooks))
	var firstErr error
	for r := range resultCh {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("load notebook %s: %w", r.notebookID, r.err)
			}
			continue
		}
		out[r.notebookID] = r.wagers
	}

	slog.Debug("concurrent load complete",
		"notebooks", len(notebooks),
		"workers", workers,
	)

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
