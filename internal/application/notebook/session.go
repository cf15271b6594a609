package notebook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/ports"
)

// Session mantiene en memoria los notebooks de un usuario para aplicar cambios
// de forma optimista: el cambio se ve al instante y se persiste después.
//
// Se guardan dos snapshots:
//   - current:   lo que ve el usuario (incluye cambios aún no confirmados)
//   - committed: el último estado confirmado por el storage
//
// Si la escritura falla, current vuelve a committed. Como el engine es puro,
// recalcular métricas sobre el snapshot revertido da exactamente lo mismo que antes del cambio.
type Session struct {
	store   ports.NotebookStorage
	limiter *rate.Limiter

	writeMu   sync.Mutex // serializa commit de principio a fin
	mu        sync.Mutex // protege current y committed
	current   state
	committed state
}

type state struct {
	notebooks []domain.Notebook
	wagers    map[string][]domain.Wager // notebookID → apuestas
}

func (s state) clone() state {
	out := state{
		notebooks: append([]domain.Notebook(nil), s.notebooks...),
		wagers:    make(map[string][]domain.Wager, len(s.wagers)),
	}
	for id, ws := range s.wagers {
		out.wagers[id] = append([]domain.Wager(nil), ws...)
	}
	return out
}

// change es una mutación que se aplica igual sobre current y sobre committed.
type change func(*state)

// NewSession carga el snapshot inicial. writesPerSecond limita las escrituras
// al storage (SQLite es single-writer); <= 0 desactiva el límite.
func NewSession(ctx context.Context, store ports.NotebookStorage, writesPerSecond float64) (*Session, error) {
	nbs, err := store.ListNotebooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("notebook.NewSession: %w", err)
	}
	loaded, err := loadNotebooksConcurrent(ctx, store, nbs, 0)
	if err != nil {
		return nil, fmt.Errorf("notebook.NewSession: %w", err)
	}

	limit := rate.Inf
	if writesPerSecond > 0 {
		limit = rate.Limit(writesPerSecond)
	}

	st := state{notebooks: nbs, wagers: loaded}
	return &Session{
		store:     store,
		limiter:   rate.NewLimiter(limit, 1),
		current:   st,
		committed: st.clone(),
	}, nil
}

// Notebooks devuelve una copia de los notebooks en el orden actual.
func (s *Session) Notebooks() []domain.Notebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notebook(nil), s.current.notebooks...)
}

// Wagers devuelve una copia de las apuestas de un notebook.
func (s *Session) Wagers(notebookID string) []domain.Wager {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Wager(nil), s.current.wagers[notebookID]...)
}

// Summary resume el estado actual (optimista) de un notebook.
func (s *Session) Summary(notebookID string, unitSize float64) domain.PerformanceSummary {
	return domain.Summarize(s.Wagers(notebookID), unitSize)
}

// Reorder cambia el orden de los notebooks. ids debe ser una permutación de los existentes.
func (s *Session) Reorder(ctx context.Context, ids []string) error {
	check := func(st *state) error {
		return checkPermutation(st.notebooks, ids)
	}
	apply := func(st *state) {
		byID := make(map[string]domain.Notebook, len(st.notebooks))
		for _, nb := range st.notebooks {
			byID[nb.ID] = nb
		}
		reordered := make([]domain.Notebook, 0, len(ids))
		for i, id := range ids {
			nb := byID[id]
			nb.Position = i
			reordered = append(reordered, nb)
		}
		st.notebooks = reordered
	}

	return s.commit(ctx, "Reorder", check, apply, func(ctx context.Context) error {
		return s.store.ReorderNotebooks(ctx, ids)
	})
}

// EditWager reemplaza una apuesta existente.
func (s *Session) EditWager(ctx context.Context, w domain.Wager) error {
	if err := domain.ValidateWager(w); err != nil {
		return fmt.Errorf("notebook.EditWager: %w", err)
	}

	check := func(st *state) error {
		if indexOf(st.wagers[w.NotebookID], w.ID) < 0 {
			return fmt.Errorf("wager %s not in notebook %s", w.ID, w.NotebookID)
		}
		return nil
	}
	apply := func(st *state) {
		ws := st.wagers[w.NotebookID]
		if i := indexOf(ws, w.ID); i >= 0 {
			ws[i] = w
		}
	}

	return s.commit(ctx, "EditWager", check, apply, func(ctx context.Context) error {
		return s.store.SaveWager(ctx, w)
	})
}

// commit aplica el cambio sobre current, lo persiste y lo confirma en committed.
// Si la persistencia falla, current se restaura desde committed.
//
// Las escrituras van de una en una (writeMu): mientras una está en vuelo no hay
// otro cambio sin confirmar en current, así que revertir a committed solo deshace
// el cambio que falló. Las lecturas solo toman mu y ven el estado optimista.
func (s *Session) commit(ctx context.Context, op string, check func(*state) error, apply change, persist func(context.Context) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if err := check(&s.current); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("notebook.%s: %w", op, err)
	}
	apply(&s.current)
	s.mu.Unlock()

	err := s.limiter.Wait(ctx)
	if err == nil {
		err = persist(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.current = s.committed.clone()
		slog.Warn("optimistic change reverted", "op", op, "err", err)
		return fmt.Errorf("notebook.%s: %w", op, err)
	}
	apply(&s.committed)
	return nil
}

func checkPermutation(nbs []domain.Notebook, ids []string) error {
	if len(ids) != len(nbs) {
		return fmt.Errorf("expected %d notebook ids, got %d", len(nbs), len(ids))
	}
	known := make(map[string]bool, len(nbs))
	for _, nb := range nbs {
		known[nb.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("unknown notebook %s", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate notebook %s", id)
		}
		seen[id] = true
	}
	return nil
}

func indexOf(ws []domain.Wager, id string) int {
	for i, w := range ws {
		if w.ID == id {
			return i
		}
	}
	return -1
}
