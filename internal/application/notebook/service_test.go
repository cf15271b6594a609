package notebook

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/ports"
	"github.com/alejandrodnm/betbook/internal/query"
)

// memStore es un ports.NotebookStorage en memoria para tests.
type memStore struct {
	mu        sync.Mutex
	notebooks map[string]domain.Notebook
	wagers    map[string]domain.Wager
	failWrite error
}

func newMemStore() *memStore {
	return &memStore{
		notebooks: make(map[string]domain.Notebook),
		wagers:    make(map[string]domain.Wager),
	}
}

func (m *memStore) SaveNotebook(_ context.Context, nb domain.Notebook) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.notebooks[nb.ID] = nb
	return nil
}

func (m *memStore) GetNotebook(_ context.Context, id string) (domain.Notebook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nb, ok := m.notebooks[id]
	if !ok {
		return domain.Notebook{}, ports.ErrNotFound
	}
	return nb, nil
}

func (m *memStore) ListNotebooks(_ context.Context) ([]domain.Notebook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notebook, 0, len(m.notebooks))
	for _, nb := range m.notebooks {
		out = append(out, nb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memStore) ReorderNotebooks(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	for i, id := range ids {
		nb := m.notebooks[id]
		nb.Position = i
		m.notebooks[id] = nb
	}
	return nil
}

func (m *memStore) DeleteNotebook(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notebooks[id]; !ok {
		return ports.ErrNotFound
	}
	delete(m.notebooks, id)
	for wid, w := range m.wagers {
		if w.NotebookID == id {
			delete(m.wagers, wid)
		}
	}
	return nil
}

func (m *memStore) SaveWager(_ context.Context, w domain.Wager) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.wagers[w.ID] = w
	return nil
}

func (m *memStore) GetWager(_ context.Context, id string) (domain.Wager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wagers[id]
	if !ok {
		return domain.Wager{}, ports.ErrNotFound
	}
	return w, nil
}

func (m *memStore) ListWagers(_ context.Context, notebookID string) ([]domain.Wager, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Wager
	for _, w := range m.wagers {
		if w.NotebookID == notebookID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) DeleteWager(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wagers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(m.wagers, id)
	return nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) setFail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = err
}

func seed(t *testing.T, svc *Service) (domain.Notebook, domain.Notebook) {
	t.Helper()
	ctx := context.Background()
	nba, err := svc.CreateNotebook(ctx, "NBA", 0)
	require.NoError(t, err)
	nfl, err := svc.CreateNotebook(ctx, "NFL", 50)
	require.NoError(t, err)

	_, err = svc.AddWager(ctx, domain.Wager{NotebookID: nba.ID, Date: "2024-03-01", Description: "Lakers ML", AmericanOdds: 150, StakeAmount: 100, Status: domain.StatusWon})
	require.NoError(t, err)
	_, err = svc.AddWager(ctx, domain.Wager{NotebookID: nba.ID, Date: "2024-03-02", Description: "Celtics -3.5", AmericanOdds: -110, StakeAmount: 110, Status: domain.StatusLost})
	require.NoError(t, err)
	_, err = svc.AddWager(ctx, domain.Wager{NotebookID: nfl.ID, Date: "2024-09-08", Description: "Chiefs ML", AmericanOdds: -200, StakeAmount: 200})
	require.NoError(t, err)
	return nba, nfl
}

func TestService_CreateNotebook_AppendsPosition(t *testing.T) {
	svc := New(Config{UnitSize: 100}, newMemStore())
	nba, nfl := seed(t, svc)

	assert.Equal(t, 0, nba.Position)
	assert.Equal(t, 1, nfl.Position)
	assert.NotEmpty(t, nba.ID)

	_, err := svc.CreateNotebook(context.Background(), "   ", 0)
	assert.Error(t, err)
}

func TestService_AddWager_ComputesProfitForWon(t *testing.T) {
	store := newMemStore()
	svc := New(Config{UnitSize: 100}, store)
	nba, _ := seed(t, svc)

	res, err := svc.Search(context.Background(), nba.ID, query.Filters{Status: query.StatusPtr(domain.StatusWon)}, query.SortDateDesc)
	require.NoError(t, err)
	require.Len(t, res.Wagers, 1)
	assert.InDelta(t, 150.0, res.Wagers[0].Profit(), 1e-9)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 1, res.FilteredCount)
}

func TestService_AddWager_Validation(t *testing.T) {
	svc := New(Config{UnitSize: 100}, newMemStore())
	nba, _ := seed(t, svc)
	ctx := context.Background()

	_, err := svc.AddWager(ctx, domain.Wager{NotebookID: nba.ID, Date: "2024-03-01", AmericanOdds: -100, StakeAmount: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidOdds)

	_, err = svc.AddWager(ctx, domain.Wager{NotebookID: nba.ID, Date: "2024-03-01", AmericanOdds: 120, StakeAmount: 0})
	assert.ErrorIs(t, err, domain.ErrNonPositiveStake)

	_, err = svc.AddWager(ctx, domain.Wager{NotebookID: nba.ID, Date: "2024-03-01", AmericanOdds: 120, StakeAmount: 10, Status: domain.StatusLost, ProfitAmount: domain.Float64Ptr(5)})
	assert.ErrorIs(t, err, domain.ErrProfitWithoutWin)

	_, err = svc.AddWager(ctx, domain.Wager{NotebookID: "ghost", Date: "2024-03-01", AmericanOdds: 120, StakeAmount: 10})
	assert.Error(t, err)
}

func TestService_SettleWager(t *testing.T) {
	store := newMemStore()
	svc := New(Config{UnitSize: 100}, store)
	_, nfl := seed(t, svc)
	ctx := context.Background()

	ws, err := store.ListWagers(ctx, nfl.ID)
	require.NoError(t, err)
	require.Len(t, ws, 1)

	settled, err := svc.SettleWager(ctx, ws[0].ID, domain.StatusWon, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, settled.Profit(), 1e-9)

	pushed, err := svc.SettleWager(ctx, ws[0].ID, domain.StatusPush, nil)
	require.NoError(t, err)
	assert.Nil(t, pushed.ProfitAmount)
}

func TestService_SettleWager_ProfitWithoutWin(t *testing.T) {
	store := newMemStore()
	svc := New(Config{UnitSize: 100}, store)
	_, nfl := seed(t, svc)
	ctx := context.Background()

	ws, err := store.ListWagers(ctx, nfl.ID)
	require.NoError(t, err)

	_, err = svc.SettleWager(ctx, ws[0].ID, domain.StatusLost, domain.Float64Ptr(5))
	assert.ErrorIs(t, err, domain.ErrProfitWithoutWin)

	stored, err := store.GetWager(ctx, ws[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestService_DeleteWager(t *testing.T) {
	store := newMemStore()
	svc := New(Config{UnitSize: 100}, store)
	nba, _ := seed(t, svc)
	ctx := context.Background()

	ws, err := store.ListWagers(ctx, nba.ID)
	require.NoError(t, err)
	require.Len(t, ws, 2)

	require.NoError(t, svc.DeleteWager(ctx, ws[0].ID))
	left, err := store.ListWagers(ctx, nba.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	assert.ErrorIs(t, svc.DeleteWager(ctx, ws[0].ID), ports.ErrNotFound)
}

func TestService_DeleteNotebook_CompactsPositions(t *testing.T) {
	store := newMemStore()
	svc := New(Config{UnitSize: 100}, store)
	nba, nfl := seed(t, svc)
	ctx := context.Background()
	mlb, err := svc.CreateNotebook(ctx, "MLB", 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNotebook(ctx, nba.ID))

	nbs, err := svc.Notebooks(ctx)
	require.NoError(t, err)
	require.Len(t, nbs, 2)
	assert.Equal(t, nfl.ID, nbs[0].ID)
	assert.Equal(t, 0, nbs[0].Position)
	assert.Equal(t, mlb.ID, nbs[1].ID)
	assert.Equal(t, 1, nbs[1].Position)

	ws, err := store.ListWagers(ctx, nba.ID)
	require.NoError(t, err)
	assert.Empty(t, ws)

	assert.ErrorIs(t, svc.DeleteNotebook(ctx, nba.ID), ports.ErrNotFound)
}

func TestService_Summaries(t *testing.T) {
	svc := New(Config{UnitSize: 100, StartingBankroll: 1000, SummaryWorkers: 2}, newMemStore())
	nba, nfl := seed(t, svc)

	rep, err := svc.Summaries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "NBA", rep.Names[nba.ID])
	assert.InDelta(t, 40.0, rep.Account.Combined.TotalPL, 1e-9)
	assert.Equal(t, 3, rep.Account.Combined.TotalBets)
	assert.InDelta(t, 0.4, rep.Account.Combined.UnitsWon, 1e-9)
	assert.InDelta(t, 1040.0, rep.Bankroll.Current, 1e-9)
	assert.InDelta(t, 200.0, rep.Bankroll.PendingExposure, 1e-9)

	for _, ns := range rep.Account.Notebooks {
		if ns.NotebookID == nfl.ID {
			assert.Equal(t, 1, ns.Summary.Pending)
		}
		if ns.NotebookID == nba.ID {
			assert.InDelta(t, 0.4, ns.Summary.UnitsWon, 1e-9)
		}
	}
}
