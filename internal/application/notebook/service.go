package notebook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/ports"
	"github.com/alejandrodnm/betbook/internal/query"
)

// Config contiene los parámetros del servicio de notebooks.
type Config struct {
	UnitSize         float64 // unit size global; un notebook puede sobreescribirlo
	StartingBankroll float64
	SummaryWorkers   int // goroutines para resumir notebooks en paralelo (0 = NumCPU)
}

// Service orquesta storage + engine. El engine no guarda estado: cada llamada
// carga un snapshot del storage y lo pasa por valor a las funciones puras.
type Service struct {
	cfg   Config
	store ports.NotebookStorage
}

// New crea un Service con sus dependencias inyectadas.
func New(cfg Config, store ports.NotebookStorage) *Service {
	return &Service{cfg: cfg, store: store}
}

// CreateNotebook crea un notebook al final de la lista.
func (s *Service) CreateNotebook(ctx context.Context, name string, unitSize float64) (domain.Notebook, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Notebook{}, fmt.Errorf("notebook.CreateNotebook: name is required")
	}
	existing, err := s.store.ListNotebooks(ctx)
	if err != nil {
		return domain.Notebook{}, fmt.Errorf("notebook.CreateNotebook: %w", err)
	}

	nb := domain.Notebook{
		ID:       uuid.New().String(),
		Name:     name,
		UnitSize: unitSize,
		Position: len(existing),
	}
	if err := s.store.SaveNotebook(ctx, nb); err != nil {
		return domain.Notebook{}, fmt.Errorf("notebook.CreateNotebook: %w", err)
	}
	slog.Info("notebook created", "notebook_id", nb.ID, "name", nb.Name)
	return nb, nil
}

// Notebooks devuelve los notebooks en el orden del usuario.
func (s *Service) Notebooks(ctx context.Context) ([]domain.Notebook, error) {
	nbs, err := s.store.ListNotebooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("notebook.Notebooks: %w", err)
	}
	return nbs, nil
}

// AddWager valida y guarda una apuesta nueva. Si llega como ganada sin profit,
// se calcula a partir de odds y stake.
func (s *Service) AddWager(ctx context.Context, w domain.Wager) (domain.Wager, error) {
	if _, err := s.store.GetNotebook(ctx, w.NotebookID); err != nil {
		return domain.Wager{}, fmt.Errorf("notebook.AddWager: %w", err)
	}
	if w.Status == "" {
		w.Status = domain.StatusPending
	}
	if w.Status == domain.StatusWon && w.ProfitAmount == nil && domain.IsValidAmericanOdds(w.AmericanOdds) {
		w.ProfitAmount = domain.Float64Ptr(domain.CalculateReturn(w.AmericanOdds, w.StakeAmount))
	}
	if err := domain.ValidateWager(w); err != nil {
		return domain.Wager{}, fmt.Errorf("notebook.AddWager: %w", err)
	}

	w.ID = uuid.New().String()
	if err := s.store.SaveWager(ctx, w); err != nil {
		return domain.Wager{}, fmt.Errorf("notebook.AddWager: %w", err)
	}
	slog.Debug("wager added", "wager_id", w.ID, "notebook_id", w.NotebookID, "odds", w.AmericanOdds, "stake", w.StakeAmount)
	return w, nil
}

// SettleWager cambia el status de una apuesta. Solo las ganadas llevan profit:
// si profit es nil se usa CalculateReturn(odds, stake); un profit en una apuesta
// no ganada devuelve domain.ErrProfitWithoutWin.
func (s *Service) SettleWager(ctx context.Context, id string, status domain.WagerStatus, profit *float64) (domain.Wager, error) {
	w, err := s.store.GetWager(ctx, id)
	if err != nil {
		return domain.Wager{}, fmt.Errorf("notebook.SettleWager: %w", err)
	}

	w = Settle(w, status, profit)
	if err := domain.ValidateWager(w); err != nil {
		return domain.Wager{}, fmt.Errorf("notebook.SettleWager: %w", err)
	}
	if err := s.store.SaveWager(ctx, w); err != nil {
		return domain.Wager{}, fmt.Errorf("notebook.SettleWager: %w", err)
	}
	slog.Info("wager settled", "wager_id", w.ID, "status", w.Status, "profit", w.Profit())
	return w, nil
}

// Settle devuelve una copia de w con el nuevo status. Un profit explícito se
// conserva tal cual (ValidateWager rechaza profit en una apuesta no ganada);
// sin profit, las ganadas usan CalculateReturn(odds, stake).
func Settle(w domain.Wager, status domain.WagerStatus, profit *float64) domain.Wager {
	w.Status = status
	w.ProfitAmount = nil
	switch {
	case profit != nil:
		w.ProfitAmount = domain.Float64Ptr(*profit)
	case status == domain.StatusWon:
		w.ProfitAmount = domain.Float64Ptr(domain.CalculateReturn(w.AmericanOdds, w.StakeAmount))
	}
	return w
}

// DeleteWager borra una apuesta.
func (s *Service) DeleteWager(ctx context.Context, id string) error {
	if _, err := s.store.GetWager(ctx, id); err != nil {
		return fmt.Errorf("notebook.DeleteWager: %w", err)
	}
	if err := s.store.DeleteWager(ctx, id); err != nil {
		return fmt.Errorf("notebook.DeleteWager: %w", err)
	}
	slog.Info("wager deleted", "wager_id", id)
	return nil
}

// DeleteNotebook borra un notebook con todas sus apuestas y compacta las
// posiciones de los que quedan.
func (s *Service) DeleteNotebook(ctx context.Context, id string) error {
	if _, err := s.store.GetNotebook(ctx, id); err != nil {
		return fmt.Errorf("notebook.DeleteNotebook: %w", err)
	}
	if err := s.store.DeleteNotebook(ctx, id); err != nil {
		return fmt.Errorf("notebook.DeleteNotebook: %w", err)
	}

	rest, err := s.store.ListNotebooks(ctx)
	if err != nil {
		return fmt.Errorf("notebook.DeleteNotebook: %w", err)
	}
	ids := make([]string, len(rest))
	for i, nb := range rest {
		ids[i] = nb.ID
	}
	if err := s.store.ReorderNotebooks(ctx, ids); err != nil {
		return fmt.Errorf("notebook.DeleteNotebook: %w", err)
	}
	slog.Info("notebook deleted", "notebook_id", id, "remaining", len(rest))
	return nil
}

// SummaryReport agrupa el resumen de cuenta, los nombres y la proyección de bankroll.
type SummaryReport struct {
	Names    map[string]string // notebookID → nombre
	Account  domain.AccountSummary
	Bankroll domain.BankrollProjection
}

// Summaries carga todos los notebooks en paralelo y calcula el resumen de cada uno
// y el combinado de la cuenta.
func (s *Service) Summaries(ctx context.Context) (SummaryReport, error) {
	nbs, err := s.store.ListNotebooks(ctx)
	if err != nil {
		return SummaryReport{}, fmt.Errorf("notebook.Summaries: %w", err)
	}

	loaded, err := loadNotebooksConcurrent(ctx, s.store, nbs, s.cfg.SummaryWorkers)
	if err != nil {
		return SummaryReport{}, fmt.Errorf("notebook.Summaries: %w", err)
	}

	report := SummaryReport{Names: make(map[string]string, len(nbs))}
	byNotebook := make(map[string][]domain.Wager, len(nbs))
	var all []domain.Wager
	for _, nb := range nbs {
		report.Names[nb.ID] = nb.Name
		byNotebook[nb.ID] = loaded[nb.ID]
		all = append(all, loaded[nb.ID]...)
	}

	report.Account = domain.SummarizeAccount(byNotebook, s.cfg.UnitSize)
	// Cada notebook puede expresar sus unidades con su propio unit size
	for i, ns := range report.Account.Notebooks {
		for _, nb := range nbs {
			if nb.ID == ns.NotebookID && nb.UnitSize > 0 {
				report.Account.Notebooks[i].Summary.UnitsWon = domain.UnitsWon(ns.Summary.TotalPL, nb.UnitSize)
			}
		}
	}
	report.Bankroll = domain.ProjectBankroll(s.cfg.StartingBankroll, all)

	slog.Debug("summaries computed", "notebooks", len(nbs), "wagers", len(all))
	return report, nil
}

// Search filtra y ordena las apuestas de un notebook.
func (s *Service) Search(ctx context.Context, notebookID string, f query.Filters, order query.SortOrder) (query.Result, error) {
	ws, err := s.store.ListWagers(ctx, notebookID)
	if err != nil {
		return query.Result{}, fmt.Errorf("notebook.Search: %w", err)
	}
	return query.Run(ws, f, order), nil
}
