package main

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/betbook/internal/application/notebook"
	"github.com/alejandrodnm/betbook/internal/domain"
	"github.com/alejandrodnm/betbook/internal/query"
)

func runNotebookAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("notebook-add")
	name := fs.String("name", "", "notebook name")
	unit := fs.Float64("unit", 0, "unit size for this notebook (0 = global)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("name", *name); err != nil {
		return err
	}

	nb, err := a.books.CreateNotebook(ctx, *name, *unit)
	if err != nil {
		return err
	}
	fmt.Println(nb.ID)
	return nil
}

func runNotebooks(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("notebooks").Parse(args); err != nil {
		return err
	}
	nbs, err := a.books.Notebooks(ctx)
	if err != nil {
		return err
	}
	a.reporter.Notebooks(nbs)
	return nil
}

// runNotebookRm borra un notebook y todas sus apuestas.
func runNotebookRm(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("notebook-rm")
	id := fs.String("id", "", "notebook id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}

	if err := a.books.DeleteNotebook(ctx, *id); err != nil {
		return err
	}
	nbs, err := a.books.Notebooks(ctx)
	if err != nil {
		return err
	}
	a.reporter.Notebooks(nbs)
	return nil
}

func runReorder(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("reorder")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := notebook.NewSession(ctx, a.store, a.cfg.Storage.WritesPerSecond)
	if err != nil {
		return err
	}
	if err := sess.Reorder(ctx, fs.Args()); err != nil {
		return err
	}
	a.reporter.Notebooks(sess.Notebooks())
	return nil
}

func runAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("add")
	nbID := fs.String("notebook", "", "notebook id")
	date := fs.String("date", today(), "day of the bet, YYYY-MM-DD")
	desc := fs.String("desc", "", "description")
	odds := fs.String("odds", "", "american odds, e.g. +150 or -110")
	stake := fs.Float64("stake", 0, "stake amount")
	status := fs.String("status", string(domain.StatusPending), "pending|won|lost|push")
	profit := fs.String("profit", "", "profit for a won bet (default: computed from odds)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("notebook", *nbID); err != nil {
		return err
	}

	w, err := wagerFromFlags(*date, *desc, *odds, *stake, *status, *profit)
	if err != nil {
		return err
	}
	w.NotebookID = *nbID

	saved, err := a.books.AddWager(ctx, w)
	if err != nil {
		return err
	}
	fmt.Println(saved.ID)
	return nil
}

// runEdit reemplaza una apuesta a través de la Session: si la escritura falla,
// los totales que se muestran son los de antes del cambio.
func runEdit(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("edit")
	nbID := fs.String("notebook", "", "notebook id")
	id := fs.String("id", "", "wager id")
	date := fs.String("date", "", "new day, YYYY-MM-DD")
	desc := fs.String("desc", "", "new description")
	odds := fs.String("odds", "", "new american odds")
	stake := fs.String("stake", "", "new stake")
	status := fs.String("status", "", "new status")
	profit := fs.String("profit", "", "profit for a won bet")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("notebook", *nbID); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}

	sess, err := notebook.NewSession(ctx, a.store, a.cfg.Storage.WritesPerSecond)
	if err != nil {
		return err
	}

	var w domain.Wager
	for _, existing := range sess.Wagers(*nbID) {
		if existing.ID == *id {
			w = existing
		}
	}
	if w.ID == "" {
		return fmt.Errorf("wager %s not found in notebook %s", *id, *nbID)
	}

	w, err = applyEdit(w, editFlags{
		date: *date, desc: *desc, odds: *odds,
		stake: *stake, status: *status, profit: *profit,
	})
	if err != nil {
		return err
	}

	editErr := sess.EditWager(ctx, w)
	a.reporter.Search(query.Run(sess.Wagers(*nbID), query.Filters{}, query.SortDateDesc))
	return editErr
}

// editFlags son los valores crudos de edit; "" = sin cambio.
type editFlags struct {
	date, desc, odds, stake, status, profit string
}

// applyEdit devuelve w con los cambios de f aplicados. Un -profit sobre una
// apuesta que no queda como ganada es un error, no se descarta.
func applyEdit(w domain.Wager, f editFlags) (domain.Wager, error) {
	var err error
	if f.date != "" {
		w.Date = f.date
	}
	if f.desc != "" {
		w.Description = f.desc
	}
	if f.odds != "" {
		if w.AmericanOdds, err = domain.ParseAmerican(f.odds); err != nil {
			return w, err
		}
	}
	newStake, err := optFloat("stake", f.stake)
	if err != nil {
		return w, err
	}
	if newStake != nil {
		w.StakeAmount = *newStake
	}
	newProfit, err := optFloat("profit", f.profit)
	if err != nil {
		return w, err
	}
	if f.status == "" && newProfit == nil {
		return w, nil
	}

	st := w.Status
	if f.status != "" {
		parsed, err := optStatus(f.status)
		if err != nil {
			return w, err
		}
		st = *parsed
	}
	if newProfit != nil && st != domain.StatusWon {
		return w, fmt.Errorf("-profit: %w (status %s)", domain.ErrProfitWithoutWin, st)
	}
	return notebook.Settle(w, st, newProfit), nil
}

func runWagerRm(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("wager-rm")
	id := fs.String("id", "", "wager id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}

	if err := a.books.DeleteWager(ctx, *id); err != nil {
		return err
	}
	fmt.Println(*id)
	return nil
}

func runSettle(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("settle")
	id := fs.String("id", "", "wager id")
	status := fs.String("status", "", "won|lost|push|pending")
	profit := fs.String("profit", "", "profit for a won bet (default: computed from odds)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}
	st, err := optStatus(*status)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("-status is required")
	}
	p, err := optFloat("profit", *profit)
	if err != nil {
		return err
	}

	w, err := a.books.SettleWager(ctx, *id, *st, p)
	if err != nil {
		return err
	}
	a.reporter.Search(query.Result{Wagers: []domain.Wager{w}, TotalCount: 1, FilteredCount: 1})
	return nil
}

func runSummary(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("summary").Parse(args); err != nil {
		return err
	}
	rep, err := a.books.Summaries(ctx)
	if err != nil {
		return err
	}
	a.reporter.Summary(rep.Names, rep.Account, rep.Bankroll)
	return nil
}

func runSearch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("search")
	nbID := fs.String("notebook", "", "notebook id")
	text := fs.String("text", "", "substring of the description")
	status := fs.String("status", "", "pending|won|lost|push")
	from := fs.String("from", "", "first day, YYYY-MM-DD")
	to := fs.String("to", "", "last day (inclusive), YYYY-MM-DD")
	oddsMin := fs.String("odds-min", "", "minimum american odds")
	oddsMax := fs.String("odds-max", "", "maximum american odds")
	stakeMin := fs.String("min", "", "minimum stake")
	stakeMax := fs.String("max", "", "maximum stake")
	order := fs.String("sort", a.cfg.Engine.DefaultSort, "date-desc|date-asc|status|wager")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("notebook", *nbID); err != nil {
		return err
	}

	f := query.Filters{Text: *text, DateFrom: *from, DateTo: *to}
	var err error
	if f.Status, err = optStatus(*status); err != nil {
		return err
	}
	if f.OddsMin, err = optInt("odds-min", *oddsMin); err != nil {
		return err
	}
	if f.OddsMax, err = optInt("odds-max", *oddsMax); err != nil {
		return err
	}
	if f.WagerMin, err = optFloat("min", *stakeMin); err != nil {
		return err
	}
	if f.WagerMax, err = optFloat("max", *stakeMax); err != nil {
		return err
	}
	so, err := query.ParseSortOrder(*order)
	if err != nil {
		return err
	}

	res, err := a.books.Search(ctx, *nbID, f, so)
	if err != nil {
		return err
	}
	a.reporter.Search(res)
	return nil
}

// wagerFromFlags construye una apuesta nueva. La validación completa la hace el servicio.
func wagerFromFlags(date, desc, odds string, stake float64, status, profit string) (domain.Wager, error) {
	o, err := domain.ParseAmerican(odds)
	if err != nil {
		return domain.Wager{}, err
	}
	st, err := optStatus(status)
	if err != nil {
		return domain.Wager{}, err
	}
	p, err := optFloat("profit", profit)
	if err != nil {
		return domain.Wager{}, err
	}

	w := domain.Wager{
		Date:         date,
		Description:  desc,
		AmericanOdds: o,
		StakeAmount:  stake,
		ProfitAmount: p,
	}
	if st != nil {
		w.Status = *st
	}
	return w, nil
}
