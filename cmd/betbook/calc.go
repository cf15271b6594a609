package main

import (
	"context"

	"github.com/alejandrodnm/betbook/internal/domain"
)

func runHedge(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("hedge")
	stake := fs.Float64("stake", 0, "stake of the open bet")
	odds := fs.String("odds", "", "american odds of the open bet")
	hedgeOdds := fs.String("hedge-odds", "", "american odds available on the other side")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := domain.HedgeInput{OriginalStake: *stake}
	var err error
	if in.OriginalOdds, err = domain.ParseAmerican(*odds); err != nil {
		return err
	}
	if in.HedgeOdds, err = domain.ParseAmerican(*hedgeOdds); err != nil {
		return err
	}

	res, err := domain.SolveHedge(in)
	if err != nil {
		return err
	}
	a.reporter.Hedge(in, res)
	return nil
}

func runKelly(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("kelly")
	odds := fs.String("odds", "", "american odds you can bet")
	ref := fs.String("ref", "", "reference (sharp) american odds")
	bankroll := fs.Float64("bankroll", a.cfg.Engine.StartingBankroll, "bankroll")
	maxPct := fs.Float64("max-pct", a.cfg.Engine.MaxBetPct, "max bet, % of bankroll")
	fraction := fs.Float64("fraction", a.cfg.Engine.KellyFraction, "Kelly fraction (0, 1]")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := domain.KellyInput{Bankroll: *bankroll, MaxBetPct: *maxPct, KellyFraction: *fraction}
	var err error
	if in.BettableOdds, err = domain.ParseAmerican(*odds); err != nil {
		return err
	}
	if in.ReferenceOdds, err = domain.ParseAmerican(*ref); err != nil {
		return err
	}

	res, err := domain.SolveKelly(in)
	if err != nil {
		return err
	}
	a.reporter.Kelly(in, res)
	return nil
}
