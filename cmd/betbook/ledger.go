package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/betbook/internal/domain"
)

func runAccountAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("account-add")
	name := fs.String("name", "", "account name")
	kind := fs.String("kind", string(domain.AccountSportsbook), "sportsbook|casino")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, ok := domain.ParseAccountKind(*kind)
	if !ok {
		return fmt.Errorf("-kind: unknown account kind %q", *kind)
	}
	acc, err := a.ledger.CreateAccount(ctx, *name, k)
	if err != nil {
		return err
	}
	fmt.Println(acc.ID)
	return nil
}

func runAccounts(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("accounts").Parse(args); err != nil {
		return err
	}
	accs, err := a.ledger.Accounts(ctx)
	if err != nil {
		return err
	}
	a.reporter.Accounts(accs)
	return nil
}

// casinoFlags son los campos crudos de un día de casino.
type casinoFlags struct {
	deposited, withdrew, balance, promo, tokens *string
	method, note                                *string
}

func addCasinoFlags(fs *flag.FlagSet) casinoFlags {
	return casinoFlags{
		deposited: fs.String("deposited", "", "amount deposited"),
		withdrew:  fs.String("withdrew", "", "amount withdrawn"),
		balance:   fs.String("balance", "", "balance left in the casino"),
		promo:     fs.String("promo", "", "promo value in USD"),
		tokens:    fs.String("tokens", "", "tokens received"),
		method:    fs.String("method", "", "deposit method"),
		note:      fs.String("note", "", "free text note"),
	}
}

func (c casinoFlags) update() (domain.CasinoUpdate, error) {
	var u domain.CasinoUpdate
	var err error
	if u.Deposited, err = optDecimal("deposited", *c.deposited); err != nil {
		return u, err
	}
	if u.Withdrew, err = optDecimal("withdrew", *c.withdrew); err != nil {
		return u, err
	}
	if u.InCasinoBalance, err = optDecimal("balance", *c.balance); err != nil {
		return u, err
	}
	if u.PromoValueUSD, err = optDecimal("promo", *c.promo); err != nil {
		return u, err
	}
	if u.TokensReceived, err = optDecimal("tokens", *c.tokens); err != nil {
		return u, err
	}
	u.DepositMethod = optString(*c.method)
	u.Note = optString(*c.note)
	return u, nil
}

func (c casinoFlags) given() bool {
	for _, v := range []*string{c.deposited, c.withdrew, c.balance, c.promo, c.tokens, c.method, c.note} {
		if *v != "" {
			return true
		}
	}
	return false
}

func runLedgerAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("ledger-add")
	account := fs.String("account", "", "account id")
	date := fs.String("date", today(), "day, YYYY-MM-DD")
	amount := fs.String("amount", "0", "net result of the day (ignored for casino accounts)")
	casino := addCasinoFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("account", *account); err != nil {
		return err
	}

	amt, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("-amount: %w", err)
	}
	entry := domain.LedgerEntry{AccountID: *account, Date: *date, Amount: amt}
	if casino.given() {
		u, err := casino.update()
		if err != nil {
			return err
		}
		entry = domain.ApplyCasinoUpdate(entry, u)
	}

	saved, err := a.ledger.RecordEntry(ctx, entry)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %s\n", saved.AccountID, saved.Date, domain.Round2Decimal(saved.Amount).StringFixed(2))
	return nil
}

func runCasino(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("casino")
	account := fs.String("account", "", "casino account id")
	date := fs.String("date", today(), "day, YYYY-MM-DD")
	casino := addCasinoFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("account", *account); err != nil {
		return err
	}

	u, err := casino.update()
	if err != nil {
		return err
	}
	saved, err := a.ledger.UpdateCasino(ctx, *account, *date, u)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s net %s\n", saved.AccountID, saved.Date, domain.Round2Decimal(saved.Amount).StringFixed(2))
	return nil
}

func runLedger(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("ledger")
	from := fs.String("from", "", "first day, YYYY-MM-DD")
	to := fs.String("to", "", "last day (inclusive), YYYY-MM-DD")
	account := fs.String("account", "", "only this account")
	year := fs.Int("year", time.Now().Year(), "calendar year for the yearly total")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := domain.LedgerRange{From: *from, To: *to, AccountID: *account}
	days, err := a.ledger.Daily(ctx, r)
	if err != nil {
		return err
	}
	totals, err := a.ledger.Totals(ctx, r, *year)
	if err != nil {
		return err
	}
	a.reporter.Ledger(days, totals)
	return nil
}
