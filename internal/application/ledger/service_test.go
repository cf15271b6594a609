package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/betbook/internal/adapters/storage"
	"github.com/alejandrodnm/betbook/internal/application/ledger"
	"github.com/alejandrodnm/betbook/internal/domain"
)

func newService(t *testing.T) *ledger.Service {
	t.Helper()
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return ledger.New(db)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestService_RecordEntry_CasinoAmountIsDerived(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	casino, err := svc.CreateAccount(ctx, "Stake", domain.AccountCasino)
	require.NoError(t, err)

	got, err := svc.RecordEntry(ctx, domain.LedgerEntry{
		AccountID: casino.ID,
		Date:      "2024-05-01",
		Amount:    dec("999"),
		Casino:    &domain.CasinoFields{Deposited: dec("200"), Withdrew: dec("150"), InCasinoBalance: dec("75.50")},
	})
	require.NoError(t, err)
	assert.True(t, dec("25.50").Equal(got.Amount), "got %s", got.Amount)
}

func TestService_RecordEntry_SportsbookKeepsAmount(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	dk, err := svc.CreateAccount(ctx, "DraftKings", domain.AccountSportsbook)
	require.NoError(t, err)

	got, err := svc.RecordEntry(ctx, domain.LedgerEntry{AccountID: dk.ID, Date: "2024-05-01", Amount: dec("-42.10")})
	require.NoError(t, err)
	assert.True(t, dec("-42.10").Equal(got.Amount))
	assert.Nil(t, got.Casino)

	_, err = svc.RecordEntry(ctx, domain.LedgerEntry{AccountID: dk.ID, Date: "05/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestService_UpdateCasino_MetadataOnlyStillRederives(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	casino, err := svc.CreateAccount(ctx, "Stake", domain.AccountCasino)
	require.NoError(t, err)

	// Día nuevo: se crea desde cero
	e, err := svc.UpdateCasino(ctx, casino.ID, "2024-05-01", domain.CasinoUpdate{
		Deposited: decPtr("100"),
		Withdrew:  decPtr("40"),
	})
	require.NoError(t, err)
	assert.True(t, dec("-60").Equal(e.Amount))

	note := "bonus weekend"
	e, err = svc.UpdateCasino(ctx, casino.ID, "2024-05-01", domain.CasinoUpdate{Note: &note})
	require.NoError(t, err)
	assert.True(t, dec("-60").Equal(e.Amount))
	assert.Equal(t, "bonus weekend", e.Casino.Note)
	assert.True(t, dec("40").Equal(e.Casino.Withdrew))

	e, err = svc.UpdateCasino(ctx, casino.ID, "2024-05-01", domain.CasinoUpdate{InCasinoBalance: decPtr("80")})
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(e.Amount))
}

func TestService_UpdateCasino_RejectsSportsbook(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	dk, err := svc.CreateAccount(ctx, "DraftKings", domain.AccountSportsbook)
	require.NoError(t, err)

	_, err = svc.UpdateCasino(ctx, dk.ID, "2024-05-01", domain.CasinoUpdate{Deposited: decPtr("10")})
	assert.Error(t, err)
}

func TestService_DailyAndTotals(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	dk, err := svc.CreateAccount(ctx, "DraftKings", domain.AccountSportsbook)
	require.NoError(t, err)
	fd, err := svc.CreateAccount(ctx, "FanDuel", domain.AccountSportsbook)
	require.NoError(t, err)

	entries := []domain.LedgerEntry{
		{AccountID: dk.ID, Date: "2023-12-31", Amount: dec("100")},
		{AccountID: dk.ID, Date: "2024-01-01", Amount: dec("10.25")},
		{AccountID: fd.ID, Date: "2024-01-01", Amount: dec("-5")},
		{AccountID: fd.ID, Date: "2024-01-03", Amount: dec("2.75")},
	}
	for _, e := range entries {
		_, err := svc.RecordEntry(ctx, e)
		require.NoError(t, err)
	}

	days, err := svc.Daily(ctx, domain.LedgerRange{From: "2024-01-01", To: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.True(t, dec("5.25").Equal(days[0].Total))
	assert.Len(t, days[0].ByAccount, 2)
	assert.Equal(t, "2024-01-03", days[1].Date)

	totals, err := svc.Totals(ctx, domain.LedgerRange{From: "2024-01-02"}, 2024)
	require.NoError(t, err)
	assert.True(t, dec("2.75").Equal(totals.InRange))
	assert.True(t, dec("8").Equal(totals.YearSum))
	assert.True(t, dec("108").Equal(totals.AllTime))

	perAccount, err := svc.Totals(ctx, domain.LedgerRange{AccountID: dk.ID}, 2023)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(perAccount.YearSum))
	assert.True(t, dec("110.25").Equal(perAccount.AllTime))
}

func TestService_CreateAccount_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "", domain.AccountCasino)
	assert.Error(t, err)
	_, err = svc.CreateAccount(ctx, "Poker", domain.AccountKind("poker"))
	assert.Error(t, err)
}

func TestService_Accounts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	accs, err := svc.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accs)

	dk, err := svc.CreateAccount(ctx, "DraftKings", domain.AccountSportsbook)
	require.NoError(t, err)
	stake, err := svc.CreateAccount(ctx, "Stake", domain.AccountCasino)
	require.NoError(t, err)

	accs, err = svc.Accounts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Account{dk, stake}, accs)
}
