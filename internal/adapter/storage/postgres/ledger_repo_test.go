package postgres

import (
	"context"
	"testing"
	"time"

	"wallet-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerTestColumns() []string {
	return []string{"id", "wallet_id", "amount_paise", "entry_type", "reference_type", "reference_id", "balance_after_paise", "created_at"}
}

func newTestEntry(walletID uuid.UUID) *domain.LedgerEntry {
	refID := "pay_abc123"
	return &domain.LedgerEntry{
		ID:                uuid.New(),
		WalletID:          walletID,
		AmountPaise:       250000,
		EntryType:         domain.EntryTypeDeposit,
		ReferenceType:     domain.ReferenceTypePayment,
		ReferenceID:       refID,
		BalanceAfterPaise: 750000,
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestLedgerRepo_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	e := newTestEntry(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(e.ID, e.WalletID, e.AmountPaise, e.EntryType,
			e.ReferenceType, e.ReferenceID, e.BalanceAfterPaise, e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Insert(context.Background(), tx, e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_GetByReference(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	e := newTestEntry(uuid.New())

	rows := pgxmock.NewRows(ledgerTestColumns()).AddRow(
		e.ID, e.WalletID, e.AmountPaise, e.EntryType,
		e.ReferenceType, e.ReferenceID, e.BalanceAfterPaise, e.CreatedAt,
	)

	mock.ExpectQuery("SELECT .+ FROM ledger_entries").
		WithArgs(domain.ReferenceTypePayment, "pay_abc123").
		WillReturnRows(rows)

	result, err := repo.GetByReference(context.Background(), domain.ReferenceTypePayment, "pay_abc123")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, e.ID, result.ID)
	assert.Equal(t, int64(250000), result.AmountPaise)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_GetByReference_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM ledger_entries").
		WithArgs(domain.ReferenceTypePayment, "pay_missing").
		WillReturnRows(pgxmock.NewRows(ledgerTestColumns()))

	result, err := repo.GetByReference(context.Background(), domain.ReferenceTypePayment, "pay_missing")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_GetByReferenceInTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	e := newTestEntry(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM ledger_entries").
		WithArgs(domain.ReferenceTypePayment, "pay_abc123").
		WillReturnRows(pgxmock.NewRows(ledgerTestColumns()).AddRow(
			e.ID, e.WalletID, e.AmountPaise, e.EntryType,
			e.ReferenceType, e.ReferenceID, e.BalanceAfterPaise, e.CreatedAt,
		))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByReferenceInTx(context.Background(), tx, domain.ReferenceTypePayment, "pay_abc123")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, e.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_SumByWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	walletID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paise\), 0\) FROM ledger_entries`).
		WithArgs(walletID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(750000)))

	sum, err := repo.SumByWallet(context.Background(), walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(750000), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_SumDebitsByTypeSince(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	walletID := uuid.New()
	since := time.Now().UTC().Add(-24 * time.Hour)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(-amount_paise\), 0\) FROM ledger_entries`).
		WithArgs(walletID, domain.EntryTypeWithdrawal, since).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(120000)))

	sum, err := repo.SumDebitsByTypeSince(context.Background(), walletID, domain.EntryTypeWithdrawal, since)
	require.NoError(t, err)
	assert.Equal(t, int64(120000), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_ListByWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	walletID := uuid.New()
	e1 := newTestEntry(walletID)
	e2 := newTestEntry(walletID)
	e2.EntryType = domain.EntryTypeWithdrawal
	e2.AmountPaise = -50000

	rows := pgxmock.NewRows(ledgerTestColumns()).
		AddRow(e2.ID, e2.WalletID, e2.AmountPaise, e2.EntryType, e2.ReferenceType, e2.ReferenceID, e2.BalanceAfterPaise, e2.CreatedAt).
		AddRow(e1.ID, e1.WalletID, e1.AmountPaise, e1.EntryType, e1.ReferenceType, e1.ReferenceID, e1.BalanceAfterPaise, e1.CreatedAt)

	mock.ExpectQuery("SELECT .+ FROM ledger_entries .+ ORDER BY created_at DESC").
		WithArgs(walletID, 20, 0).
		WillReturnRows(rows)

	entries, err := repo.ListByWallet(context.Background(), walletID, 20, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, e2.ID, entries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
