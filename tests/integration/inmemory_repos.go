package integration

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"wallet-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	// Row locking is provided by the serializing in-memory transactor.
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balancePaise, lockedBalancePaise int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.BalancePaise = balancePaise
	w.LockedBalancePaise = lockedBalancePaise
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) ScanBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []domain.Wallet
	for _, w := range r.wallets {
		if bytes.Compare(w.ID[:], afterID[:]) > 0 {
			all = append(all, *w)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return bytes.Compare(all[i].ID[:], all[j].ID[:]) < 0
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{}
}

func (r *inMemoryLedgerRepo) Insert(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *inMemoryLedgerRepo) GetByReference(ctx context.Context, refType domain.ReferenceType, refID string) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.entries {
		if r.entries[i].ReferenceType == refType && r.entries[i].ReferenceID == refID {
			cp := r.entries[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryLedgerRepo) GetByReferenceInTx(ctx context.Context, tx pgx.Tx, refType domain.ReferenceType, refID string) (*domain.LedgerEntry, error) {
	return r.GetByReference(ctx, refType, refID)
}

func (r *inMemoryLedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].WalletID == walletID {
			result = append(result, r.entries[i])
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *inMemoryLedgerRepo) SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for i := range r.entries {
		if r.entries[i].WalletID == walletID {
			sum += r.entries[i].AmountPaise
		}
	}
	return sum, nil
}

func (r *inMemoryLedgerRepo) SumDebitsByTypeSince(ctx context.Context, walletID uuid.UUID, entryType domain.EntryType, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for i := range r.entries {
		e := &r.entries[i]
		if e.WalletID == walletID && e.EntryType == entryType && e.AmountPaise < 0 && !e.CreatedAt.Before(since) {
			sum += -e.AmountPaise
		}
	}
	return sum, nil
}

// --- In-Memory Fund Lock Repo ---

type inMemoryFundLockRepo struct {
	mu    sync.RWMutex
	locks map[uuid.UUID]*domain.FundLock
}

func newInMemoryFundLockRepo() *inMemoryFundLockRepo {
	return &inMemoryFundLockRepo{locks: make(map[uuid.UUID]*domain.FundLock)}
}

func (r *inMemoryFundLockRepo) Create(ctx context.Context, tx pgx.Tx, l *domain.FundLock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.locks[l.ID] = &cp
	return nil
}

func (r *inMemoryFundLockRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundLock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.locks[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *inMemoryFundLockRepo) Transition(ctx context.Context, tx pgx.Tx, lockID uuid.UUID, to domain.LockStatus, releasedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[lockID]
	if !ok || l.Status != domain.LockStatusActive {
		return false, nil
	}
	l.Status = to
	l.ReleasedAt = &releasedAt
	return true, nil
}

func (r *inMemoryFundLockRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.FundLock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.FundLock
	for _, l := range r.locks {
		if l.IsExpired(now) {
			result = append(result, *l)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (r *inMemoryFundLockRepo) SumActiveByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for _, l := range r.locks {
		if l.WalletID == walletID && l.Status == domain.LockStatusActive {
			sum += l.AmountPaise
		}
	}
	return sum, nil
}

// --- In-Memory Subscription Repo ---

type inMemorySubscriptionRepo struct {
	mu        sync.RWMutex
	subs      map[uuid.UUID]*domain.Subscription
	overrides map[uuid.UUID]*domain.ContractOverride
}

func newInMemorySubscriptionRepo() *inMemorySubscriptionRepo {
	return &inMemorySubscriptionRepo{
		subs:      make(map[uuid.UUID]*domain.Subscription),
		overrides: make(map[uuid.UUID]*domain.ContractOverride),
	}
}

func (r *inMemorySubscriptionRepo) put(s *domain.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.subs[s.ID] = &cp
}

func (r *inMemorySubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemorySubscriptionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.subs {
		if s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemorySubscriptionRepo) UpdateTerms(ctx context.Context, tx pgx.Tx, subID uuid.UUID, terms domain.FrozenTerms, fingerprint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[subID]
	if !ok {
		return fmt.Errorf("subscription not found")
	}
	s.Terms = terms
	s.TermsFingerprint = fingerprint
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemorySubscriptionRepo) InsertOverride(ctx context.Context, tx pgx.Tx, o *domain.ContractOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.overrides[o.ID] = &cp
	return nil
}

func (r *inMemorySubscriptionRepo) UpdateOverrideStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OverrideStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.overrides[id]
	if !ok {
		return fmt.Errorf("override not found")
	}
	o.Status = status
	return nil
}

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]*domain.User
	profiles map[uuid.UUID]*domain.KYCProfile
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{
		users:    make(map[uuid.UUID]*domain.User),
		profiles: make(map[uuid.UUID]*domain.KYCProfile),
	}
}

func (r *inMemoryUserRepo) put(u *domain.User, kyc *domain.KYCProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cu := *u
	r.users[u.ID] = &cu
	if kyc != nil {
		ck := *kyc
		r.profiles[u.ID] = &ck
	}
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUserRepo) GetKYCProfile(ctx context.Context, userID uuid.UUID) (*domain.KYCProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu     sync.RWMutex
	events []domain.ContractAuditEvent
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Append(ctx context.Context, ev *domain.ContractAuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
	return nil
}

func (r *inMemoryAuditRepo) all() []domain.ContractAuditEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ContractAuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

// --- In-Memory Reconciliation Repo ---

type inMemoryReconRepo struct {
	mu      sync.RWMutex
	reports []domain.DiscrepancyReport

	wallets *inMemoryWalletRepo
	ledger  *inMemoryLedgerRepo
}

func newInMemoryReconRepo(wallets *inMemoryWalletRepo, ledger *inMemoryLedgerRepo) *inMemoryReconRepo {
	return &inMemoryReconRepo{wallets: wallets, ledger: ledger}
}

func (r *inMemoryReconRepo) InsertReport(ctx context.Context, rep *domain.DiscrepancyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, *rep)
	return nil
}

// ListMismatched mirrors the SQL join derivation: every wallet whose cached
// projection disagrees with SUM(ledger_entries).
func (r *inMemoryReconRepo) ListMismatched(ctx context.Context, limit int) ([]domain.DiscrepancyReport, error) {
	wallets, err := r.wallets.ScanBatch(ctx, uuid.Nil, 1<<30)
	if err != nil {
		return nil, err
	}
	var result []domain.DiscrepancyReport
	for i := range wallets {
		w := &wallets[i]
		sum, err := r.ledger.SumByWallet(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		if sum != w.BalancePaise {
			result = append(result, domain.DiscrepancyReport{
				WalletID:       w.ID,
				LedgerPaise:    sum,
				ProjectedPaise: w.BalancePaise,
				DeltaPaise:     w.BalancePaise - sum,
			})
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (r *inMemoryReconRepo) allReports() []domain.DiscrepancyReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.DiscrepancyReport, len(r.reports))
	copy(out, r.reports)
	return out
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes transactions with a single mutex, standing
// in for the wallet row lock the postgres implementation takes. Concurrency
// tests depend on this: two begin/commit windows never interleave.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{unlock: t.mu.Unlock}, nil
}

// memTx releases the transactor mutex exactly once, on whichever of
// Commit or Rollback runs first.
type memTx struct {
	noopTx
	once   sync.Once
	unlock func()
}

func (t *memTx) Commit(ctx context.Context) error {
	t.once.Do(t.unlock)
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.once.Do(t.unlock)
	return nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
