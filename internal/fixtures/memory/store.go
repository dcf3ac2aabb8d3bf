// Package memory provides an in-memory repository.UnitOfWork for tests.
//
// Do runs fn against a private copy of the data and publishes the copy only
// when fn succeeds, so a failed operation leaves the store untouched. Two
// overlapping Do calls on the same account behave like two database
// transactions without row locks: the later commit wins.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/repository"
)

// ErrNotInTransaction is returned when repositories are requested outside Do.
var ErrNotInTransaction = errors.New("memory store: repositories are only available inside Do")

type data struct {
	accounts     map[uuid.UUID]account.Account
	transactions []account.Transaction
}

func (d *data) clone() *data {
	cp := &data{
		accounts:     make(map[uuid.UUID]account.Account, len(d.accounts)),
		transactions: append([]account.Transaction(nil), d.transactions...),
	}
	for id, a := range d.accounts {
		cp.accounts[id] = a
	}
	return cp
}

// Store is the root UnitOfWork.
type Store struct {
	mu   sync.Mutex
	data *data

	// FailTransactionSave makes every TransactionRepository.Save fail with this error.
	FailTransactionSave error
}

// New returns an empty Store seeded with accounts.
func New(accounts ...*account.Account) *Store {
	s := &Store{data: &data{accounts: map[uuid.UUID]account.Account{}}}
	for _, a := range accounts {
		s.data.accounts[a.ID] = *a
	}
	return s
}

// Do implements repository.UnitOfWork.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.mu.Lock()
	work := s.data.clone()
	s.mu.Unlock()

	tx := &txn{store: s, data: work}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Commit only what this transaction wrote.
	for id := range tx.dirty {
		s.data.accounts[id] = work.accounts[id]
	}
	s.data.transactions = append(s.data.transactions, tx.appended...)
	return nil
}

// AccountRepository implements repository.UnitOfWork.
func (s *Store) AccountRepository() (repository.AccountRepository, error) {
	return nil, ErrNotInTransaction
}

// TransactionRepository implements repository.UnitOfWork.
func (s *Store) TransactionRepository() (repository.TransactionRepository, error) {
	return nil, ErrNotInTransaction
}

// Account returns the committed state of the account numbered number.
func (s *Store) Account(number int64) (*account.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.data.accounts {
		if a.Number == number {
			cp := a
			return &cp, true
		}
	}
	return nil, false
}

// Transactions returns every committed transaction in commit order.
func (s *Store) Transactions() []account.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]account.Transaction(nil), s.data.transactions...)
}

type txn struct {
	store    *Store
	data     *data
	dirty    map[uuid.UUID]struct{}
	appended []account.Transaction
}

func (t *txn) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(t)
}

func (t *txn) AccountRepository() (repository.AccountRepository, error) {
	return accountRepo{t}, nil
}

func (t *txn) TransactionRepository() (repository.TransactionRepository, error) {
	return transactionRepo{t}, nil
}

type accountRepo struct{ t *txn }

func (r accountRepo) FindByNumber(_ context.Context, number int64) (*account.Account, error) {
	for _, a := range r.t.data.accounts {
		if a.Number == number {
			cp := a
			return &cp, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r accountRepo) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.t.data.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return &a, nil
}

func (r accountRepo) FindAll(_ context.Context) ([]*account.Account, error) {
	out := make([]*account.Account, 0, len(r.t.data.accounts))
	for _, a := range r.t.data.accounts {
		cp := a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r accountRepo) Save(_ context.Context, a *account.Account) error {
	for id, existing := range r.t.data.accounts {
		if existing.Number == a.Number && id != a.ID {
			return account.ErrAccountNumberTaken
		}
	}
	r.t.data.accounts[a.ID] = *a
	if r.t.dirty == nil {
		r.t.dirty = map[uuid.UUID]struct{}{}
	}
	r.t.dirty[a.ID] = struct{}{}
	return nil
}

type transactionRepo struct{ t *txn }

func (r transactionRepo) Save(_ context.Context, tx *account.Transaction) error {
	if err := r.t.store.FailTransactionSave; err != nil {
		return err
	}
	r.t.data.transactions = append(r.t.data.transactions, *tx)
	r.t.appended = append(r.t.appended, *tx)
	return nil
}

func (r transactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	var out []*account.Transaction
	for i := len(r.t.data.transactions) - 1; i >= 0; i-- {
		tx := r.t.data.transactions[i]
		if (tx.Source != nil && tx.Source.ID == accountID) || (tx.Receiver != nil && tx.Receiver.ID == accountID) {
			cp := tx
			out = append(out, &cp)
		}
	}
	return out, nil
}
