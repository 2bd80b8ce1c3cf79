package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/domain"
)

// AccountRepository is an in-memory account store. It backs the unit tests and
// serves as a storage fallback when no database is configured.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
	byNumber map[int64]uuid.UUID
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[uuid.UUID]*domain.Account),
		byNumber: make(map[int64]uuid.UUID),
	}
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()

	if account.ID == uuid.Nil {
		if _, taken := r.byNumber[account.AccountNumber]; taken {
			return domain.Account{}, commons.ErrDuplicateAccount
		}
		account.ID = uuid.New()
		account.CreatedAt = now
		account.UpdatedAt = now
		stored := account
		stored.Movements = nil
		r.accounts[account.ID] = &stored
		r.byNumber[account.AccountNumber] = account.ID
		return account, nil
	}

	existing, ok := r.accounts[account.ID]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}

	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = now
	stored := account
	stored.Movements = nil
	r.accounts[account.ID] = &stored

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[accountNumber]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}

	cp := *r.accounts[id]
	return cp, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, *account)
	}

	return accounts, nil
}

func (r *AccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}

	delete(r.byNumber, account.AccountNumber)
	delete(r.accounts, accountID)

	return nil
}

// swapBalance replaces the stored balance only if it still equals expected.
// Used by the movement repository to commit a movement and its balance as one
// unit.
func (r *AccountRepository) swapBalance(accountID uuid.UUID, expected, next decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	if !account.Balance.Equal(expected) {
		return commons.ErrStaleBalance
	}

	account.Balance = next
	account.UpdatedAt = time.Now().UTC()

	return nil
}
