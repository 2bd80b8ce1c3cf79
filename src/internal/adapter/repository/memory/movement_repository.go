package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/api-sage/account-ledger/src/internal/domain"
)

// MovementRepository is the in-memory movement store. It shares the account
// store so a movement and its balance change commit together.
type MovementRepository struct {
	mu        sync.RWMutex
	accounts  *AccountRepository
	movements map[uuid.UUID][]domain.Movement
}

func NewMovementRepository(accounts *AccountRepository) *MovementRepository {
	return &MovementRepository{
		accounts:  accounts,
		movements: make(map[uuid.UUID][]domain.Movement),
	}
}

func (r *MovementRepository) Create(ctx context.Context, movement domain.Movement, account domain.Account) (domain.Movement, error) {
	if err := r.accounts.swapBalance(account.ID, movement.BalanceBefore, movement.BalanceAfter); err != nil {
		return domain.Movement{}, err
	}

	movement.ID = uuid.New()

	r.mu.Lock()
	r.movements[account.ID] = append(r.movements[account.ID], movement)
	r.mu.Unlock()

	return movement, nil
}

func (r *MovementRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.movements[accountID]
	movements := make([]domain.Movement, len(stored))
	copy(movements, stored)

	return movements, nil
}
