package repo_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/account-ledger/src/internal/domain"
)

type AccountRepository interface {
	GetByAccountNumber(ctx context.Context, accountNumber int64) (domain.Account, error)
	GetAll(ctx context.Context) ([]domain.Account, error)
	// Save inserts the account when its ID is unset and fully updates it
	// otherwise. A taken account number surfaces as commons.ErrDuplicateAccount.
	Save(ctx context.Context, account domain.Account) (domain.Account, error)
	// Delete removes the record entirely. The ledger core never calls it;
	// account closure is Save with State=false.
	Delete(ctx context.Context, accountID uuid.UUID) error
}
