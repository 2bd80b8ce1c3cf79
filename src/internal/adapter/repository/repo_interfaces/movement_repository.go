package repo_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/account-ledger/src/internal/domain"
)

type MovementRepository interface {
	// Create persists the movement together with the account's new balance as
	// one unit: either both are durable or neither is. A persisted balance with
	// no matching movement would break the ledger's auditability.
	Create(ctx context.Context, movement domain.Movement, account domain.Account) (domain.Movement, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Movement, error)
}
