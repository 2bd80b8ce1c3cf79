package service_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/src/internal/commons"
)

type MovementService interface {
	CreateMovement(ctx context.Context, req models.CreateMovementRequest) (commons.Response[models.MovementResponse], error)
	ListMovements(ctx context.Context, accountNumber *int64, movementType string) (commons.Response[[]models.MovementResponse], error)
}
