package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/domain"
	"github.com/api-sage/account-ledger/src/internal/events"
	"github.com/api-sage/account-ledger/src/internal/logger"
	"github.com/api-sage/account-ledger/src/internal/metrics"
)

type MovementService struct {
	accountRepo  repo_interfaces.AccountRepository
	movementRepo repo_interfaces.MovementRepository
	locks        *AccountLocks
	collector    *metrics.Collector
	publisher    *events.Publisher
}

func NewMovementService(
	accountRepo repo_interfaces.AccountRepository,
	movementRepo repo_interfaces.MovementRepository,
	locks *AccountLocks,
	collector *metrics.Collector,
	publisher *events.Publisher,
) *MovementService {
	return &MovementService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		locks:        locks,
		collector:    collector,
		publisher:    publisher,
	}
}

// CreateMovement validates the request, loads the account, applies the debit
// or credit through the aggregate and persists account and movement as one
// unit. The per-account lock covers the whole load-apply-persist sequence so
// two concurrent movements can never both read the same starting balance.
func (s *MovementService) CreateMovement(ctx context.Context, req models.CreateMovementRequest) (commons.Response[models.MovementResponse], error) {
	start := time.Now()

	logger.Info("movement service create movement request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("movement service create movement validation failed", err, nil)
		s.collector.MovementRejected("invalid_input")
		return commons.ErrorResponse[models.MovementResponse]("validation failed", err.Error()), err
	}

	movementType, _ := domain.ParseMovementType(strings.ToUpper(strings.TrimSpace(req.MovementType)))
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		s.collector.MovementRejected("invalid_input")
		return commons.ErrorResponse[models.MovementResponse]("validation failed", "amount must be numeric"), err
	}
	amount = amount.Round(2)

	unlock := s.locks.Lock(req.AccountNumber)
	defer unlock()

	account, err := s.accountRepo.GetByAccountNumber(ctx, req.AccountNumber)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			s.collector.MovementRejected("account_not_found")
			return commons.ErrorResponse[models.MovementResponse]("Account not found"), err
		}
		logger.Error("movement service load account failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		return commons.ErrorResponse[models.MovementResponse]("failed to create movement", "Unable to create movement right now"), err
	}

	var movement domain.Movement
	switch movementType {
	case domain.MovementTypeDebit:
		movement, err = account.Debit(amount)
	case domain.MovementTypeCredit:
		movement, err = account.Credit(amount)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			logger.Info("movement service insufficient balance", logger.Fields{
				"accountNumber": req.AccountNumber,
				"amount":        amount,
				"balance":       account.Balance,
			})
			s.collector.MovementRejected("insufficient_balance")
			return commons.ErrorResponse[models.MovementResponse]("Insufficient balance", err.Error()), err
		}
		s.collector.MovementRejected("invalid_input")
		return commons.ErrorResponse[models.MovementResponse]("validation failed", err.Error()), err
	}

	created, err := s.movementRepo.Create(ctx, movement, account)
	if err != nil {
		logger.Error("movement service persist movement failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
			"movementType":  movementType,
		})
		return commons.ErrorResponse[models.MovementResponse]("failed to create movement", "Unable to create movement right now"), err
	}

	s.collector.MovementApplied(string(movementType), time.Since(start).Seconds())
	balanceFloat, _ := account.Balance.Float64()
	s.collector.SetAccountBalance(strconv.FormatInt(account.AccountNumber, 10), balanceFloat)

	if err := s.publisher.Publish(ctx, events.TypeMovementApplied, models.MapMovementToResponse(created)); err != nil {
		logger.Error("movement service publish movement applied failed", err, logger.Fields{
			"movementId": created.ID,
		})
	}

	logger.Info("movement service create movement success", logger.Fields{
		"movementId":    created.ID,
		"accountNumber": created.AccountNumber,
		"balanceAfter":  created.BalanceAfter,
	})

	return commons.SuccessResponse("movement created successfully", models.MapMovementToResponse(created)), nil
}

// ListMovements resolves the account to its internal id and returns its
// movements, optionally filtered by type. When accountNumber is absent it
// returns an empty list rather than an error; existing callers depend on
// this.
func (s *MovementService) ListMovements(ctx context.Context, accountNumber *int64, movementType string) (commons.Response[[]models.MovementResponse], error) {
	logger.Info("movement service list movements request", logger.Fields{
		"accountNumber": accountNumber,
		"movementType":  movementType,
	})

	if accountNumber == nil {
		logger.Info("movement service list movements without account number", nil)
		return commons.SuccessResponse("movements fetched successfully", []models.MovementResponse{}), nil
	}

	movementType = strings.ToUpper(strings.TrimSpace(movementType))
	if movementType != "" {
		if _, ok := domain.ParseMovementType(movementType); !ok {
			err := errors.New("movementType must be one of DEBIT, CREDIT")
			return commons.ErrorResponse[[]models.MovementResponse]("validation failed", err.Error()), err
		}
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, *accountNumber)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.MovementResponse]("Account not found"), err
		}
		logger.Error("movement service list movements load account failed", err, logger.Fields{
			"accountNumber": *accountNumber,
		})
		return commons.ErrorResponse[[]models.MovementResponse]("failed to list movements", "Unable to fetch movements right now"), err
	}

	movements, err := s.movementRepo.GetByAccountID(ctx, account.ID)
	if err != nil {
		logger.Error("movement service list movements failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[[]models.MovementResponse]("failed to list movements", "Unable to fetch movements right now"), err
	}

	filtered := make([]models.MovementResponse, 0, len(movements))
	for _, movement := range movements {
		if movementType != "" && movement.MovementType != domain.MovementType(movementType) {
			continue
		}
		filtered = append(filtered, models.MapMovementToResponse(movement))
	}

	logger.Info("movement service list movements success", logger.Fields{
		"accountNumber": *accountNumber,
		"count":         len(filtered),
	})

	return commons.SuccessResponse("movements fetched successfully", filtered), nil
}
