package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/domain"
	"github.com/api-sage/account-ledger/src/internal/events"
	"github.com/api-sage/account-ledger/src/internal/logger"
)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	locks       *AccountLocks
	publisher   *events.Publisher
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	locks *AccountLocks,
	publisher *events.Publisher,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		locks:       locks,
		publisher:   publisher,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	balance, err := parseBalance(req.Balance)
	if err != nil {
		logger.Error("account service create account parse balance failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	if _, err := s.accountRepo.GetByAccountNumber(ctx, req.AccountNumber); err == nil {
		err := commons.ErrDuplicateAccount
		logger.Error("account service create account duplicate number", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("Account number already in use"), err
	} else if !errors.Is(err, commons.ErrRecordNotFound) {
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	customerID, err := uuid.Parse(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", "customerId must be a valid UUID"), err
	}

	state := true
	if req.State != nil {
		state = *req.State
	}

	account := domain.Account{
		AccountNumber: req.AccountNumber,
		CustomerID:    customerID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		AccountType:   domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType))),
		Balance:       balance,
		State:         state,
	}

	created, err := s.accountRepo.Save(ctx, account)
	if err != nil {
		// The existence check above races with concurrent creates; the unique
		// index settles it.
		if errors.Is(err, commons.ErrDuplicateAccount) {
			return commons.ErrorResponse[models.AccountResponse]("Account number already in use"), err
		}
		logger.Error("account service create account repository failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	if err := s.publisher.Publish(ctx, events.TypeAccountCreated, models.MapAccountToResponse(created)); err != nil {
		logger.Error("account service publish account created failed", err, logger.Fields{
			"accountNumber": created.AccountNumber,
		})
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})

	return commons.SuccessResponse("account created successfully", models.MapAccountToResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber int64) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service get account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		logger.Error("account service get account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", models.MapAccountToResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, customerID string, accountType string) (commons.Response[[]models.AccountResponse], error) {
	logger.Info("account service list accounts request", logger.Fields{
		"customerId":  customerID,
		"accountType": accountType,
	})

	customerID = strings.TrimSpace(customerID)
	accountType = strings.ToUpper(strings.TrimSpace(accountType))

	var customerFilter uuid.UUID
	if customerID != "" {
		parsed, err := uuid.Parse(customerID)
		if err != nil {
			err = errors.New("customerId must be a valid UUID")
			return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), err
		}
		customerFilter = parsed
	}
	if accountType != "" &&
		accountType != string(domain.AccountTypeSavings) &&
		accountType != string(domain.AccountTypeCurrent) {
		err := errors.New("accountType must be one of SAVINGS, CURRENT")
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), err
	}

	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	filtered := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		if customerFilter != uuid.Nil && account.CustomerID != customerFilter {
			continue
		}
		if accountType != "" && account.AccountType != domain.AccountType(accountType) {
			continue
		}
		filtered = append(filtered, models.MapAccountToResponse(account))
	}

	logger.Info("account service list accounts success", logger.Fields{
		"count": len(filtered),
	})

	return commons.SuccessResponse("accounts fetched successfully", filtered), nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, accountNumber int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update account request", logger.Fields{
		"accountNumber": accountNumber,
		"payload":       logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service update account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	// Save rewrites the whole row including the balance, so updates hold the
	// same per-account lock as movements.
	unlock := s.locks.Lock(accountNumber)
	defer unlock()

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	if req.AccountType != nil {
		account.AccountType = domain.AccountType(strings.ToUpper(strings.TrimSpace(*req.AccountType)))
	}
	if req.State != nil {
		account.State = *req.State
	}

	updated, err := s.accountRepo.Save(ctx, account)
	if err != nil {
		logger.Error("account service update account repository failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	logger.Info("account service update account success", logger.Fields{
		"accountNumber": accountNumber,
	})

	return commons.SuccessResponse("account updated successfully", models.MapAccountToResponse(updated)), nil
}

// DeleteAccount closes the account by flipping its state. The record and its
// movements stay in place.
func (s *AccountService) DeleteAccount(ctx context.Context, accountNumber int64) (commons.Response[models.DeleteAccountResponse], error) {
	logger.Info("account service delete account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	unlock := s.locks.Lock(accountNumber)
	defer unlock()

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DeleteAccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.DeleteAccountResponse]("failed to delete account", "Unable to delete account right now"), err
	}

	account.State = false
	if _, err := s.accountRepo.Save(ctx, account); err != nil {
		logger.Error("account service delete account repository failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.DeleteAccountResponse]("failed to delete account", "Unable to delete account right now"), err
	}

	logger.Info("account service delete account success", logger.Fields{
		"accountNumber": accountNumber,
	})

	response := models.DeleteAccountResponse{
		AccountNumber: accountNumber,
		State:         false,
	}

	return commons.SuccessResponse("account deleted successfully", response), nil
}

func parseBalance(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("balance must be numeric")
	}
	if parsed.IsNegative() {
		return decimal.Zero, errors.New("balance cannot be negative")
	}

	return parsed.Round(2), nil
}
