package service_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/src/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountNumber int64) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, customerID string, accountType string) (commons.Response[[]models.AccountResponse], error)
	UpdateAccount(ctx context.Context, accountNumber int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, accountNumber int64) (commons.Response[models.DeleteAccountResponse], error)
}
