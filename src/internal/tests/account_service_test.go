package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/usecase/services"
)

func newAccountFixture() (*services.AccountService, *memory.AccountRepository) {
	repo := memory.NewAccountRepository()
	svc := services.NewAccountService(repo, services.NewAccountLocks(), nil)
	return svc, repo
}

func validCreateRequest(accountNumber int64) models.CreateAccountRequest {
	return models.CreateAccountRequest{
		AccountNumber: accountNumber,
		CustomerID:    "7f9c24e8-3b12-4a6d-9f01-2c8b5e7a1d43",
		CustomerName:  "Maria Lopez",
		AccountType:   "SAVINGS",
	}
}

func TestAccountServiceCreateAccountDefaults(t *testing.T) {
	svc, _ := newAccountFixture()

	response, err := svc.CreateAccount(context.Background(), validCreateRequest(555555))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !response.Success {
		t.Fatalf("expected success response, got %q", response.Message)
	}
	if response.Data == nil {
		t.Fatal("expected account data in response")
	}
	if response.Data.Balance != "0.00" {
		t.Fatalf("expected default balance 0.00, got %s", response.Data.Balance)
	}
	if !response.Data.State {
		t.Fatal("expected account to default to active state")
	}
	if response.Data.ID == "" {
		t.Fatal("expected generated account id")
	}
}

func TestAccountServiceCreateAccountWithOpeningBalance(t *testing.T) {
	svc, _ := newAccountFixture()

	req := validCreateRequest(555556)
	req.Balance = "1250.505"

	response, err := svc.CreateAccount(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Data.Balance != "1250.50" {
		t.Fatalf("expected balance rounded to 1250.50, got %s", response.Data.Balance)
	}
}

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	svc, _ := newAccountFixture()

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty create account request")
	}
}

func TestAccountServiceCreateAccountRejectsOutOfRangeNumber(t *testing.T) {
	svc, _ := newAccountFixture()

	for _, accountNumber := range []int64{99999, 10000000000} {
		req := validCreateRequest(accountNumber)
		if _, err := svc.CreateAccount(context.Background(), req); err == nil {
			t.Fatalf("expected validation error for account number %d", accountNumber)
		}
	}
}

func TestAccountServiceCreateAccountDuplicateNumber(t *testing.T) {
	svc, _ := newAccountFixture()

	if _, err := svc.CreateAccount(context.Background(), validCreateRequest(555555)); err != nil {
		t.Fatalf("unexpected error on first create: %v", err)
	}

	response, err := svc.CreateAccount(context.Background(), validCreateRequest(555555))
	if !errors.Is(err, commons.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	if response.Success {
		t.Fatal("expected error response for duplicate account number")
	}
	if response.Message != "Account number already in use" {
		t.Fatalf("unexpected message: %q", response.Message)
	}
}

func TestAccountServiceGetAccountNotFound(t *testing.T) {
	svc, _ := newAccountFixture()

	response, err := svc.GetAccount(context.Background(), 999999)
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if response.Message != "Account not found" {
		t.Fatalf("unexpected message: %q", response.Message)
	}
}

func TestAccountServiceListAccountsFilters(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()

	first := validCreateRequest(111111)
	first.AccountType = "SAVINGS"
	second := validCreateRequest(222222)
	second.AccountType = "CURRENT"
	third := validCreateRequest(333333)
	third.CustomerID = "b1f0a9e2-64c7-4d15-8a3e-0f92d6c47b58"
	third.CustomerName = "Jorge Ruiz"

	for _, req := range []models.CreateAccountRequest{first, second, third} {
		if _, err := svc.CreateAccount(ctx, req); err != nil {
			t.Fatalf("unexpected error creating account %d: %v", req.AccountNumber, err)
		}
	}

	all, err := svc.ListAccounts(ctx, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*all.Data) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(*all.Data))
	}

	byCustomer, err := svc.ListAccounts(ctx, first.CustomerID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*byCustomer.Data) != 2 {
		t.Fatalf("expected 2 accounts for customer, got %d", len(*byCustomer.Data))
	}

	byType, err := svc.ListAccounts(ctx, "", "current")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*byType.Data) != 1 {
		t.Fatalf("expected 1 CURRENT account, got %d", len(*byType.Data))
	}
	if (*byType.Data)[0].AccountNumber != 222222 {
		t.Fatalf("expected account 222222, got %d", (*byType.Data)[0].AccountNumber)
	}

	if _, err := svc.ListAccounts(ctx, "not-a-uuid", ""); err == nil {
		t.Fatal("expected validation error for malformed customerId filter")
	}
	if _, err := svc.ListAccounts(ctx, "", "CHECKING"); err == nil {
		t.Fatal("expected validation error for unknown accountType filter")
	}
}

func TestAccountServiceUpdateAccount(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, validCreateRequest(555555)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accountType := "CURRENT"
	state := false
	response, err := svc.UpdateAccount(ctx, 555555, models.UpdateAccountRequest{
		AccountType: &accountType,
		State:       &state,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Data.AccountType != "CURRENT" {
		t.Fatalf("expected account type CURRENT, got %s", response.Data.AccountType)
	}
	if response.Data.State {
		t.Fatal("expected account state false after update")
	}
	if response.Data.AccountNumber != 555555 {
		t.Fatalf("account number must not change, got %d", response.Data.AccountNumber)
	}
}

func TestAccountServiceUpdateAccountRequiresAField(t *testing.T) {
	svc, _ := newAccountFixture()

	if _, err := svc.UpdateAccount(context.Background(), 555555, models.UpdateAccountRequest{}); err == nil {
		t.Fatal("expected validation error for empty update request")
	}
}

func TestAccountServiceDeleteAccountDeactivates(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, validCreateRequest(555555)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	response, err := svc.DeleteAccount(ctx, 555555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Data.State {
		t.Fatal("expected deactivated state in delete response")
	}

	fetched, err := svc.GetAccount(ctx, 555555)
	if err != nil {
		t.Fatalf("expected account to remain fetchable, got %v", err)
	}
	if fetched.Data.State {
		t.Fatal("expected account state false after delete")
	}
}

func TestAccountServiceDeleteAccountNotFound(t *testing.T) {
	svc, _ := newAccountFixture()

	if _, err := svc.DeleteAccount(context.Background(), 999999); !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
