package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/domain"
	"github.com/api-sage/account-ledger/src/internal/usecase/services"
)

func newMovementFixture() (*services.MovementService, *services.AccountService) {
	accountRepo := memory.NewAccountRepository()
	movementRepo := memory.NewMovementRepository(accountRepo)
	locks := services.NewAccountLocks()

	accountSvc := services.NewAccountService(accountRepo, locks, nil)
	movementSvc := services.NewMovementService(accountRepo, movementRepo, locks, nil, nil)

	return movementSvc, accountSvc
}

func createTestAccount(t *testing.T, svc *services.AccountService, accountNumber int64, balance string) {
	t.Helper()

	req := validCreateRequest(accountNumber)
	req.Balance = balance
	if _, err := svc.CreateAccount(context.Background(), req); err != nil {
		t.Fatalf("unexpected error creating account %d: %v", accountNumber, err)
	}
}

func TestMovementServiceCreditMovement(t *testing.T) {
	movementSvc, accountSvc := newMovementFixture()
	ctx := context.Background()
	createTestAccount(t, accountSvc, 555555, "1000")

	response, err := movementSvc.CreateMovement(ctx, models.CreateMovementRequest{
		AccountNumber: 555555,
		MovementType:  "CREDIT",
		Amount:        "500",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Data.BalanceBefore != "1000.00" {
		t.Fatalf("expected balanceBefore 1000.00, got %s", response.Data.BalanceBefore)
	}
	if response.Data.BalanceAfter != "1500.00" {
		t.Fatalf("expected balanceAfter 1500.00, got %s", response.Data.BalanceAfter)
	}
	if response.Data.ID == "" {
		t.Fatal("expected generated movement id")
	}

	account, err := accountSvc.GetAccount(ctx, 555555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Data.Balance != "1500.00" {
		t.Fatalf("expected persisted balance 1500.00, got %s", account.Data.Balance)
	}
}

func TestMovementServiceDebitInsufficientBalance(t *testing.T) {
	movementSvc, accountSvc := newMovementFixture()
	ctx := context.Background()
	createTestAccount(t, accountSvc, 555555, "100")

	response, err := movementSvc.CreateMovement(ctx, models.CreateMovementRequest{
		AccountNumber: 555555,
		MovementType:  "DEBIT",
		Amount:        "200",
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if response.Message != "Insufficient balance" {
		t.Fatalf("unexpected message: %q", response.Message)
	}

	account, err := accountSvc.GetAccount(ctx, 555555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Data.Balance != "100.00" {
		t.Fatalf("expected balance unchanged at 100.00, got %s", account.Data.Balance)
	}

	accountNumber := int64(555555)
	movements, err := movementSvc.ListMovements(ctx, &accountNumber, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*movements.Data) != 0 {
		t.Fatalf("expected no recorded movements, got %d", len(*movements.Data))
	}
}

func TestMovementServiceAccountNotFound(t *testing.T) {
	movementSvc, _ := newMovementFixture()

	response, err := movementSvc.CreateMovement(context.Background(), models.CreateMovementRequest{
		AccountNumber: 999999,
		MovementType:  "CREDIT",
		Amount:        "50",
	})
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if response.Message != "Account not found" {
		t.Fatalf("unexpected message: %q", response.Message)
	}
}

func TestMovementServiceValidationErrors(t *testing.T) {
	movementSvc, _ := newMovementFixture()
	ctx := context.Background()

	cases := []models.CreateMovementRequest{
		{},
		{AccountNumber: 555555, MovementType: "TRANSFER", Amount: "50"},
		{AccountNumber: 555555, MovementType: "CREDIT", Amount: "0"},
		{AccountNumber: 555555, MovementType: "CREDIT", Amount: "-10"},
		{AccountNumber: 555555, MovementType: "CREDIT", Amount: "abc"},
		{AccountNumber: 99999, MovementType: "CREDIT", Amount: "50"},
	}

	for _, req := range cases {
		if _, err := movementSvc.CreateMovement(ctx, req); err == nil {
			t.Fatalf("expected validation error for request %+v", req)
		}
	}
}

func TestMovementServiceListMovementsFiltersByType(t *testing.T) {
	movementSvc, accountSvc := newMovementFixture()
	ctx := context.Background()
	createTestAccount(t, accountSvc, 555555, "1000")

	requests := []models.CreateMovementRequest{
		{AccountNumber: 555555, MovementType: "CREDIT", Amount: "500"},
		{AccountNumber: 555555, MovementType: "DEBIT", Amount: "200"},
		{AccountNumber: 555555, MovementType: "CREDIT", Amount: "100"},
	}
	for _, req := range requests {
		if _, err := movementSvc.CreateMovement(ctx, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	accountNumber := int64(555555)

	all, err := movementSvc.ListMovements(ctx, &accountNumber, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*all.Data) != 3 {
		t.Fatalf("expected 3 movements, got %d", len(*all.Data))
	}

	debits, err := movementSvc.ListMovements(ctx, &accountNumber, "DEBIT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*debits.Data) != 1 {
		t.Fatalf("expected 1 debit, got %d", len(*debits.Data))
	}
	if (*debits.Data)[0].Amount != "200.00" {
		t.Fatalf("expected debit of 200.00, got %s", (*debits.Data)[0].Amount)
	}

	if _, err := movementSvc.ListMovements(ctx, &accountNumber, "TRANSFER"); err == nil {
		t.Fatal("expected validation error for unknown movementType filter")
	}
}

func TestMovementServiceListMovementsWithoutAccountNumber(t *testing.T) {
	movementSvc, accountSvc := newMovementFixture()
	ctx := context.Background()
	createTestAccount(t, accountSvc, 555555, "1000")

	if _, err := movementSvc.CreateMovement(ctx, models.CreateMovementRequest{
		AccountNumber: 555555,
		MovementType:  "CREDIT",
		Amount:        "500",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	response, err := movementSvc.ListMovements(ctx, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !response.Success {
		t.Fatalf("expected success response, got %q", response.Message)
	}
	if len(*response.Data) != 0 {
		t.Fatalf("expected empty movement list, got %d entries", len(*response.Data))
	}
}

func TestMovementServiceConcurrentCreditsSerialize(t *testing.T) {
	movementSvc, accountSvc := newMovementFixture()
	ctx := context.Background()
	createTestAccount(t, accountSvc, 555555, "0")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = movementSvc.CreateMovement(ctx, models.CreateMovementRequest{
				AccountNumber: 555555,
				MovementType:  "CREDIT",
				Amount:        "100",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("unexpected error from goroutine %d: %v", i, err)
		}
	}

	account, err := accountSvc.GetAccount(ctx, 555555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Data.Balance != "200.00" {
		t.Fatalf("expected balance 200.00, got %s", account.Data.Balance)
	}

	accountNumber := int64(555555)
	movements, err := movementSvc.ListMovements(ctx, &accountNumber, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*movements.Data) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(*movements.Data))
	}

	recorded := *movements.Data
	sort.Slice(recorded, func(i, j int) bool {
		return recorded[i].BalanceBefore < recorded[j].BalanceBefore
	})
	if recorded[0].BalanceBefore != "0.00" || recorded[0].BalanceAfter != "100.00" {
		t.Fatalf("unexpected first movement: %s -> %s", recorded[0].BalanceBefore, recorded[0].BalanceAfter)
	}
	if recorded[1].BalanceBefore != "100.00" || recorded[1].BalanceAfter != "200.00" {
		t.Fatalf("unexpected second movement: %s -> %s", recorded[1].BalanceBefore, recorded[1].BalanceAfter)
	}
}

func TestMovementServiceConcurrentMixedMovements(t *testing.T) {
	movementSvc, accountSvc := newMovementFixture()
	ctx := context.Background()
	createTestAccount(t, accountSvc, 555555, "1000")

	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		movementType := "CREDIT"
		if i%2 == 0 {
			movementType = "DEBIT"
		}
		wg.Add(1)
		go func(movementType string) {
			defer wg.Done()
			_, err := movementSvc.CreateMovement(ctx, models.CreateMovementRequest{
				AccountNumber: 555555,
				MovementType:  movementType,
				Amount:        "10",
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(movementType)
	}
	wg.Wait()

	account, err := accountSvc.GetAccount(ctx, 555555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Data.Balance != "1000.00" {
		t.Fatalf("expected balance 1000.00 after balanced movements, got %s", account.Data.Balance)
	}

	accountNumber := int64(555555)
	movements, err := movementSvc.ListMovements(ctx, &accountNumber, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*movements.Data) != workers {
		t.Fatalf("expected %d movements, got %d", workers, len(*movements.Data))
	}
	for _, movement := range *movements.Data {
		if movement.BalanceBefore == movement.BalanceAfter {
			t.Fatalf("movement %s recorded no balance change", movement.ID)
		}
	}
}
