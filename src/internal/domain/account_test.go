package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountCreditIncreasesBalance(t *testing.T) {
	account := Account{AccountNumber: 123456, Balance: decimal.NewFromInt(1000)}

	movement, err := account.Credit(decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.Balance.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected balance 1500, got %s", account.Balance)
	}
	if !movement.BalanceBefore.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected balanceBefore 1000, got %s", movement.BalanceBefore)
	}
	if !movement.BalanceAfter.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected balanceAfter 1500, got %s", movement.BalanceAfter)
	}
	if movement.MovementType != MovementTypeCredit {
		t.Fatalf("expected movement type CREDIT, got %s", movement.MovementType)
	}
	if len(account.Movements) != 1 {
		t.Fatalf("expected 1 recorded movement, got %d", len(account.Movements))
	}
}

func TestAccountDebitDecreasesBalance(t *testing.T) {
	account := Account{AccountNumber: 123456, Balance: decimal.NewFromInt(1000)}

	movement, err := account.Debit(decimal.NewFromInt(250))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.Balance.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("expected balance 750, got %s", account.Balance)
	}
	if !movement.BalanceBefore.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected balanceBefore 1000, got %s", movement.BalanceBefore)
	}
	if !movement.BalanceAfter.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("expected balanceAfter 750, got %s", movement.BalanceAfter)
	}
}

func TestAccountDebitInsufficientBalanceLeavesAccountUntouched(t *testing.T) {
	account := Account{AccountNumber: 123456, Balance: decimal.NewFromInt(100)}

	_, err := account.Debit(decimal.NewFromInt(200))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance unchanged at 100, got %s", account.Balance)
	}
	if len(account.Movements) != 0 {
		t.Fatalf("expected no recorded movements, got %d", len(account.Movements))
	}
}

func TestAccountDebitToExactlyZeroSucceeds(t *testing.T) {
	account := Account{AccountNumber: 123456, Balance: decimal.NewFromInt(100)}

	movement, err := account.Debit(decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.Balance.IsZero() {
		t.Fatalf("expected balance 0, got %s", account.Balance)
	}
	if !movement.BalanceAfter.IsZero() {
		t.Fatalf("expected balanceAfter 0, got %s", movement.BalanceAfter)
	}
}

func TestAccountRejectsNonPositiveAmounts(t *testing.T) {
	amounts := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)}

	for _, amount := range amounts {
		account := Account{AccountNumber: 123456, Balance: decimal.NewFromInt(100)}

		if _, err := account.Debit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for debit of %s, got %v", amount, err)
		}
		if _, err := account.Credit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for credit of %s, got %v", amount, err)
		}
		if !account.Balance.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected balance unchanged at 100, got %s", account.Balance)
		}
	}
}

func TestValidAccountNumberBounds(t *testing.T) {
	cases := []struct {
		accountNumber int64
		valid         bool
	}{
		{99999, false},
		{100000, true},
		{123456789, true},
		{9999999999, true},
		{10000000000, false},
		{0, false},
		{-1, false},
	}

	for _, tc := range cases {
		if got := ValidAccountNumber(tc.accountNumber); got != tc.valid {
			t.Fatalf("ValidAccountNumber(%d) = %v, expected %v", tc.accountNumber, got, tc.valid)
		}
	}
}
