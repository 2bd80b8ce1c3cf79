package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
)

const (
	MinAccountNumber int64 = 100000
	MaxAccountNumber int64 = 9999999999
)

// Account is the ledger aggregate. Balance changes only through Debit and
// Credit, which append the matching Movement so balance and history stay
// consistent with each other.
type Account struct {
	ID            uuid.UUID
	AccountNumber int64
	CustomerID    uuid.UUID
	CustomerName  string
	AccountType   AccountType
	Balance       decimal.Decimal
	State         bool
	Movements     []Movement
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Debit subtracts amount from the balance. The balance is never allowed to go
// negative; on ErrInsufficientBalance the account is left exactly as it was.
func (a *Account) Debit(amount decimal.Decimal) (Movement, error) {
	if err := validateAmount(amount); err != nil {
		return Movement{}, err
	}

	balanceBefore := a.Balance
	balanceAfter := a.Balance.Sub(amount)
	if balanceAfter.IsNegative() {
		return Movement{}, ErrInsufficientBalance
	}

	a.Balance = balanceAfter
	movement := a.newMovement(MovementTypeDebit, amount, balanceBefore)
	a.Movements = append(a.Movements, movement)

	return movement, nil
}

// Credit adds amount to the balance. There is no upper bound.
func (a *Account) Credit(amount decimal.Decimal) (Movement, error) {
	if err := validateAmount(amount); err != nil {
		return Movement{}, err
	}

	balanceBefore := a.Balance
	a.Balance = a.Balance.Add(amount)
	movement := a.newMovement(MovementTypeCredit, amount, balanceBefore)
	a.Movements = append(a.Movements, movement)

	return movement, nil
}

func (a *Account) newMovement(movementType MovementType, amount, balanceBefore decimal.Decimal) Movement {
	return Movement{
		AccountNumber: a.AccountNumber,
		MovementType:  movementType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  a.Balance,
		Date:          time.Now().UTC(),
	}
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

func ValidAccountNumber(accountNumber int64) bool {
	return accountNumber >= MinAccountNumber && accountNumber <= MaxAccountNumber
}
