package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementTypeDebit  MovementType = "DEBIT"
	MovementTypeCredit MovementType = "CREDIT"
)

func ParseMovementType(raw string) (MovementType, bool) {
	switch MovementType(raw) {
	case MovementTypeDebit:
		return MovementTypeDebit, true
	case MovementTypeCredit:
		return MovementTypeCredit, true
	default:
		return "", false
	}
}

// Movement is one immutable ledger entry. It is created exclusively by
// Account.Debit and Account.Credit and is never updated or deleted.
type Movement struct {
	ID            uuid.UUID
	AccountNumber int64
	MovementType  MovementType
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Date          time.Time
}
