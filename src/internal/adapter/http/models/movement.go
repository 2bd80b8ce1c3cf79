package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/account-ledger/src/internal/domain"
)

type CreateMovementRequest struct {
	AccountNumber int64  `json:"accountNumber"`
	MovementType  string `json:"movementType"`
	Amount        string `json:"amount"`
}

func (r CreateMovementRequest) Validate() error {
	var errs []string

	if r.AccountNumber == 0 {
		errs = append(errs, "accountNumber is required")
	} else if !domain.ValidAccountNumber(r.AccountNumber) {
		errs = append(errs, "accountNumber must be between 100000 and 9999999999")
	}

	movementType := strings.ToUpper(strings.TrimSpace(r.MovementType))
	if movementType == "" {
		errs = append(errs, "movementType is required")
	} else if _, ok := domain.ParseMovementType(movementType); !ok {
		errs = append(errs, "movementType must be one of DEBIT, CREDIT")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "amount must be greater than zero")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type MovementResponse struct {
	ID            string `json:"id"`
	AccountNumber int64  `json:"accountNumber"`
	MovementType  string `json:"movementType"`
	Amount        string `json:"amount"`
	BalanceBefore string `json:"balanceBefore"`
	BalanceAfter  string `json:"balanceAfter"`
	Date          string `json:"date"`
}

func MapMovementToResponse(movement domain.Movement) MovementResponse {
	return MovementResponse{
		ID:            movement.ID.String(),
		AccountNumber: movement.AccountNumber,
		MovementType:  string(movement.MovementType),
		Amount:        movement.Amount.StringFixed(2),
		BalanceBefore: movement.BalanceBefore.StringFixed(2),
		BalanceAfter:  movement.BalanceAfter.StringFixed(2),
		Date:          movement.Date.Format(time.RFC3339),
	}
}
