package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/account-ledger/src/internal/domain"
)

type CreateAccountRequest struct {
	AccountNumber int64  `json:"accountNumber"`
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance,omitempty"`
	State         *bool  `json:"state,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.AccountNumber == 0 {
		errs = append(errs, "accountNumber is required")
	} else if !domain.ValidAccountNumber(r.AccountNumber) {
		errs = append(errs, "accountNumber must be between 100000 and 9999999999")
	}

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	} else if _, err := uuid.Parse(strings.TrimSpace(r.CustomerID)); err != nil {
		errs = append(errs, "customerId must be a valid UUID")
	}

	if strings.TrimSpace(r.CustomerName) == "" {
		errs = append(errs, "customerName is required")
	}

	accountType := strings.ToUpper(strings.TrimSpace(r.AccountType))
	if accountType == "" {
		errs = append(errs, "accountType is required")
	} else if accountType != string(domain.AccountTypeSavings) && accountType != string(domain.AccountTypeCurrent) {
		errs = append(errs, "accountType must be one of SAVINGS, CURRENT")
	}

	if strings.TrimSpace(r.Balance) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(r.Balance))
		if err != nil {
			errs = append(errs, "balance must be numeric")
		} else if parsed.IsNegative() {
			errs = append(errs, "balance cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type UpdateAccountRequest struct {
	AccountType *string `json:"accountType,omitempty"`
	State       *bool   `json:"state,omitempty"`
}

func (r UpdateAccountRequest) Validate() error {
	var errs []string

	if r.AccountType == nil && r.State == nil {
		errs = append(errs, "at least one of accountType or state is required")
	}

	if r.AccountType != nil {
		accountType := strings.ToUpper(strings.TrimSpace(*r.AccountType))
		if accountType != string(domain.AccountTypeSavings) && accountType != string(domain.AccountTypeCurrent) {
			errs = append(errs, "accountType must be one of SAVINGS, CURRENT")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AccountResponse struct {
	ID            string `json:"id"`
	AccountNumber int64  `json:"accountNumber"`
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
	State         bool   `json:"state"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type DeleteAccountResponse struct {
	AccountNumber int64 `json:"accountNumber"`
	State         bool  `json:"state"`
}

func MapAccountToResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:            account.ID.String(),
		AccountNumber: account.AccountNumber,
		CustomerID:    account.CustomerID.String(),
		CustomerName:  account.CustomerName,
		AccountType:   string(account.AccountType),
		Balance:       account.Balance.StringFixed(2),
		State:         account.State,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}
