package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/domain"
	"github.com/api-sage/account-ledger/src/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == uuid.Nil {
		return r.insert(ctx, account)
	}
	return r.update(ctx, account)
}

func (r *AccountRepository) insert(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository insert", logger.Fields{
		"accountNumber": account.AccountNumber,
		"customerId":    account.CustomerID,
		"accountType":   account.AccountType,
	})

	const query = `
INSERT INTO accounts (
	account_number,
	customer_id,
	customer_name,
	account_type,
	balance,
	state
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		account.CustomerID,
		account.CustomerName,
		account.AccountType,
		account.Balance,
		account.State,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			logger.Info("account repository insert duplicate account number", logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return domain.Account{}, commons.ErrDuplicateAccount
		}
		logger.Error("account repository insert failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}

	logger.Info("account repository insert success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

func (r *AccountRepository) update(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository update", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	const query = `
UPDATE accounts
SET customer_name = $2,
    account_type = $3,
    balance = $4,
    state = $5,
    updated_at = NOW()
WHERE id = $1
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.CustomerName,
		account.AccountType,
		account.Balance,
		account.State,
	).Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository update failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}

	logger.Info("account repository update success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber int64) (domain.Account, error) {
	logger.Info("account repository get by account number", logger.Fields{
		"accountNumber": accountNumber,
	})

	const query = `
SELECT id, account_number, customer_id, customer_name, account_type, balance, state, created_at, updated_at
FROM accounts
WHERE account_number = $1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(
		&account.ID,
		&account.AccountNumber,
		&account.CustomerID,
		&account.CustomerName,
		&account.AccountType,
		&account.Balance,
		&account.State,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	logger.Info("account repository get all", nil)

	const query = `
SELECT id, account_number, customer_id, customer_name, account_type, balance, state, created_at, updated_at
FROM accounts
ORDER BY account_number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("account repository get all failed", err, nil)
		return nil, fmt.Errorf("get all accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.AccountNumber,
			&account.CustomerID,
			&account.CustomerName,
			&account.AccountType,
			&account.Balance,
			&account.State,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

// Delete hard-deletes an account row. Kept for external tooling; the ledger
// core soft-deletes through Save.
func (r *AccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	logger.Info("account repository delete", logger.Fields{
		"accountId": accountID,
	})

	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		logger.Error("account repository delete failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return commons.ErrRecordNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
