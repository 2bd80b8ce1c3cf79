package implementations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/api-sage/account-ledger/src/internal/commons"
	"github.com/api-sage/account-ledger/src/internal/domain"
	"github.com/api-sage/account-ledger/src/internal/logger"
)

type MovementRepository struct {
	db *sql.DB
}

func NewMovementRepository(db *sql.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

// Create writes the movement and the account's new balance in one transaction.
// The balance update is guarded on the movement's BalanceBefore, so a write
// against a stale balance rolls back instead of losing an update.
func (r *MovementRepository) Create(ctx context.Context, movement domain.Movement, account domain.Account) (domain.Movement, error) {
	logger.Info("movement repository create", logger.Fields{
		"accountNumber": movement.AccountNumber,
		"movementType":  movement.MovementType,
		"amount":        movement.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("movement repository begin tx failed", err, nil)
		return domain.Movement{}, fmt.Errorf("begin movement transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const balanceQuery = `
UPDATE accounts
SET balance = $2,
    updated_at = NOW()
WHERE id = $1
  AND balance = $3::numeric`

	result, err := tx.ExecContext(ctx, balanceQuery, account.ID, movement.BalanceAfter, movement.BalanceBefore)
	if err != nil {
		logger.Error("movement repository balance update failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Movement{}, fmt.Errorf("update account balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Movement{}, fmt.Errorf("update account balance rows affected: %w", err)
	}
	if rowsAffected == 0 {
		err = commons.ErrStaleBalance
		return domain.Movement{}, err
	}

	const movementQuery = `
INSERT INTO movements (
	account_id,
	account_number,
	movement_type,
	amount,
	balance_before,
	balance_after,
	movement_date
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	if err = tx.QueryRowContext(
		ctx,
		movementQuery,
		account.ID,
		movement.AccountNumber,
		movement.MovementType,
		movement.Amount,
		movement.BalanceBefore,
		movement.BalanceAfter,
		movement.Date,
	).Scan(&movement.ID); err != nil {
		logger.Error("movement repository insert failed", err, logger.Fields{
			"accountNumber": movement.AccountNumber,
		})
		return domain.Movement{}, fmt.Errorf("insert movement: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("movement repository commit tx failed", err, nil)
		return domain.Movement{}, fmt.Errorf("commit movement transaction: %w", err)
	}

	logger.Info("movement repository create success", logger.Fields{
		"movementId":    movement.ID,
		"accountNumber": movement.AccountNumber,
	})

	return movement, nil
}

func (r *MovementRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Movement, error) {
	logger.Info("movement repository get by account id", logger.Fields{
		"accountId": accountID,
	})

	const query = `
SELECT id, account_number, movement_type, amount, balance_before, balance_after, movement_date
FROM movements
WHERE account_id = $1
ORDER BY movement_date, id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("movement repository get by account id failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("get movements by account id: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.Movement, 0)
	for rows.Next() {
		var movement domain.Movement
		if err := rows.Scan(
			&movement.ID,
			&movement.AccountNumber,
			&movement.MovementType,
			&movement.Amount,
			&movement.BalanceBefore,
			&movement.BalanceAfter,
			&movement.Date,
		); err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		movements = append(movements, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movement rows: %w", err)
	}

	return movements, nil
}
