package services

import "sync"

// AccountLocks hands out one mutex per account number so balance-affecting
// operations against the same account are linearized while different accounts
// proceed in parallel. Both services share one registry because account
// updates rewrite the persisted balance. Locks are never evicted; the set of
// live account numbers is bounded by the account table.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for accountNumber and returns its unlock func.
func (l *AccountLocks) Lock(accountNumber int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[accountNumber]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[accountNumber] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
