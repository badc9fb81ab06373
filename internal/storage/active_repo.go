package storage

import (
	"github.com/manav03panchal/daybook/internal/model"
)

// ActiveRepo reads and writes the running timer.
type ActiveRepo struct {
	txn Txn
}

// Active returns the running-timer repository for txn.
func Active(txn Txn) ActiveRepo {
	return ActiveRepo{txn: txn}
}

// Load returns the running timer, or nil when none is running.
func (r ActiveRepo) Load() (*model.ActiveTimer, error) {
	a := &model.ActiveTimer{}
	err := getJSON(r.txn, model.KeyActive, a)
	if IsErrKeyNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Save replaces the running timer.
func (r ActiveRepo) Save(a *model.ActiveTimer) error {
	return setJSON(r.txn, a)
}

// Clear stops tracking without logging anything.
func (r ActiveRepo) Clear() error {
	return deleteKey(r.txn, model.KeyActive)
}
