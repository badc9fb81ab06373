package storage

import (
	"github.com/manav03panchal/daybook/internal/model"
)

// SettingsRepo reads and writes the singleton settings record.
type SettingsRepo struct {
	txn Txn
}

// Settings returns the settings repository for txn.
func Settings(txn Txn) SettingsRepo {
	return SettingsRepo{txn: txn}
}

// Load returns the settings record, or an empty one when none is stored.
func (r SettingsRepo) Load() (*model.Settings, error) {
	s := &model.Settings{}
	err := getJSON(r.txn, model.KeySettings, s)
	if IsErrKeyNotFound(err) {
		return model.NewSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	s.Normalize()
	return s, nil
}

// Save overwrites the settings record.
func (r SettingsRepo) Save(s *model.Settings) error {
	s.Normalize()
	return setJSON(r.txn, s)
}
