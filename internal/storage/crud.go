package storage

import (
	"encoding/json"
	"fmt"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/model"
)

// getJSON retrieves a value by key and unmarshals it into v.
func getJSON(txn Txn, key string, v any) error {
	data, err := txn.Get(key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return ErrKeyNotFound
		}
		if errors.Is(err, errors.ErrDatabaseCorrupted) {
			return err
		}
		return errors.NewSystemErrorWithOp("read "+key, "storage failure", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", errors.ErrDatabaseCorrupted, key, err)
	}
	return nil
}

// setJSON stores a model under its key.
func setJSON(txn Txn, v model.Model) error {
	return setJSONKey(txn, v.GetKey(), v)
}

func setJSONKey(txn Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := txn.Set(key, data); err != nil {
		return errors.NewSystemErrorWithOp("write "+key, "storage failure", err)
	}
	return nil
}

// deleteKey removes a key.
func deleteKey(txn Txn, key string) error {
	if err := txn.Delete(key); err != nil {
		return errors.NewSystemErrorWithOp("delete "+key, "storage failure", err)
	}
	return nil
}
