package storage

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/daybook/internal/model"
)

// indexRecord is the value stored for each indexed entry.
type indexRecord struct {
	Date string `json:"date"`
}

// IndexRepo maps entry ids to the day bucket holding them.
type IndexRepo struct {
	txn Txn
}

// Index returns the entry index repository for txn.
func Index(txn Txn) IndexRepo {
	return IndexRepo{txn: txn}
}

// EntryKey returns the index key for an entry id.
func EntryKey(id string) string {
	return fmt.Sprintf("%s:%s", model.PrefixEntry, id)
}

// Lookup returns the date of the bucket holding id, or ErrKeyNotFound.
func (r IndexRepo) Lookup(id string) (string, error) {
	var rec indexRecord
	if err := getJSON(r.txn, EntryKey(id), &rec); err != nil {
		return "", err
	}
	return rec.Date, nil
}

// Put records that id lives in the bucket for date.
func (r IndexRepo) Put(id, date string) error {
	return setJSONKey(r.txn, EntryKey(id), indexRecord{Date: date})
}

// Remove drops id from the index.
func (r IndexRepo) Remove(id string) error {
	return deleteKey(r.txn, EntryKey(id))
}

// IDs lists every indexed entry id.
func (r IndexRepo) IDs() ([]string, error) {
	prefix := model.PrefixEntry + ":"
	keys, err := r.txn.Keys(prefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// Clear removes every index record.
func (r IndexRepo) Clear() error {
	ids, err := r.IDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := r.Remove(id); err != nil {
			return err
		}
	}
	return nil
}
