package repositories

import (
	"fmt"
	"log/slog"

	"parking-gate/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

const scanEventPrefix = "scan:"

// Nanosecond timestamps; the default CBOR time mode truncates to seconds.
var eventEncoding, _ = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()

type IScanEventRepository interface {
	Store(event domain.ScanEvent) error
	Recent(limit int) ([]domain.ScanEvent, error)
	All(fn func(key string, event domain.ScanEvent) error) error
}

type ScanEventRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewScanEventRepository(db *badger.DB, log *slog.Logger) ScanEventRepository {
	return ScanEventRepository{db: db, log: log}
}

// Store persists a scan event in BadgerDB.
// The key is formatted as "scan:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Keep two scans finishing at the same nanosecond apart.
func (r ScanEventRepository) Store(event domain.ScanEvent) error {
	key := fmt.Sprintf("%s%019d:%s", scanEventPrefix, event.At.UnixNano(), event.ID)
	bytes, err := eventEncoding.Marshal(event)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// Recent returns at most limit events, newest first.
func (r ScanEventRepository) Recent(limit int) ([]domain.ScanEvent, error) {
	var events []domain.ScanEvent
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(scanEventPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts after the last possible key of the prefix
		seekKey := append([]byte(scanEventPrefix), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(events) == limit {
				break
			}
			event, err := decodeScanEvent(it.Item())
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	return events, err
}

// All walks every event in chronological order.
func (r ScanEventRepository) All(fn func(key string, event domain.ScanEvent) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(scanEventPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			event, err := decodeScanEvent(item)
			if err != nil {
				r.log.Warn("Skipping undecodable scan event", "key", string(item.Key()), "error", err)
				continue
			}
			if err := fn(string(item.Key()), event); err != nil {
				return err
			}
		}
		return nil
	})
}

func decodeScanEvent(item *badger.Item) (domain.ScanEvent, error) {
	var event domain.ScanEvent
	err := item.Value(func(value []byte) error {
		return cbor.Unmarshal(value, &event)
	})
	return event, err
}
