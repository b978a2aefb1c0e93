package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Entry is a human readable view of one stored key, used by the inspection tools.
type Entry struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Entity string `json:"entity"`
	At     string `json:"at"`
	Detail string `json:"detail"`
}

const timeLayout = "2006-01-02 15:04:05"

// Describe decodes a raw key/value pair. Unknown keys are reported as RAW.
func Describe(key string, val []byte) Entry {
	entry := Entry{Key: key, Kind: "RAW", Entity: "-", At: "-", Detail: fmt.Sprintf("%d bytes", len(val))}

	switch {
	case strings.HasPrefix(key, "room:id:"):
		doc, err := decode[roomDocument](val)
		if err != nil {
			entry.Detail = err.Error()
			return entry
		}
		room := toRoom(doc)
		entry.Kind = "ROOM"
		entry.Entity = room.ID.String()
		entry.At = room.CreatedAt.Format(timeLayout)
		entry.Detail = strings.Join(room.ParticipantIDs(), ", ")
	case strings.HasPrefix(key, "room:set:"):
		entry.Kind = "ROOM_SET"
		entry.Entity = string(val)
		entry.Detail = strings.TrimPrefix(key, "room:set:")
	case strings.HasPrefix(key, "room:last:"):
		entry.Kind = "ROOM_LAST"
		entry.Entity = strings.TrimPrefix(key, "room:last:")
		if nanos, err := strconv.ParseInt(string(val), 10, 64); err == nil {
			entry.At = time.Unix(0, nanos).UTC().Format(timeLayout)
		}
	case strings.HasPrefix(key, "room:member:"):
		entry.Kind = "MEMBER"
		entry.Detail = strings.TrimPrefix(key, "room:member:")
	case strings.HasPrefix(key, "msg:"):
		doc, err := decode[messageDocument](val)
		if err != nil {
			entry.Detail = err.Error()
			return entry
		}
		entry.Kind = "MESSAGE"
		entry.Entity = doc.RoomID
		entry.At = time.Unix(0, doc.CreatedAt).UTC().Format(timeLayout)
		entry.Detail = fmt.Sprintf("%s: %s (read by %d)", doc.Sender.ID, doc.Body, len(doc.ReadBy))
	case strings.HasPrefix(key, "profile:"):
		doc, err := decode[profileDocument](val)
		if err != nil {
			entry.Detail = err.Error()
			return entry
		}
		entry.Kind = "PROFILE"
		entry.Entity = doc.ID
		entry.Detail = strings.TrimSpace(doc.Category + " " + doc.Name + " " + doc.Title)
	}
	return entry
}

// ScanEntries describes every key starting with prefix, up to limit entries (0 means all).
func ScanEntries(db *badger.DB, prefix string, limit int) ([]Entry, error) {
	var entries []Entry
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				return nil
			}
			item := it.Item()
			err := item.Value(func(val []byte) error {
				entries = append(entries, Describe(string(item.Key()), val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return entries, err
}
