//go:generate go run go.uber.org/mock/mockgen -source=message_repository.go -destination=../../mocks/mock_message_repository.go -package=mocks
package storage

import (
	"bytes"
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const markReadBatchSize = 256

type IMessageRepository interface {
	StoreMessage(message chat.Message) (chat.Message, error)
	GetPage(roomID chat.RoomID, page chat.Page) ([]chat.Message, error)
	GetLatest(roomID chat.RoomID) (chat.Message, bool, error)
	GetMessagesByKeys(keys []string) ([]chat.Message, error)
	MarkRead(roomID chat.RoomID, readerID string, at time.Time) (int, error)
}

type MessageRepository struct {
	db    *badger.DB
	log   *slog.Logger
	rooms sync.Map
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// lastKey holds the latest createdAt of a room. Every store reads and writes it,
// so two concurrent stores on one room always conflict.
func lastKey(roomID chat.RoomID) []byte {
	return []byte(fmt.Sprintf("room:last:%s", roomID))
}

func messagePrefix(roomID chat.RoomID) []byte {
	return []byte(fmt.Sprintf("msg:%s:", roomID))
}

// MessageKey orders messages of a room by creation time,
// with the message ID breaking ties between equal timestamps.
func MessageKey(message chat.Message) string {
	return fmt.Sprintf("msg:%s:%019d:%s", message.RoomID, message.CreatedAt.UnixNano(), message.ID)
}

// StoreMessage persists the message and returns it with its effective timestamp.
// A timestamp not strictly after the room's latest one is moved 1ns past it.
func (m *MessageRepository) StoreMessage(message chat.Message) (chat.Message, error) {
	lock := m.roomLock(message.RoomID)
	lock.Lock()
	defer lock.Unlock()

	requested := message.CreatedAt.UTC()
	err := retryOnConflict(m.log, maxTxnRetries, func() error {
		return m.db.Update(func(txn *badger.Txn) error {
			message.CreatedAt = requested
			last, ok, err := lastTimestamp(txn, message.RoomID)
			if err != nil {
				return err
			}
			if ok && !message.CreatedAt.After(last) {
				message.CreatedAt = last.Add(time.Nanosecond)
			}
			data, err := encode(fromMessage(message))
			if err != nil {
				return err
			}
			if err = txn.Set([]byte(MessageKey(message)), data); err != nil {
				return err
			}
			return txn.Set(lastKey(message.RoomID), []byte(fmt.Sprintf("%019d", message.CreatedAt.UnixNano())))
		})
	})
	if err != nil {
		return chat.Message{}, fmt.Errorf("error during message storage: %w", err)
	}
	return message, nil
}

// GetPage skips page.Offset() messages from the newest one, keeps page.Limit,
// and returns them oldest first.
func (m *MessageRepository) GetPage(roomID chat.RoomID, page chat.Page) ([]chat.Message, error) {
	if page.OutOfRange() {
		return []chat.Message{}, nil
	}
	messages := make([]chat.Message, 0, page.Limit)
	err := m.db.View(func(txn *badger.Txn) error {
		it := newReverseIterator(txn, roomID, true)
		defer it.Close()

		skipped := 0
		for it.Seek(reverseSeekKey(roomID)); it.ValidForPrefix(messagePrefix(roomID)); it.Next() {
			if skipped < page.Offset() {
				skipped++
				continue
			}
			message, err := readMessage(it.Item())
			if err != nil {
				return err
			}
			messages = append(messages, message)
			if len(messages) == page.Limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during messages fetch: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (m *MessageRepository) GetLatest(roomID chat.RoomID) (chat.Message, bool, error) {
	var latest chat.Message
	var found bool
	err := m.db.View(func(txn *badger.Txn) error {
		it := newReverseIterator(txn, roomID, true)
		defer it.Close()

		it.Seek(reverseSeekKey(roomID))
		if !it.ValidForPrefix(messagePrefix(roomID)) {
			return nil
		}
		var err error
		latest, err = readMessage(it.Item())
		found = err == nil
		return err
	})
	return latest, found, err
}

// GetMessagesByKeys loads messages in the order of the keys; missing keys are skipped.
func (m *MessageRepository) GetMessagesByKeys(keys []string) ([]chat.Message, error) {
	messages := make([]chat.Message, 0, len(keys))
	err := m.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			message, err := readMessage(item)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	return messages, err
}

// MarkRead adds a receipt for readerID to every message of the room lacking one.
// The room is walked in bounded transactions so a long history never exceeds
// badger's transaction size. It returns how many messages changed.
func (m *MessageRepository) MarkRead(roomID chat.RoomID, readerID string, at time.Time) (int, error) {
	total := 0
	var cursor []byte
	for {
		updated, last, more, err := m.markReadBatch(roomID, readerID, at.UTC(), cursor)
		if err != nil {
			return total, fmt.Errorf("error during mark read: %w", err)
		}
		total += updated
		if !more {
			return total, nil
		}
		cursor = last
	}
}

func (m *MessageRepository) markReadBatch(roomID chat.RoomID, readerID string, at time.Time, after []byte) (int, []byte, bool, error) {
	var updated int
	var last []byte
	var more bool
	err := retryOnConflict(m.log, maxTxnRetries, func() error {
		return m.db.Update(func(txn *badger.Txn) error {
			pending, lastKey, hasMore, err := collectUnread(txn, roomID, readerID, after)
			if err != nil {
				return err
			}
			for key, message := range pending {
				message.MarkRead(readerID, at)
				data, err := encode(fromMessage(message))
				if err != nil {
					return err
				}
				if err = txn.Set([]byte(key), data); err != nil {
					return err
				}
			}
			updated, last, more = len(pending), lastKey, hasMore
			return nil
		})
	})
	return updated, last, more, err
}

// collectUnread scans at most markReadBatchSize messages after the cursor.
func collectUnread(txn *badger.Txn, roomID chat.RoomID, readerID string, after []byte) (map[string]chat.Message, []byte, bool, error) {
	prefix := messagePrefix(roomID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	pending := make(map[string]chat.Message)
	var last []byte
	scanned := 0
	start := prefix
	if after != nil {
		start = after
	}
	for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
		key := it.Item().KeyCopy(nil)
		if after != nil && bytes.Equal(key, after) {
			continue
		}
		if scanned == markReadBatchSize {
			return pending, last, true, nil
		}
		scanned++
		last = key
		message, err := readMessage(it.Item())
		if err != nil {
			return nil, nil, false, err
		}
		if !message.IsReadBy(readerID) {
			pending[string(key)] = message
		}
	}
	return pending, last, false, nil
}

// roomLock serializes stores of one room inside this process so they do not
// burn their conflict retries against each other.
func (m *MessageRepository) roomLock(roomID chat.RoomID) *sync.Mutex {
	lock, _ := m.rooms.LoadOrStore(roomID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// lastTimestamp reads the room's last key, falling back to the newest message key.
func lastTimestamp(txn *badger.Txn, roomID chat.RoomID) (time.Time, bool, error) {
	item, err := txn.Get(lastKey(roomID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return latestTimestamp(txn, roomID)
	}
	if err != nil {
		return time.Time{}, false, err
	}
	var nanos int64
	err = item.Value(func(val []byte) error {
		var parseErr error
		nanos, parseErr = strconv.ParseInt(string(val), 10, 64)
		return parseErr
	})
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed last timestamp of room %s: %w", roomID, err)
	}
	return time.Unix(0, nanos).UTC(), true, nil
}

func latestTimestamp(txn *badger.Txn, roomID chat.RoomID) (time.Time, bool, error) {
	it := newReverseIterator(txn, roomID, false)
	defer it.Close()

	prefix := messagePrefix(roomID)
	it.Seek(reverseSeekKey(roomID))
	if !it.ValidForPrefix(prefix) {
		return time.Time{}, false, nil
	}
	key := it.Item().Key()
	if len(key) < len(prefix)+19 {
		return time.Time{}, false, fmt.Errorf("malformed message key %q", key)
	}
	nanos, err := strconv.ParseInt(string(key[len(prefix):len(prefix)+19]), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed message key %q: %w", key, err)
	}
	return time.Unix(0, nanos).UTC(), true, nil
}

func newReverseIterator(txn *badger.Txn, roomID chat.RoomID, prefetch bool) *badger.Iterator {
	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.PrefetchValues = prefetch
	opts.Prefix = messagePrefix(roomID)
	return txn.NewIterator(opts)
}

// reverseSeekKey sorts after every key of the room.
func reverseSeekKey(roomID chat.RoomID) []byte {
	return append(messagePrefix(roomID), 0xFF)
}

func readMessage(item *badger.Item) (chat.Message, error) {
	var doc messageDocument
	err := item.Value(func(val []byte) error {
		var err error
		doc, err = decode[messageDocument](val)
		return err
	})
	if err != nil {
		return chat.Message{}, err
	}
	return toMessage(doc)
}
