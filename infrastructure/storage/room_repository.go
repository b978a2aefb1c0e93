//go:generate go run go.uber.org/mock/mockgen -source=room_repository.go -destination=../../mocks/mock_room_repository.go -package=mocks
package storage

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IRoomRepository interface {
	FindOrCreate(participants []chat.Account, createdAt time.Time) (chat.Room, bool, error)
	GetRoom(roomID chat.RoomID) (chat.Room, error)
	GetRoomsForAccount(accountID string) ([]chat.Room, error)
}

type RoomRepository struct {
	db      *badger.DB
	log     *slog.Logger
	retries int
}

func NewRoomRepository(db *badger.DB, log *slog.Logger) *RoomRepository {
	return &RoomRepository{db: db, log: log, retries: maxTxnRetries}
}

func roomKey(roomID chat.RoomID) []byte {
	return []byte(fmt.Sprintf("room:id:%s", roomID))
}

func roomSetKey(identity string) []byte {
	return []byte(fmt.Sprintf("room:set:%s", identity))
}

func memberPrefix(accountID string) []byte {
	return []byte(fmt.Sprintf("room:member:%s:", accountID))
}

func memberKey(accountID string, roomID chat.RoomID) []byte {
	return append(memberPrefix(accountID), []byte(roomID)...)
}

// FindOrCreate returns the room owning this participant set, creating it when absent.
// The identity key read and the room writes share one transaction, so two concurrent
// creators conflict at commit and the loser retries into the lookup branch.
// When every retry loses, the set is looked up once more read-only: a lost race
// means another caller committed the room.
// The boolean reports whether the room was created by this call.
func (r *RoomRepository) FindOrCreate(participants []chat.Account, createdAt time.Time) (chat.Room, bool, error) {
	candidate := chat.Room{Participants: participants, CreatedAt: createdAt.UTC()}
	setKey := roomSetKey(candidate.IdentityKey())

	var room chat.Room
	var created bool
	err := retryOnConflict(r.log, r.retries, func() error {
		return r.db.Update(func(txn *badger.Txn) error {
			existing, found, err := findBySet(txn, setKey)
			if err != nil {
				return err
			}
			if found {
				room, created = existing, false
				return nil
			}

			room = candidate
			room.ID = chat.RoomID(uuid.NewString())
			data, err := encode(fromRoom(room))
			if err != nil {
				return err
			}
			if err = txn.Set(roomKey(room.ID), data); err != nil {
				return err
			}
			if err = txn.Set(setKey, []byte(room.ID)); err != nil {
				return err
			}
			for _, p := range room.Participants {
				if err = txn.Set(memberKey(p.ID, room.ID), nil); err != nil {
					return err
				}
			}
			created = true
			return nil
		})
	})
	if errors.Is(err, errors.ErrConflict) {
		conflict := err
		err = r.db.View(func(txn *badger.Txn) error {
			existing, found, lookupErr := findBySet(txn, setKey)
			if lookupErr != nil {
				return lookupErr
			}
			if !found {
				return conflict
			}
			room, created = existing, false
			return nil
		})
	}
	if err != nil {
		return chat.Room{}, false, err
	}
	if created {
		r.log.Debug("Room created", "room_id", room.ID, "participants", len(room.Participants))
	}
	return room, created, nil
}

func (r *RoomRepository) GetRoom(roomID chat.RoomID) (chat.Room, error) {
	var room chat.Room
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		room, err = getRoom(txn, roomID)
		return err
	})
	return room, err
}

// GetRoomsForAccount scans the member index; the result is unordered.
func (r *RoomRepository) GetRoomsForAccount(accountID string) ([]chat.Room, error) {
	var rooms []chat.Room
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := memberPrefix(accountID)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		var roomIDs []chat.RoomID
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			suffix := string(it.Item().Key()[len(prefix):])
			// An account ID containing ':' shares a prefix with a longer one
			if strings.Contains(suffix, ":") {
				continue
			}
			roomIDs = append(roomIDs, chat.RoomID(suffix))
		}
		it.Close()

		for _, id := range roomIDs {
			room, err := getRoom(txn, id)
			if err != nil {
				return err
			}
			rooms = append(rooms, room)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during rooms fetch: %w", err)
	}
	return rooms, nil
}

func findBySet(txn *badger.Txn, setKey []byte) (chat.Room, bool, error) {
	item, err := txn.Get(setKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return chat.Room{}, false, nil
	}
	if err != nil {
		return chat.Room{}, false, err
	}
	id, err := item.ValueCopy(nil)
	if err != nil {
		return chat.Room{}, false, err
	}
	room, err := getRoom(txn, chat.RoomID(id))
	return room, err == nil, err
}

func getRoom(txn *badger.Txn, roomID chat.RoomID) (chat.Room, error) {
	item, err := txn.Get(roomKey(roomID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return chat.Room{}, fmt.Errorf("%w: %s", errors.ErrRoomNotFound, roomID)
	}
	if err != nil {
		return chat.Room{}, err
	}
	var doc roomDocument
	err = item.Value(func(val []byte) error {
		doc, err = decode[roomDocument](val)
		return err
	})
	if err != nil {
		return chat.Room{}, err
	}
	return toRoom(doc), nil
}
