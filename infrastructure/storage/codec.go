package storage

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"
)

const maxTxnRetries = 5

type accountDocument struct {
	ID       string `msgpack:"id"`
	Category string `msgpack:"category"`
}

type roomDocument struct {
	ID           string            `msgpack:"id"`
	Participants []accountDocument `msgpack:"participants"`
	CreatedAt    int64             `msgpack:"created_at"`
}

type readReceiptDocument struct {
	ReaderID string `msgpack:"reader_id"`
	ReadAt   int64  `msgpack:"read_at"`
}

type messageDocument struct {
	ID        string                `msgpack:"id"`
	RoomID    string                `msgpack:"room_id"`
	Body      string                `msgpack:"body"`
	Sender    accountDocument       `msgpack:"sender"`
	Language  string                `msgpack:"language"`
	Censored  bool                  `msgpack:"censored"`
	CreatedAt int64                 `msgpack:"created_at"`
	ReadBy    []readReceiptDocument `msgpack:"read_by"`
}

type profileDocument struct {
	ID        string `msgpack:"id"`
	Category  string `msgpack:"category"`
	Name      string `msgpack:"name"`
	Title     string `msgpack:"title"`
	AvatarURL string `msgpack:"avatar_url"`
}

func encode[T any](doc T) ([]byte, error) {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal failed: %w", err)
	}
	return data, nil
}

func decode[T any](data []byte) (T, error) {
	var doc T
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("unmarshal failed: %w", err)
	}
	return doc, nil
}

// retryOnConflict replays a badger transaction that lost a write race.
// Once the retries are exhausted the error is reported as errors.ErrConflict.
func retryOnConflict(log *slog.Logger, attempts int, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); !errors.Is(err, badger.ErrConflict) {
			return err
		}
		log.Debug("Transaction conflict, retrying", "attempt", attempt)
	}
	return fmt.Errorf("%w: %v", errors.ErrConflict, err)
}

func fromAccount(a chat.Account) accountDocument {
	return accountDocument{ID: a.ID, Category: a.Category.String()}
}

func toAccount(doc accountDocument) chat.Account {
	category, _ := chat.ParseCategory(doc.Category)
	return chat.Account{ID: doc.ID, Category: category}
}

func fromRoom(room chat.Room) roomDocument {
	return roomDocument{
		ID:           room.ID.String(),
		Participants: lo.Map(room.Participants, func(a chat.Account, _ int) accountDocument { return fromAccount(a) }),
		CreatedAt:    room.CreatedAt.UnixNano(),
	}
}

func toRoom(doc roomDocument) chat.Room {
	return chat.Room{
		ID:           chat.RoomID(doc.ID),
		Participants: lo.Map(doc.Participants, func(a accountDocument, _ int) chat.Account { return toAccount(a) }),
		CreatedAt:    time.Unix(0, doc.CreatedAt).UTC(),
	}
}

func fromMessage(message chat.Message) messageDocument {
	return messageDocument{
		ID:        message.ID.String(),
		RoomID:    message.RoomID.String(),
		Body:      message.Body,
		Sender:    fromAccount(message.Sender),
		Language:  message.Language,
		Censored:  message.Censored,
		CreatedAt: message.CreatedAt.UnixNano(),
		ReadBy: lo.Map(message.ReadBy, func(r chat.ReadReceipt, _ int) readReceiptDocument {
			return readReceiptDocument{ReaderID: r.ReaderID, ReadAt: r.ReadAt.UnixNano()}
		}),
	}
}

func toMessage(doc messageDocument) (chat.Message, error) {
	parsedID, err := uuid.Parse(doc.ID)
	if err != nil {
		return chat.Message{}, err
	}
	return chat.Message{
		ID:        parsedID,
		RoomID:    chat.RoomID(doc.RoomID),
		Body:      doc.Body,
		Sender:    toAccount(doc.Sender),
		Language:  doc.Language,
		Censored:  doc.Censored,
		CreatedAt: time.Unix(0, doc.CreatedAt).UTC(),
		ReadBy: lo.Map(doc.ReadBy, func(r readReceiptDocument, _ int) chat.ReadReceipt {
			return chat.ReadReceipt{ReaderID: r.ReaderID, ReadAt: time.Unix(0, r.ReadAt).UTC()}
		}),
	}, nil
}

func fromProfile(p chat.Profile) profileDocument {
	return profileDocument{
		ID:        p.ID,
		Category:  p.Category.String(),
		Name:      p.Name,
		Title:     p.Title,
		AvatarURL: p.AvatarURL,
	}
}

func toProfile(doc profileDocument) chat.Profile {
	category, _ := chat.ParseCategory(doc.Category)
	return chat.Profile{
		ID:        doc.ID,
		Category:  category,
		Name:      doc.Name,
		Title:     doc.Title,
		AvatarURL: doc.AvatarURL,
		Resolved:  true,
	}
}
