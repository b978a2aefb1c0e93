package services

import (
	"clinic-chat/domain/chat"
	"clinic-chat/infrastructure/storage"
	"clinic-chat/moderation"
	"clinic-chat/observability"
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var (
	alice = chat.NewPatient("alice")
	bob   = chat.NewProvider("bob")
	carol = chat.NewPatient("carol")
)

type fixture struct {
	log        *slog.Logger
	monitoring *observability.MonitoringManager
	rooms      *storage.RoomRepository
	messages   *storage.MessageRepository
	patients   *storage.ProfileRepository
	providers  *storage.ProfileRepository
	index      *storage.SearchIndex
	directory  *RoomDirectory
	store      *MessageStore
	aggregator *ConversationAggregator
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	t.Cleanup(func() { _ = writer.Close() })

	moderator, err := moderation.NewModerator([]string{"idiot"}, '*', log)
	req.NoError(err)

	f := fixture{
		log:        log,
		monitoring: observability.NewMonitoringManager(log, 1),
		rooms:      storage.NewRoomRepository(db, log),
		messages:   storage.NewMessageRepository(db, log),
		patients:   storage.NewProfileRepository(db, chat.CategoryPatient, log),
		providers:  storage.NewProfileRepository(db, chat.CategoryProvider, log),
		index:      storage.NewSearchIndex(writer, log),
	}
	req.NoError(f.patients.SaveProfile(chat.Profile{ID: "alice", Category: chat.CategoryPatient, Name: "Alice"}))
	req.NoError(f.providers.SaveProfile(chat.Profile{ID: "bob", Category: chat.CategoryProvider, Name: "Dr Bob", Title: "GP"}))
	req.NoError(f.patients.SaveProfile(chat.Profile{ID: "carol", Category: chat.CategoryPatient, Name: "Carol"}))

	enricher := NewEnricher(NewDirectories(log, f.monitoring, f.patients, f.providers))
	f.directory = NewRoomDirectory(log, f.rooms)
	f.store = NewMessageStore(log, f.rooms, f.messages, f.index, enricher, &moderator, f.monitoring, 100)
	f.aggregator = NewConversationAggregator(log, f.rooms, f.messages, f.index, enricher)
	return f
}

func (f fixture) room(t *testing.T, participants ...chat.Account) chat.Room {
	t.Helper()
	room, err := f.directory.InitiateChat(chat.InitiateChatCommand{Participants: participants[1:], Initiator: participants[0]})
	require.NoError(t, err)
	return room
}
