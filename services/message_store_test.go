package services

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"clinic-chat/mocks"
	"clinic-chat/observability"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMessageStore_PostMessage_Enriches_And_Marks_Sender(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t, alice, bob)

	// When alice posts in the room
	posted, err := f.store.PostMessage(context.Background(), chat.PostMessageCommand{Room: room.ID, Sender: alice, Content: "Hello doctor, my tooth still hurts a lot since the last appointment and I cannot sleep at night"})
	req.NoError(err)

	// Then the sender is the first reader
	req.True(posted.IsReadBy("alice"))
	req.False(posted.IsReadBy("bob"))
	req.Len(posted.ReadBy, 1)

	// And profiles come from the directory of each category
	req.Equal("Alice", posted.SenderProfile.Name)
	req.True(posted.SenderProfile.Resolved)
	req.Len(posted.Participants, 2)
	req.Equal("Dr Bob", posted.Participants[1].Name)
	req.Equal("GP", posted.Participants[1].Title)
	req.Equal("en", posted.Language)
	req.False(posted.Censored)
	req.Equal(uint64(1), f.monitoring.GetLatest().MessagesPosted)
}

func TestMessageStore_PostMessage_Censors(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t, alice, bob)

	posted, err := f.store.PostMessage(context.Background(), chat.PostMessageCommand{Room: room.ID, Sender: alice, Content: "you are an idiot"})
	req.NoError(err)

	req.Equal("you are an *****", posted.Body)
	req.True(posted.Censored)
	req.Equal(uint64(1), f.monitoring.GetLatest().MessagesCensored)
	req.Equal(uint64(1), f.monitoring.GetLatest().CensoredWords["idiot"])
}

func TestMessageStore_PostMessage_Rejections(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, alice, bob)

	tests := []struct {
		name     string
		cmd      chat.PostMessageCommand
		expected error
	}{
		{"Empty content", chat.PostMessageCommand{Room: room.ID, Sender: alice}, errors.ErrInvalidInput},
		{"Too long", chat.PostMessageCommand{Room: room.ID, Sender: alice, Content: strings.Repeat("é", 101)}, errors.ErrInvalidInput},
		{"Sender without id", chat.PostMessageCommand{Room: room.ID, Sender: chat.Account{Category: chat.CategoryPatient}, Content: "hi"}, errors.ErrInvalidInput},
		{"Unknown room", chat.PostMessageCommand{Room: "missing", Sender: alice, Content: "hi"}, errors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.store.PostMessage(context.Background(), tt.cmd)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestMessageStore_PostMessage_Placeholder_When_Directory_Fails(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	failing := mocks.NewMockIProfileDirectory(ctrl)
	room := f.room(t, alice, bob)

	// Given the provider directory is down
	failing.EXPECT().GetProfilesByIDs(gomock.Any(), []string{"bob"}).
		Return(nil, fmt.Errorf("directory unavailable")).
		Times(1)
	monitoring := observability.NewMonitoringManager(f.log, 1)
	enricher := NewEnricher(NewDirectories(f.log, monitoring, f.patients, failing))
	store := NewMessageStore(f.log, f.rooms, f.messages, nil, enricher, nil, monitoring, 0)

	// When bob posts
	posted, err := store.PostMessage(context.Background(), chat.PostMessageCommand{Room: room.ID, Sender: bob, Content: "See you at 10"})

	// Then the post succeeds with a placeholder for bob
	req.NoError(err)
	req.False(posted.SenderProfile.Resolved)
	req.Equal("bob", posted.SenderProfile.ID)
	req.Equal(chat.CategoryProvider, posted.SenderProfile.Category)
	req.True(posted.Participants[0].Resolved)
	req.Equal(uint64(1), monitoring.GetLatest().ProfileFallbacks)
}

func TestMessageStore_MarkRead_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t, alice, bob)
	at := time.Now().UTC()
	for i := 0; i < 3; i++ {
		_, err := f.store.PostMessage(context.Background(), chat.PostMessageCommand{
			Room: room.ID, Sender: alice, Content: fmt.Sprintf("message %d", i), CreatedAt: at.Add(time.Duration(i) * time.Second)})
		req.NoError(err)
	}

	updated, err := f.store.MarkRead(chat.MarkReadCommand{Room: room.ID, Reader: bob})
	req.NoError(err)
	req.Equal(3, updated)

	updated, err = f.store.MarkRead(chat.MarkReadCommand{Room: room.ID, Reader: bob})
	req.NoError(err)
	req.Zero(updated)

	// Alice already read her own messages
	updated, err = f.store.MarkRead(chat.MarkReadCommand{Room: room.ID, Reader: alice})
	req.NoError(err)
	req.Zero(updated)

	_, err = f.store.MarkRead(chat.MarkReadCommand{Room: "missing", Reader: bob})
	req.ErrorIs(err, errors.ErrNotFound)
}
