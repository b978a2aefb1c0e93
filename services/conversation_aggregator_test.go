package services

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, f fixture, roomID chat.RoomID, sender chat.Account, body string, at time.Time) chat.EnrichedMessage {
	t.Helper()
	posted, err := f.store.PostMessage(context.Background(), chat.PostMessageCommand{Room: roomID, Sender: sender, Content: body, CreatedAt: at})
	require.NoError(t, err)
	return posted
}

func bodies(messages []chat.EnrichedMessage) []string {
	return lo.Map(messages, func(m chat.EnrichedMessage, _ int) string { return m.Body })
}

func TestConversationAggregator_Pages_Are_Contiguous(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t, alice, bob)
	at := time.Now().UTC()
	for i := 0; i < 5; i++ {
		post(t, f, room.ID, alice, fmt.Sprintf("m%d", i), at.Add(time.Duration(i)*time.Second))
	}

	first, err := f.aggregator.GetConversation(context.Background(), room.ID, chat.Page{Number: 0, Limit: 2})
	req.NoError(err)
	second, err := f.aggregator.GetConversation(context.Background(), room.ID, chat.Page{Number: 1, Limit: 2})
	req.NoError(err)
	third, err := f.aggregator.GetConversation(context.Background(), room.ID, chat.Page{Number: 2, Limit: 2})
	req.NoError(err)

	// Each page is ascending and together they cover the history once
	req.Equal([]string{"m3", "m4"}, bodies(first))
	req.Equal([]string{"m1", "m2"}, bodies(second))
	req.Equal([]string{"m0"}, bodies(third))
	req.Equal("Alice", first[0].SenderProfile.Name)
}

func TestConversationAggregator_Out_Of_Range_Page_Is_Empty(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	room := f.room(t, alice, bob)
	at := time.Now().UTC()
	for i := 0; i < 3; i++ {
		post(t, f, room.ID, alice, "hello", at.Add(time.Duration(i)*time.Second))
	}

	messages, err := f.aggregator.GetConversation(context.Background(), room.ID, chat.Page{Number: 5, Limit: 20})

	req.NoError(err)
	req.NotNil(messages)
	req.Empty(messages)

	// A page number that would overflow the offset is still past the end
	huge := chat.ParsePage("922337203685477581", "10", 10, 100)
	messages, err = f.aggregator.GetConversation(context.Background(), room.ID, huge)
	req.NoError(err)
	req.Empty(messages)

	summaries, err := f.aggregator.GetRecentConversations(context.Background(), alice.ID, huge)
	req.NoError(err)
	req.Empty(summaries)

	found, err := f.aggregator.SearchConversation(context.Background(), room.ID, "hello", huge)
	req.NoError(err)
	req.Empty(found)

	_, err = f.aggregator.GetConversation(context.Background(), "missing", chat.Page{Limit: 20})
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestConversationAggregator_Recent_Conversations(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	withBob := f.room(t, alice, bob)
	withCarol := f.room(t, alice, carol)
	f.room(t, alice, bob, carol) // no message, excluded
	at := time.Now().UTC()

	// Given bob wrote last in the first room, and alice in the second room earlier
	post(t, f, withCarol.ID, alice, "hi carol", at)
	post(t, f, withBob.ID, alice, "hi bob", at.Add(time.Second))
	post(t, f, withBob.ID, bob, "hello alice", at.Add(2*time.Second))

	// When alice lists her conversations
	summaries, err := f.aggregator.GetRecentConversations(context.Background(), "alice", chat.Page{Limit: 10})
	req.NoError(err)

	// Then rooms are ordered by latest message and empty rooms are excluded
	req.Len(summaries, 2)
	req.Equal(withBob.ID, summaries[0].RoomID)
	req.Equal("hello alice", summaries[0].LastMessage.Body)
	req.Equal("Dr Bob", summaries[0].SenderProfile.Name)
	req.True(summaries[0].Unread)
	req.Equal(withCarol.ID, summaries[1].RoomID)
	req.False(summaries[1].Unread)
	req.Len(summaries[1].Participants, 2)

	// And paging applies after sorting
	page, err := f.aggregator.GetRecentConversations(context.Background(), "alice", chat.Page{Number: 1, Limit: 1})
	req.NoError(err)
	req.Len(page, 1)
	req.Equal(withCarol.ID, page[0].RoomID)

	page, err = f.aggregator.GetRecentConversations(context.Background(), "alice", chat.Page{Number: 3, Limit: 1})
	req.NoError(err)
	req.Empty(page)
}

func TestConversationAggregator_Search_Is_Room_Scoped(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	withBob := f.room(t, alice, bob)
	withCarol := f.room(t, alice, carol)
	at := time.Now().UTC()
	post(t, f, withBob.ID, alice, "my prescription is ready", at)
	post(t, f, withBob.ID, bob, "see you tomorrow", at.Add(time.Second))
	post(t, f, withCarol.ID, alice, "prescription question", at.Add(2*time.Second))

	found, err := f.aggregator.SearchConversation(context.Background(), withBob.ID, "prescription", chat.Page{Limit: 10})

	req.NoError(err)
	req.Equal([]string{"my prescription is ready"}, bodies(found))
	req.Equal("Alice", found[0].SenderProfile.Name)
}
