package sink

import (
	"clinic-chat/domain/chat"
	"clinic-chat/domain/event"
	"clinic-chat/errors"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func posted(body string) event.MessagePosted {
	var message chat.EnrichedMessage
	message.RoomID = "room"
	message.Body = body
	return event.MessagePosted{Message: message}
}

func TestConnectionSink_Buffers_Events(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(2)

	req.NoError(s.Consume(context.Background(), posted("one")))
	req.NoError(s.Consume(context.Background(), posted("two")))

	req.Equal("one", (<-s.Events()).(event.MessagePosted).Message.Body)
	req.Equal("two", (<-s.Events()).(event.MessagePosted).Message.Body)
}

func TestConnectionSink_Full_Buffer_Honours_Deadline(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(1)
	req.NoError(s.Consume(context.Background(), posted("one")))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.Consume(ctx, posted("two"))

	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestConnectionSink_Closed_Fails_Fast(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(1)
	s.Close()
	s.Close()

	err := s.Consume(context.Background(), posted("late"))

	req.ErrorIs(err, errors.ErrConnectionGone)
}
