package chat

import (
	"time"
)

type InitiateChatCommand struct {
	Participants []Account `validate:"required,min=1,dive"`
	Initiator    Account
}

type PostMessageCommand struct {
	Room      RoomID `validate:"required"`
	Sender    Account
	Content   string `validate:"required"`
	CreatedAt time.Time
}

type GetConversationCommand struct {
	Room   RoomID `validate:"required"`
	Viewer Account
	Page   Page
}

type GetRecentConversationsCommand struct {
	Viewer Account
	Page   Page
}

type MarkReadCommand struct {
	Room   RoomID `validate:"required"`
	Reader Account
}

type SearchCommand struct {
	Room   RoomID `validate:"required"`
	Viewer Account
	Query  string `validate:"required"`
	Page   Page
}
