package services

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"clinic-chat/infrastructure/storage"
	"fmt"
	"log/slog"
	"time"
)

type RoomDirectory struct {
	log   *slog.Logger
	rooms storage.IRoomRepository
	clock func() time.Time
}

func NewRoomDirectory(log *slog.Logger, rooms storage.IRoomRepository) *RoomDirectory {
	return &RoomDirectory{log: log, rooms: rooms, clock: time.Now}
}

// InitiateChat returns the room of the participant set, initiator included,
// creating it on first use. Concurrent calls for the same set return the same room.
func (d *RoomDirectory) InitiateChat(cmd chat.InitiateChatCommand) (chat.Room, error) {
	if err := validateCommand(cmd); err != nil {
		return chat.Room{}, err
	}
	participants, err := chat.NormalizeParticipants(cmd.Participants, cmd.Initiator)
	if err != nil {
		return chat.Room{}, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	room, created, err := d.rooms.FindOrCreate(participants, d.clock().UTC())
	if err != nil {
		return chat.Room{}, err
	}
	if created {
		d.log.Info("Chat initiated", "room_id", room.ID, "initiator", cmd.Initiator.ID)
	}
	return room, nil
}

func (d *RoomDirectory) GetRoomsForAccount(accountID string) ([]chat.Room, error) {
	return d.rooms.GetRoomsForAccount(accountID)
}

func (d *RoomDirectory) GetRoomByID(roomID chat.RoomID) (chat.Room, error) {
	return d.rooms.GetRoom(roomID)
}
