//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"clinic-chat/domain/chat"
	"clinic-chat/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// ConnectionID identifies one realtime connection, not an account.
type ConnectionID string

type IRegistry interface {
	Connect(connID ConnectionID, sink EventSink)
	Identify(connID ConnectionID, accountID string) error
	AccountOf(connID ConnectionID) (string, bool)
	Subscribe(connID ConnectionID, roomID chat.RoomID, peerAccountID string) error
	Unsubscribe(connID ConnectionID, roomID chat.RoomID)
	Disconnect(connID ConnectionID)
	GetSinksForRoom(roomID chat.RoomID) []EventSink
}

// IDispatcher never reports delivery failures to the caller.
type IDispatcher interface {
	Dispatch(evt event.DomainEvent)
}
