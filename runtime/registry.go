package runtime

import (
	"clinic-chat/contract"
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"fmt"
	"sort"
	"sync"
)

type Set[K comparable] map[K]struct{}

type connection struct {
	sink      contract.EventSink
	accountID string
	rooms     Set[chat.RoomID]
}

// Registry is the presence index of live connections.
// Every operation runs in a single critical section, so a disconnect racing
// a subscribe never leaves a dangling room membership behind.
type Registry struct {
	mu          sync.RWMutex
	connections map[contract.ConnectionID]*connection
	accounts    map[string]Set[contract.ConnectionID]      // account -> identified connections
	roomMembers map[chat.RoomID]Set[contract.ConnectionID] // room -> subscribed connections
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[contract.ConnectionID]*connection),
		accounts:    make(map[string]Set[contract.ConnectionID]),
		roomMembers: make(map[chat.RoomID]Set[contract.ConnectionID]),
	}
}

// Connect registers an anonymous connection. Connecting an existing ID swaps its sink.
func (r *Registry) Connect(connID contract.ConnectionID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.connections[connID]; ok {
		conn.sink = sink
		return
	}
	r.connections[connID] = &connection{sink: sink, rooms: make(Set[chat.RoomID])}
}

// Identify binds the connection to an account, replacing any previous binding.
func (r *Registry) Identify(connID contract.ConnectionID, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.connections[connID]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrConnectionGone, connID)
	}
	if conn.accountID != "" {
		r.removeFromAccount(conn.accountID, connID)
	}
	conn.accountID = accountID
	if _, ok := r.accounts[accountID]; !ok {
		r.accounts[accountID] = make(Set[contract.ConnectionID])
	}
	r.accounts[accountID][connID] = struct{}{}
	return nil
}

func (r *Registry) AccountOf(connID contract.ConnectionID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.connections[connID]
	if !ok || conn.accountID == "" {
		return "", false
	}
	return conn.accountID, true
}

// Subscribe joins the connection to the room. With a peer, every connection
// identified as that peer joins as well; a peer with no connection is a no-op.
func (r *Registry) Subscribe(connID contract.ConnectionID, roomID chat.RoomID, peerAccountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connections[connID]; !ok {
		return fmt.Errorf("%w: %s", errors.ErrConnectionGone, connID)
	}
	r.join(connID, roomID)
	if peerAccountID == "" {
		return nil
	}
	for peerConn := range r.accounts[peerAccountID] {
		r.join(peerConn, roomID)
	}
	return nil
}

func (r *Registry) Unsubscribe(connID contract.ConnectionID, roomID chat.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.connections[connID]; ok {
		delete(conn.rooms, roomID)
	}
	r.leave(connID, roomID)
}

// Disconnect purges the connection from every index.
func (r *Registry) Disconnect(connID contract.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.connections[connID]
	if !ok {
		return
	}
	for roomID := range conn.rooms {
		r.leave(connID, roomID)
	}
	if conn.accountID != "" {
		r.removeFromAccount(conn.accountID, connID)
	}
	delete(r.connections, connID)
}

// GetSinksForRoom snapshots the sinks subscribed to the room, ordered by connection ID.
// Returns nil if the room has no members.
func (r *Registry) GetSinksForRoom(roomID chat.RoomID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[roomID]
	if !ok {
		return nil
	}
	ids := make([]contract.ConnectionID, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	activeSinks := make([]contract.EventSink, 0, len(ids))
	for _, id := range ids {
		if conn, exists := r.connections[id]; exists {
			activeSinks = append(activeSinks, conn.sink)
		}
	}
	return activeSinks
}

// Stats returns the number of live connections and of rooms with at least one member.
func (r *Registry) Stats() (int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections), len(r.roomMembers)
}

func (r *Registry) join(connID contract.ConnectionID, roomID chat.RoomID) {
	conn, ok := r.connections[connID]
	if !ok {
		return
	}
	conn.rooms[roomID] = struct{}{}
	if _, ok := r.roomMembers[roomID]; !ok {
		r.roomMembers[roomID] = make(Set[contract.ConnectionID])
	}
	r.roomMembers[roomID][connID] = struct{}{}
}

// leave removes the membership and drops empty rooms to prevent leaks over time.
func (r *Registry) leave(connID contract.ConnectionID, roomID chat.RoomID) {
	members, ok := r.roomMembers[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(r.roomMembers, roomID)
	}
}

func (r *Registry) removeFromAccount(accountID string, connID contract.ConnectionID) {
	conns, ok := r.accounts[accountID]
	if !ok {
		return
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(r.accounts, accountID)
	}
}
