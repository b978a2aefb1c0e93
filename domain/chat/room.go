package chat

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

type RoomID string

func (r RoomID) String() string { return string(r) }

// Room is a durable chat context tied to an immutable set of participants.
// Participants are kept sorted by account ID.
type Room struct {
	ID           RoomID    `json:"id"`
	Participants []Account `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r Room) ParticipantIDs() []string {
	return lo.Map(r.Participants, func(a Account, _ int) string { return a.ID })
}

func (r Room) HasParticipant(accountID string) bool {
	return lo.ContainsBy(r.Participants, func(a Account) bool { return a.ID == accountID })
}

// IdentityKey is the order-independent fingerprint of the participant set.
func (r Room) IdentityKey() string {
	return IdentityKey(r.ParticipantIDs())
}

// IdentityKey hashes the sorted, deduplicated IDs so that two
// permutations of the same set collide on purpose.
func IdentityKey(ids []string) string {
	unique := lo.Uniq(ids)
	sort.Strings(unique)
	sum := sha256.Sum256([]byte(strings.Join(unique, "\x00")))
	return hex.EncodeToString(sum[:])
}

// NormalizeParticipants adds the initiator, removes duplicates and sorts by ID.
// The same ID announced under two categories is rejected.
func NormalizeParticipants(participants []Account, initiator Account) ([]Account, error) {
	byID := make(map[string]Account, len(participants)+1)
	for _, p := range append(participants, initiator) {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("participant id is empty")
		}
		if p.Category != CategoryPatient && p.Category != CategoryProvider {
			return nil, fmt.Errorf("participant %s has no category", p.ID)
		}
		if existing, ok := byID[p.ID]; ok && existing.Category != p.Category {
			return nil, fmt.Errorf("participant %s announced as %s and %s", p.ID, existing.Category, p.Category)
		}
		byID[p.ID] = p
	}
	if len(byID) < 2 {
		return nil, fmt.Errorf("a room needs at least two distinct participants, got %d", len(byID))
	}
	normalized := lo.Values(byID)
	sort.Slice(normalized, func(i, j int) bool { return normalized[i].ID < normalized[j].ID })
	return normalized, nil
}
