package chat

import (
	"math"
	"strconv"
)

// EnrichedMessage is a Message joined with the profiles of its sender
// and of every room participant.
type EnrichedMessage struct {
	Message
	SenderProfile Profile   `json:"postedByUser"`
	Participants  []Profile `json:"chatRoomInfo"`
}

// RoomSummary is one line of the recent conversations list.
type RoomSummary struct {
	RoomID        RoomID    `json:"chatRoomId"`
	LastMessage   Message   `json:"lastMessage"`
	SenderProfile Profile   `json:"postedByUser"`
	Participants  []Profile `json:"roomInfo"`
	Unread        bool      `json:"unread"`
}

// Page is a skip/limit window; Offset is Number*Limit.
type Page struct {
	Number int
	Limit  int
}

// Offset saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.Limit > 0 && p.Number > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return p.Number * p.Limit
}

// OutOfRange reports a window that can never hold a message.
func (p Page) OutOfRange() bool {
	return p.Limit <= 0 || p.Number < 0 || p.Offset() < 0
}

// ParsePage reads raw paging values. Missing, non-numeric or negative values
// fall back to page 0 and defaultLimit; the limit is capped at maxLimit.
func ParsePage(rawPage, rawLimit string, defaultLimit, maxLimit int) Page {
	page := Page{Number: 0, Limit: defaultLimit}
	if n, err := strconv.Atoi(rawPage); err == nil && n >= 0 {
		page.Number = n
	}
	if l, err := strconv.Atoi(rawLimit); err == nil && l > 0 {
		page.Limit = l
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	if page.Limit > 0 && page.Number > math.MaxInt/page.Limit {
		page.Number = math.MaxInt / page.Limit
	}
	return page
}
