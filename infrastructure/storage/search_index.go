//go:generate go run go.uber.org/mock/mockgen -source=search_index.go -destination=../../mocks/mock_search_index.go -package=mocks
package storage

import (
	"clinic-chat/domain/chat"
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/blugelabs/bluge"
)

const (
	fieldBody    = "body"
	fieldRoom    = "room"
	fieldKey     = "key"
	fieldCreated = "created"
)

// ISearchIndex keeps a full text index of message bodies next to badger.
// Search returns message keys, newest first, and the total hit count.
type ISearchIndex interface {
	Index(message chat.Message) error
	Search(ctx context.Context, roomID chat.RoomID, query string, page chat.Page) ([]string, uint64, error)
}

type SearchIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewSearchIndex(writer *bluge.Writer, log *slog.Logger) *SearchIndex {
	return &SearchIndex{writer: writer, log: log}
}

func (s *SearchIndex) Index(message chat.Message) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField(fieldBody, message.Body)).
		AddField(bluge.NewKeywordField(fieldRoom, message.RoomID.String())).
		AddField(bluge.NewKeywordField(fieldKey, MessageKey(message)).StoreValue()).
		AddField(bluge.NewKeywordField(fieldCreated, fmt.Sprintf("%019d", message.CreatedAt.UnixNano())).Sortable())
	if err := s.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("unable to index message %s: %w", message.ID, err)
	}
	return nil
}

func (s *SearchIndex) Search(ctx context.Context, roomID chat.RoomID, query string, page chat.Page) ([]string, uint64, error) {
	if page.OutOfRange() || page.Offset() > math.MaxInt-page.Limit {
		return []string{}, 0, nil
	}
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("unable to open index reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Warn("Unable to close index reader", "error", err)
		}
	}()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query).SetField(fieldBody).SetOperator(bluge.MatchQueryOperatorAnd)).
		AddMust(bluge.NewTermQuery(roomID.String()).SetField(fieldRoom))
	request := bluge.NewTopNSearch(page.Limit, q).
		SetFrom(page.Offset()).
		SortBy([]string{"-" + fieldCreated}).
		WithStandardAggregations()

	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("search failed: %w", err)
	}
	var keys []string
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == fieldKey {
				keys = append(keys, string(value))
			}
			return true
		})
		if err != nil {
			break
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, 0, fmt.Errorf("search iteration failed: %w", err)
	}
	return keys, matches.Aggregations().Count(), nil
}
