//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=../mocks/mock_index_repository.go -package=mocks
package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"

	"flack/domain"
)

type IIndexRepository interface {
	Save(view domain.MessageView, lang string) error
	Delete(id string) error
	Search(ctx context.Context, terms, channelID string, limit int) ([]domain.MessageView, uint64, error)
}

// IndexRepository maintains the Bluge full-text index over messages.
// Save is an upsert (Bluge's Update replaces the document term), so a
// message edit reuses the same path as the initial indexing.
type IndexRepository struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndexRepository(writer *bluge.Writer, log *slog.Logger) *IndexRepository {
	return &IndexRepository{writer: writer, log: log}
}

func (r *IndexRepository) Save(view domain.MessageView, lang string) error {
	doc := bluge.NewDocument(view.ID).
		AddField(bluge.NewTextField("text", view.Text).StoreValue()).
		AddField(bluge.NewKeywordField("channelId", view.ChannelID).StoreValue()).
		AddField(bluge.NewKeywordField("userId", view.UserID).StoreValue()).
		AddField(bluge.NewKeywordField("createdAt", view.CreatedAt.UTC().Format(time.RFC3339Nano)).StoreValue()).
		AddField(bluge.NewKeywordField("lang", lang).StoreValue())

	return r.writer.Update(doc.ID(), doc)
}

func (r *IndexRepository) Delete(id string) error {
	return r.writer.Delete(bluge.NewDocument(id).ID())
}

// Search runs a match query over message text, optionally narrowed to one
// channel, and rebuilds MessageViews from stored fields. Returns the
// page plus the total hit count.
func (r *IndexRepository) Search(ctx context.Context, terms, channelID string, limit int) ([]domain.MessageView, uint64, error) {
	reader, err := r.writer.Reader()
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			r.log.Warn("Failed to close index reader", "error", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("text"))
	if channelID != "" {
		query.AddMust(bluge.NewTermQuery(channelID).SetField("channelId"))
	}

	request := bluge.NewTopNSearch(limit, query).WithStandardAggregations()
	dmi, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, err
	}

	var views []domain.MessageView
	next, err := dmi.Next()
	for err == nil && next != nil {
		var view domain.MessageView
		visitErr := next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				view.ID = string(value)
			case "text":
				view.Text = string(value)
			case "channelId":
				view.ChannelID = string(value)
			case "userId":
				view.UserID = string(value)
			case "createdAt":
				if t, parseErr := time.Parse(time.RFC3339Nano, string(value)); parseErr == nil {
					view.CreatedAt = t
				}
			}
			return true
		})
		if visitErr != nil {
			return nil, 0, visitErr
		}
		views = append(views, view)
		next, err = dmi.Next()
	}
	if err != nil {
		return nil, 0, err
	}
	return views, dmi.Aggregations().Count(), nil
}
