//go:generate go run go.uber.org/mock/mockgen -source=reply.go -destination=../mocks/mock_reply_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"flack/domain"
)

type IReplyRepository interface {
	Store(view domain.ReplyView) error
	GetReplies(messageID string) ([]domain.ReplyView, error)
}

type ReplyRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewReplyRepository(db *badger.DB, log *slog.Logger) ReplyRepository {
	return ReplyRepository{db: db, log: log}
}

// Store persists a reply under its parent message so a thread is one
// prefix scan: "reply:{message_id}:{timestamp_padded}:{uuid}".
func (r ReplyRepository) Store(view domain.ReplyView) error {
	key := fmt.Sprintf("reply:%s:%019d:%s",
		view.MessageID,
		view.CreatedAt.UnixNano(),
		view.ID,
	)
	bytes, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetReplies returns a message's thread, oldest first.
func (r ReplyRepository) GetReplies(messageID string) ([]domain.ReplyView, error) {
	var views []domain.ReplyView
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("reply:%s:", messageID))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var view domain.ReplyView
				if err := json.Unmarshal(value, &view); err != nil {
					return err
				}
				views = append(views, view)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return views, err
}
