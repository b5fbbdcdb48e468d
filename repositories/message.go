//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"flack/domain"
	"flack/errors"
)

type IMessageRepository interface {
	Store(view domain.MessageView) error
	GetByID(id string) (domain.MessageView, error)
	GetMessages(channelID string, cursor *string) ([]domain.MessageView, *string, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// Store persists a message view in BadgerDB.
// The primary key is formatted as "msg:{channel_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
//
// A secondary "msgid:{uuid}" pointer allows direct lookups by message ID.
func (m MessageRepository) Store(view domain.MessageView) error {
	key := primaryMessageKey(view)
	bytes, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), bytes); err != nil {
			return err
		}
		return txn.Set([]byte("msgid:"+view.ID), []byte(key))
	})
}

// GetByID resolves the secondary pointer, then reads the record itself.
func (m MessageRepository) GetByID(id string) (domain.MessageView, error) {
	var view domain.MessageView
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("msgid:" + id))
		if err != nil {
			return err
		}
		var primaryKey []byte
		if err = item.Value(func(val []byte) error {
			primaryKey = append(primaryKey, val...)
			return nil
		}); err != nil {
			return err
		}

		record, err := txn.Get(primaryKey)
		if err != nil {
			return err
		}
		return record.Value(func(val []byte) error {
			return json.Unmarshal(val, &view)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.MessageView{}, errors.ErrMessageNotFound
	}
	return view, err
}

// GetMessages retrieves messages for a channel using a reverse prefix scan.
// Thanks to the padded timestamp in the key, messages are naturally sorted
// by time, newest first. It stops once the configured limitMessages is
// reached and hands back a cursor for the next page.
func (m MessageRepository) GetMessages(channelID string, cursor *string) ([]domain.MessageView, *string, error) {
	var views []domain.MessageView
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", channelID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible position msg:{channel}:9999...
			// then walk backwards through real entries.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(views) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				var view domain.MessageView
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
	if err != nil {
		return nil, nil, err
	}
	return views, &lastKey, nil
}

func primaryMessageKey(view domain.MessageView) string {
	return fmt.Sprintf("msg:%s:%019d:%s",
		view.ChannelID,
		view.CreatedAt.UnixNano(),
		view.ID,
	)
}
