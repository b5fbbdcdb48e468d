//go:generate go run go.uber.org/mock/mockgen -source=channel.go -destination=../mocks/mock_channel_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"flack/domain"
	"flack/errors"
)

type IChannelRepository interface {
	Create(channel domain.Channel, memberIDs ...string) error
	Get(channelID string) (domain.Channel, error)
	AddMember(channelID, userID string) error
	ChannelsForUser(userID string) ([]domain.Channel, error)
}

// ChannelRepository is the membership directory. Two key families:
//
//	channel:{channel_id}          -> channel record (JSON)
//	member:{user_id}:{channel_id} -> primary channel key
//
// so a user's channels resolve with a single prefix scan, the same
// two-step lookup the message store uses for its secondary index.
type ChannelRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChannelRepository(db *badger.DB, log *slog.Logger) ChannelRepository {
	return ChannelRepository{db: db, log: log}
}

func (c ChannelRepository) Create(channel domain.Channel, memberIDs ...string) error {
	bytes, err := json.Marshal(channel)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		key := channelKey(channel.ID)
		if err := txn.Set([]byte(key), bytes); err != nil {
			return err
		}
		for _, userID := range memberIDs {
			if err := txn.Set([]byte(memberKey(userID, channel.ID)), []byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c ChannelRepository) Get(channelID string) (domain.Channel, error) {
	var channel domain.Channel
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(channelKey(channelID)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &channel)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.Channel{}, errors.ErrChannelNotFound
	}
	return channel, err
}

func (c ChannelRepository) AddMember(channelID, userID string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		key := channelKey(channelID)
		if _, err := txn.Get([]byte(key)); err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrChannelNotFound
			}
			return err
		}
		return txn.Set([]byte(memberKey(userID, channelID)), []byte(key))
	})
}

// ChannelsForUser scans the user's membership prefix and resolves each
// pointer to its channel record.
func (c ChannelRepository) ChannelsForUser(userID string) ([]domain.Channel, error) {
	var channels []domain.Channel
	err := c.db.View(func(txn *badger.Txn) error {
		prefix := []byte("member:" + userID + ":")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var primaryKey []byte
			if err := it.Item().Value(func(val []byte) error {
				primaryKey = append(primaryKey, val...)
				return nil
			}); err != nil {
				return err
			}

			record, err := txn.Get(primaryKey)
			if err != nil {
				if err == badger.ErrKeyNotFound {
					// Channel deleted, stale membership pointer. Skip it.
					c.log.Debug("Stale membership pointer", "key", string(primaryKey))
					continue
				}
				return err
			}
			var channel domain.Channel
			if err := record.Value(func(val []byte) error {
				return json.Unmarshal(val, &channel)
			}); err != nil {
				return err
			}
			channels = append(channels, channel)
		}
		return nil
	})
	return channels, err
}

func channelKey(channelID string) string { return "channel:" + channelID }

func memberKey(userID, channelID string) string {
	return strings.Join([]string{"member", userID, channelID}, ":")
}
