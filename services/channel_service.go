//go:generate go run go.uber.org/mock/mockgen -source=channel_service.go -destination=../mocks/mock_channel_service.go -package=mocks
package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flack/domain"
	"flack/repositories"
)

type IChannelService interface {
	GetChannels(userID string) ([]domain.Channel, error)
	CreateChannel(name string, memberIDs ...string) (domain.Channel, error)
	CreateDirectChannel(userID, otherUserID string) (domain.Channel, error)
	AddMember(channelID, userID string) error
}

// ChannelService is the membership directory consumed by the session
// bootstrap.
type ChannelService struct {
	repository repositories.IChannelRepository
	log        *slog.Logger
}

func NewChannelService(repository repositories.IChannelRepository, log *slog.Logger) *ChannelService {
	return &ChannelService{repository: repository, log: log}
}

func (s *ChannelService) GetChannels(userID string) ([]domain.Channel, error) {
	return s.repository.ChannelsForUser(userID)
}

func (s *ChannelService) CreateChannel(name string, memberIDs ...string) (domain.Channel, error) {
	channel := domain.Channel{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.Create(channel, memberIDs...); err != nil {
		return domain.Channel{}, fmt.Errorf("create channel: %w", err)
	}
	return channel, nil
}

// CreateDirectChannel opens a private two-member conversation. The caller
// is expected to follow up with a first-direct-message event so the other
// side's live connections learn about it.
func (s *ChannelService) CreateDirectChannel(userID, otherUserID string) (domain.Channel, error) {
	channel := domain.Channel{
		ID:        uuid.NewString(),
		Direct:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.Create(channel, userID, otherUserID); err != nil {
		return domain.Channel{}, fmt.Errorf("create direct channel: %w", err)
	}
	return channel, nil
}

func (s *ChannelService) AddMember(channelID, userID string) error {
	return s.repository.AddMember(channelID, userID)
}
