//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flack/domain"
	"flack/moderation"
	"flack/repositories"
)

type IMessageService interface {
	CreateMessageView(userID, channelID string, createdAt time.Time, text string) (domain.MessageView, error)
	GetMessageView(id string) (domain.MessageView, error)
	GetMessages(channelID string, cursor *string) ([]domain.MessageView, *string, error)
}

type MessageService struct {
	repository repositories.IMessageRepository
	moderator  *moderation.Moderator
	log        *slog.Logger
}

// NewMessageService builds the persistence collaborator for messages.
// moderator may be nil when moderation is disabled.
func NewMessageService(repository repositories.IMessageRepository,
	moderator *moderation.Moderator, log *slog.Logger) *MessageService {
	return &MessageService{repository: repository, moderator: moderator, log: log}
}

// CreateMessageView censors, persists and returns the read view of a new
// message. The ID is minted here; createdAt is the dispatch timestamp
// handed in by the caller so the view and the storage key agree.
func (s *MessageService) CreateMessageView(userID, channelID string, createdAt time.Time, text string) (domain.MessageView, error) {
	if s.moderator != nil {
		text = s.moderator.Censor(text)
	}
	view := domain.MessageView{
		ID:        uuid.NewString(),
		UserID:    userID,
		ChannelID: channelID,
		CreatedAt: createdAt.UTC(),
		Text:      text,
	}
	if err := s.repository.Store(view); err != nil {
		return domain.MessageView{}, fmt.Errorf("store message: %w", err)
	}
	return view, nil
}

func (s *MessageService) GetMessageView(id string) (domain.MessageView, error) {
	return s.repository.GetByID(id)
}

func (s *MessageService) GetMessages(channelID string, cursor *string) ([]domain.MessageView, *string, error) {
	return s.repository.GetMessages(channelID, cursor)
}
