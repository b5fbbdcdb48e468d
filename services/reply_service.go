//go:generate go run go.uber.org/mock/mockgen -source=reply_service.go -destination=../mocks/mock_reply_service.go -package=mocks
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

type IReplyService interface {
	CreateReplyView(userID, channelID, messageID string, createdAt time.Time, text string) (domain.ReplyView, error)
	GetReplies(messageID string) ([]domain.ReplyView, error)
}

type ReplyService struct {
	repository repositories.IReplyRepository
	moderator  *moderation.Moderator
	log        *slog.Logger
}

func NewReplyService(repository repositories.IReplyRepository,
	moderator *moderation.Moderator, log *slog.Logger) *ReplyService {
	return &ReplyService{repository: repository, moderator: moderator, log: log}
}

func (s *ReplyService) CreateReplyView(userID, channelID, messageID string, createdAt time.Time, text string) (domain.ReplyView, error) {
	if s.moderator != nil {
		text = s.moderator.Censor(text)
	}
	view := domain.ReplyView{
		ID:        uuid.NewString(),
		UserID:    userID,
		ChannelID: channelID,
		MessageID: messageID,
		CreatedAt: createdAt.UTC(),
		Text:      text,
	}
	if err := s.repository.Store(view); err != nil {
		return domain.ReplyView{}, fmt.Errorf("store reply: %w", err)
	}
	return view, nil
}

func (s *ReplyService) GetReplies(messageID string) ([]domain.ReplyView, error) {
	return s.repository.GetReplies(messageID)
}
