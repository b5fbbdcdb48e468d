//go:generate go run go.uber.org/mock/mockgen -source=search_service.go -destination=../mocks/mock_search_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"flack/domain"
	"flack/repositories"
)

type ISearchService interface {
	SaveMessage(view domain.MessageView) error
	UpdateMessage(view domain.MessageView) error
	DeleteMessage(id string) error
	Search(ctx context.Context, terms, channelID string, limit int) ([]domain.MessageView, uint64, error)
}

// SearchService is the search-index collaborator. Callers must observe its
// result before broadcasting the dependent event; it never runs detached.
type SearchService struct {
	index repositories.IIndexRepository
	log   *slog.Logger
}

func NewSearchService(index repositories.IIndexRepository, log *slog.Logger) *SearchService {
	return &SearchService{index: index, log: log}
}

// SaveMessage indexes a freshly persisted message, tagged with the detected
// language of its text.
func (s *SearchService) SaveMessage(view domain.MessageView) error {
	if err := s.index.Save(view, detectLanguage(view.Text)); err != nil {
		return fmt.Errorf("index message %s: %w", view.ID, err)
	}
	return nil
}

// UpdateMessage re-indexes an edited message. Bluge's update is an upsert
// on the document term, so this shares the save path.
func (s *SearchService) UpdateMessage(view domain.MessageView) error {
	if err := s.index.Save(view, detectLanguage(view.Text)); err != nil {
		return fmt.Errorf("reindex message %s: %w", view.ID, err)
	}
	return nil
}

func (s *SearchService) DeleteMessage(id string) error {
	if err := s.index.Delete(id); err != nil {
		return fmt.Errorf("unindex message %s: %w", id, err)
	}
	return nil
}

func (s *SearchService) Search(ctx context.Context, terms, channelID string, limit int) ([]domain.MessageView, uint64, error) {
	return s.index.Search(ctx, terms, channelID, limit)
}

func detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391()
}
