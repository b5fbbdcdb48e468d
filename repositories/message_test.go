package repositories

import (
	"fmt"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/require"

	"flack/domain"
	"flack/errors"
)

func Test_Store_And_Get_Sorted_Messages(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewMessageRepository(badgerDB, slog.Default(), nil)
	channelID := "general"
	text := "this message will self destruct in 5 seconds"
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	views := []domain.MessageView{
		{ID: uuid.NewString(), UserID: "alice", ChannelID: channelID, CreatedAt: at, Text: text},
		{ID: uuid.NewString(), UserID: "bob", ChannelID: channelID, CreatedAt: at.Add(1 * time.Minute), Text: text},
		{ID: uuid.NewString(), UserID: "clara", ChannelID: channelID, CreatedAt: at.Add(2 * time.Minute), Text: text},
	}

	sortedViews := make([]domain.MessageView, len(views))
	copy(sortedViews, views)
	sort.Slice(sortedViews, func(i, j int) bool {
		return sortedViews[i].CreatedAt.After(sortedViews[j].CreatedAt)
	})
	for _, view := range views {
		req.NoError(repository.Store(view))
	}

	// When fetching messages
	fetched, _, err := repository.GetMessages(channelID, nil)
	req.NoError(err)

	// Then the messages come back newest first
	req.Len(fetched, len(sortedViews))
	req.Equal(sortedViews, fetched)
}

func Test_GetMessages_Respects_Limit(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	limit := 2
	repository := NewMessageRepository(badgerDB, slog.Default(), &limit)
	channelID := "general"
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		req.NoError(repository.Store(domain.MessageView{
			ID:        uuid.NewString(),
			UserID:    fmt.Sprintf("user_%d", i),
			ChannelID: channelID,
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
			Text:      "hello",
		}))
	}

	fetched, _, err := repository.GetMessages(channelID, nil)
	req.NoError(err)
	req.Len(fetched, limit)
}

func Test_MessageRepository_Pagination(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	limit := 4
	repo := NewMessageRepository(badgerDB, slog.Default(), &limit)
	channelID := "pagination"
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 10; i++ {
		req.NoError(repo.Store(domain.MessageView{
			ID:        uuid.NewString(),
			UserID:    fmt.Sprintf("user_%d", i),
			ChannelID: channelID,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			Text:      fmt.Sprintf("Message %d", i),
		}))
	}

	// --- PAGE 1 ---
	page1, cursor1, err := repo.GetMessages(channelID, nil)
	req.NoError(err)
	req.Len(page1, 4)
	req.Equal("user_10", page1[0].UserID) // Newest first
	req.Equal("user_7", page1[3].UserID)
	req.NotEmpty(cursor1)

	// --- PAGE 2 ---
	page2, cursor2, err := repo.GetMessages(channelID, cursor1)
	req.NoError(err)
	req.Len(page2, 4)
	req.Equal("user_6", page2[0].UserID)
	req.Equal("user_3", page2[3].UserID)
	req.NotEmpty(cursor2)

	// --- PAGE 3 (End) ---
	page3, _, err := repo.GetMessages(channelID, cursor2)
	req.NoError(err)
	req.Len(page3, 2)
	req.Equal("user_2", page3[0].UserID)
	req.Equal("user_1", page3[1].UserID)
}

func Test_GetByID_Follows_Pointer_Key(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewMessageRepository(badgerDB, slog.Default(), nil)
	view := domain.MessageView{
		ID:        uuid.NewString(),
		UserID:    "alice",
		ChannelID: "general",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Text:      "find me by id",
	}
	req.NoError(repository.Store(view))

	fetched, err := repository.GetByID(view.ID)
	req.NoError(err)
	req.Equal(view, fetched)

	// And an unknown id maps to the domain error
	_, err = repository.GetByID(uuid.NewString())
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func Test_Messages_Are_Isolated_Per_Channel(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewMessageRepository(badgerDB, slog.Default(), nil)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	req.NoError(repository.Store(domain.MessageView{
		ID: uuid.NewString(), UserID: "alice", ChannelID: "general", CreatedAt: at, Text: "general talk",
	}))
	req.NoError(repository.Store(domain.MessageView{
		ID: uuid.NewString(), UserID: "bob", ChannelID: "random", CreatedAt: at, Text: "random talk",
	}))

	fetched, _, err := repository.GetMessages("general", nil)
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal("general talk", fetched[0].Text)
}
