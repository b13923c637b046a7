package integration_tests

import (
	"context"
	"testing"
	"time"

	"github.com/carelink/carelink-go/internal/repository"
	"github.com/carelink/carelink-go/internal/store"
	"github.com/carelink/carelink-go/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func saveMessage(t *testing.T, messages *store.MessageStore, sender, receiver int64, content string, at time.Time) model.Message {
	t.Helper()

	msg := model.Message{
		ID:         uuid.New().String(),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		Timestamp:  at,
	}
	require.NoError(t, messages.Save(context.Background(), &msg))
	return msg
}

func TestMessageStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	users := store.NewUserStore(pool, logger)
	messages := store.NewMessageStore(pool, logger)
	ctx := context.Background()

	seedUser(t, users, 1, "Jane", "Doe")
	seedUser(t, users, 2, "Gregory", "House")

	attachment := "scan.png"
	msg := model.Message{
		ID:         uuid.New().String(),
		SenderID:   1,
		ReceiverID: 2,
		Content:    "please review the scan",
		Timestamp:  time.Now().UTC().Truncate(time.Microsecond),
		Attachment: &attachment,
	}
	require.NoError(t, messages.Save(ctx, &msg))

	found, err := messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg.Content, found.Content)
	assert.False(t, found.IsRead, "messages start unread")
	require.NotNil(t, found.Attachment)
	assert.Equal(t, attachment, *found.Attachment)
}

func TestMessageStoreFindByIDMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	messages := store.NewMessageStore(pool, zap.NewNop())

	_, err := messages.FindByID(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrMessageNotFound)
}

func TestMessageStoreConversationOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	users := store.NewUserStore(pool, logger)
	messages := store.NewMessageStore(pool, logger)
	ctx := context.Background()

	seedUser(t, users, 1, "Jane", "Doe")
	seedUser(t, users, 2, "Gregory", "House")
	seedUser(t, users, 3, "Lisa", "Cuddy")

	base := time.Now().UTC().Add(-time.Hour)
	saveMessage(t, messages, 1, 2, "first", base)
	saveMessage(t, messages, 2, 1, "second", base.Add(time.Minute))
	saveMessage(t, messages, 1, 2, "third", base.Add(2*time.Minute))
	saveMessage(t, messages, 3, 1, "unrelated", base.Add(3*time.Minute))

	// conversation: both directions, oldest first
	conv, err := messages.FindConversation(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, conv, 3)
	assert.Equal(t, "first", conv[0].Content)
	assert.Equal(t, "second", conv[1].Content)
	assert.Equal(t, "third", conv[2].Content)

	// inbox: everything the user participates in, newest first
	inbox, err := messages.FindByParticipant(ctx, 1)
	require.NoError(t, err)
	require.Len(t, inbox, 4)
	assert.Equal(t, "unrelated", inbox[0].Content)
	assert.Equal(t, "first", inbox[3].Content)
}

func TestMessageStoreMarkConversationRead(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	users := store.NewUserStore(pool, logger)
	messages := store.NewMessageStore(pool, logger)
	ctx := context.Background()

	seedUser(t, users, 1, "Jane", "Doe")
	seedUser(t, users, 2, "Gregory", "House")
	seedUser(t, users, 3, "Lisa", "Cuddy")

	base := time.Now().UTC()
	saveMessage(t, messages, 2, 1, "one", base)
	saveMessage(t, messages, 2, 1, "two", base.Add(time.Second))
	saveMessage(t, messages, 3, 1, "three", base.Add(2*time.Second))
	saveMessage(t, messages, 1, 2, "outbound", base.Add(3*time.Second))

	count, err := messages.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	senders, err := messages.UnreadSenders(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 3}, senders)

	// one bulk update flips the whole inbound history from sender 2
	n, err := messages.MarkConversationRead(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// marking again touches nothing: is_read only moves false to true
	n, err = messages.MarkConversationRead(ctx, 1, 2)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err = messages.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// the outbound message is untouched by the receiver-side update
	conv, err := messages.FindConversation(ctx, 1, 2)
	require.NoError(t, err)
	for _, m := range conv {
		if m.SenderID == 1 {
			assert.False(t, m.IsRead)
		} else {
			assert.True(t, m.IsRead)
		}
	}
}

func TestMessageRepositoryResolvesDisplayNames(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	users := store.NewUserStore(pool, logger)
	messages := store.NewMessageStore(pool, logger)
	repo := repository.NewMessageRepository(messages, users, logger)
	ctx := context.Background()

	seedUser(t, users, 1, "Jane", "Doe")
	seedUser(t, users, 2, "Gregory", "House")

	sent, err := repo.Send(ctx, 1, 2, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", sent.SenderName)
	assert.Equal(t, "Gregory House", sent.ReceiverName)
	assert.NotEmpty(t, sent.ID)
	assert.False(t, sent.IsRead)

	conv, err := repo.Conversation(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, conv, 1)
	assert.Equal(t, "Jane Doe", conv[0].SenderName)
}

func TestMessageRepositoryConversationSummaries(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	users := store.NewUserStore(pool, logger)
	messages := store.NewMessageStore(pool, logger)
	repo := repository.NewMessageRepository(messages, users, logger)
	ctx := context.Background()

	seedUser(t, users, 1, "Jane", "Doe")
	seedUser(t, users, 2, "Gregory", "House")
	seedUser(t, users, 3, "Lisa", "Cuddy")

	base := time.Now().UTC().Add(-time.Hour)
	saveMessage(t, messages, 2, 1, "old conversation", base)
	saveMessage(t, messages, 3, 1, "newer", base.Add(time.Minute))
	saveMessage(t, messages, 3, 1, "newest", base.Add(2*time.Minute))

	summaries, err := repo.Conversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, int64(3), summaries[0].PartnerID)
	assert.Equal(t, "Lisa Cuddy", summaries[0].PartnerName)
	assert.Equal(t, "newest", summaries[0].LastMessage)
	assert.Equal(t, 2, summaries[0].UnreadCount)

	assert.Equal(t, int64(2), summaries[1].PartnerID)
	assert.Equal(t, 1, summaries[1].UnreadCount)
}

func TestMessageRepositorySendRequiresContent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	users := store.NewUserStore(pool, logger)
	messages := store.NewMessageStore(pool, logger)
	repo := repository.NewMessageRepository(messages, users, logger)

	_, err := repo.Send(context.Background(), 1, 2, "", nil)
	assert.Error(t, err)
}
