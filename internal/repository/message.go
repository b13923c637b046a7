package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/carelink/carelink-go/internal/chat"
	"github.com/carelink/carelink-go/internal/store"
	"github.com/carelink/carelink-go/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageRepository is the one repository backed by the local store
// instead of the remote API. Beyond pass-through it performs exactly one
// shape mapping: resolving sender/receiver display names against the
// local users table.
type MessageRepository struct {
	messages *store.MessageStore
	users    *store.UserStore
	logger   *zap.Logger
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(messages *store.MessageStore, users *store.UserStore, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{
		messages: messages,
		users:    users,
		logger:   logger,
	}
}

// Send stores a new outbound message. Id and timestamp are assigned
// here; messages start unread.
func (r *MessageRepository) Send(ctx context.Context, senderID, receiverID int64, content string, attachment *string) (*model.Message, error) {
	if content == "" && attachment == nil {
		return nil, fmt.Errorf("message content is required")
	}

	msg := &model.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now(),
		IsRead:     false,
		Attachment: attachment,
	}

	if err := r.messages.Save(ctx, msg); err != nil {
		r.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("sender_id", senderID),
			zap.Int64("receiver_id", receiverID),
		)
		return nil, err
	}

	return r.withNames(ctx, []model.Message{*msg})
}

// Get retrieves a single message by id with display names resolved
func (r *MessageRepository) Get(ctx context.Context, messageID string) (*model.Message, error) {
	msg, err := r.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	return r.withNames(ctx, []model.Message{*msg})
}

// Inbox retrieves every message the user participates in, newest first
func (r *MessageRepository) Inbox(ctx context.Context, userID int64) ([]model.Message, error) {
	msgs, err := r.messages.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.resolveNames(ctx, msgs)
}

// Conversation retrieves both directions of traffic between two users,
// oldest first
func (r *MessageRepository) Conversation(ctx context.Context, userA, userB int64) ([]model.Message, error) {
	msgs, err := r.messages.FindConversation(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	return r.resolveNames(ctx, msgs)
}

// Conversations folds the user's inbox into one summary per partner,
// newest conversation first
func (r *MessageRepository) Conversations(ctx context.Context, userID int64) ([]model.ConversationSummary, error) {
	msgs, err := r.Inbox(ctx, userID)
	if err != nil {
		return nil, err
	}
	return chat.Group(msgs, userID), nil
}

// MarkConversationRead flips the whole unread inbound history from
// sender to receiver in one bulk update
func (r *MessageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID int64) (int64, error) {
	return r.messages.MarkConversationRead(ctx, receiverID, senderID)
}

// UnreadCount returns how many messages addressed to the user are unread
func (r *MessageRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return r.messages.UnreadCount(ctx, userID)
}

// UnreadSenders returns the distinct users with unread messages waiting
func (r *MessageRepository) UnreadSenders(ctx context.Context, userID int64) ([]int64, error) {
	return r.messages.UnreadSenders(ctx, userID)
}

// resolveNames fills SenderName/ReceiverName from the local users table.
// Unknown ids leave the name empty rather than failing the read.
func (r *MessageRepository) resolveNames(ctx context.Context, msgs []model.Message) ([]model.Message, error) {
	if len(msgs) == 0 {
		return msgs, nil
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, m := range msgs {
		for _, id := range []int64{m.SenderID, m.ReceiverID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	names, err := r.users.DisplayNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range msgs {
		msgs[i].SenderName = names[msgs[i].SenderID]
		msgs[i].ReceiverName = names[msgs[i].ReceiverID]
	}

	return msgs, nil
}

func (r *MessageRepository) withNames(ctx context.Context, msgs []model.Message) (*model.Message, error) {
	resolved, err := r.resolveNames(ctx, msgs)
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}
