package state

import (
	"context"
	"sync"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// MessageState holds the chat slots: the conversation list, the open
// thread, sends, and the unread badge
type MessageState struct {
	container

	Conversations *Slot[[]model.ConversationSummary]
	Thread        *Slot[[]model.Message]
	Send          *Slot[model.Message]
	Unread        *Slot[int]

	repo MessageRepo

	mu            sync.Mutex
	threadPartner int64
}

// NewMessageState creates the message container
func NewMessageState(repo MessageRepo, timeout time.Duration, logger *zap.Logger) *MessageState {
	return &MessageState{
		container:     newContainer(timeout, logger),
		Conversations: NewSlot[[]model.ConversationSummary](),
		Thread:        NewSlot[[]model.Message](),
		Send:          NewSlot[model.Message](),
		Unread:        NewSlot[int](),
		repo:          repo,
	}
}

// FetchConversations loads the user's conversation list, newest first
func (s *MessageState) FetchConversations(userID int64) {
	s.Conversations.setLoading()
	s.run(func(ctx context.Context) {
		convs, err := s.repo.Conversations(ctx, userID)
		if err != nil {
			s.Conversations.fail(err)
			return
		}
		s.Conversations.succeed(convs)
	})
}

// FetchThread loads both directions of traffic with a partner, oldest
// first
func (s *MessageState) FetchThread(userID, partnerID int64) {
	s.setThreadPartner(partnerID)
	s.Thread.setLoading()
	s.run(func(ctx context.Context) {
		msgs, err := s.repo.Conversation(ctx, userID, partnerID)
		if err != nil {
			s.Thread.fail(err)
			return
		}
		s.Thread.succeed(msgs)
	})
}

// SendMessage stores a new outbound message and appends it to the open
// thread so the sender sees it immediately. The append only happens
// when the open thread belongs to the receiver; sending to someone else
// leaves the rendered conversation alone.
func (s *MessageState) SendMessage(senderID, receiverID int64, content string, attachment *string) {
	s.Send.setLoading()
	s.run(func(ctx context.Context) {
		msg, err := s.repo.Send(ctx, senderID, receiverID, content, attachment)
		if err != nil {
			s.Send.fail(err)
			return
		}
		if snap := s.Thread.Get(); snap.Status == StatusSuccess && s.currentThreadPartner() == receiverID {
			s.Thread.succeed(append(snap.Data, *msg))
		}
		s.Send.succeed(*msg)
	})
}

// OpenConversation is the thread-screen entry point: it flips the
// partner's unread history to read, loads the thread and refreshes the
// unread badge, in that order, as one unit of work
func (s *MessageState) OpenConversation(userID, partnerID int64) {
	s.setThreadPartner(partnerID)
	s.Thread.setLoading()
	s.Unread.setLoading()
	s.run(func(ctx context.Context) {
		if _, err := s.repo.MarkConversationRead(ctx, userID, partnerID); err != nil {
			s.Thread.fail(err)
			s.Unread.fail(err)
			return
		}

		msgs, err := s.repo.Conversation(ctx, userID, partnerID)
		if err != nil {
			s.Thread.fail(err)
		} else {
			s.Thread.succeed(msgs)
		}

		count, err := s.repo.UnreadCount(ctx, userID)
		if err != nil {
			s.Unread.fail(err)
			return
		}
		s.Unread.succeed(count)
	})
}

func (s *MessageState) setThreadPartner(partnerID int64) {
	s.mu.Lock()
	s.threadPartner = partnerID
	s.mu.Unlock()
}

func (s *MessageState) currentThreadPartner() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threadPartner
}

// RefreshUnread reloads the unread badge count
func (s *MessageState) RefreshUnread(userID int64) {
	s.Unread.setLoading()
	s.run(func(ctx context.Context) {
		count, err := s.repo.UnreadCount(ctx, userID)
		if err != nil {
			s.Unread.fail(err)
			return
		}
		s.Unread.succeed(count)
	})
}

// MarkRead flips every unread message from partner to user in one bulk
// update, then refreshes the badge
func (s *MessageState) MarkRead(userID, partnerID int64) {
	s.Unread.setLoading()
	s.run(func(ctx context.Context) {
		n, err := s.repo.MarkConversationRead(ctx, userID, partnerID)
		if err != nil {
			s.logger.Warn("failed to mark conversation read",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.Int64("partner_id", partnerID),
			)
			s.Unread.fail(err)
			return
		}
		if n > 0 {
			s.logger.Debug("marked conversation read",
				zap.Int64("messages", n),
				zap.Int64("partner_id", partnerID),
			)
		}

		count, err := s.repo.UnreadCount(ctx, userID)
		if err != nil {
			s.Unread.fail(err)
			return
		}
		s.Unread.succeed(count)
	})
}
